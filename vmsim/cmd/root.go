// Package cmd provides the command-line interface for vmsim.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/vmsim/simulation"
)

var (
	envFiles []string
	logLevel string

	config simulation.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vmsim",
	Short: "vmsim simulates a demand-paged MMU with a multi-level page table.",
	Long: `vmsim simulates a demand-paged MMU that translates virtual ` +
		`addresses through a tree of page tables stored in a small pool of ` +
		`physical frames. Pages are swapped out to a backing store when the ` +
		`frames run out.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error

		config, err = simulation.LoadConfig(envFiles...)
		if err != nil {
			return err
		}

		if logLevel != "" {
			config.LogLevel, err = simulation.ParseLogLevel(logLevel)
			if err != nil {
				return err
			}
		}

		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
			&slog.HandlerOptions{Level: config.LogLevel}))
		slog.SetDefault(logger)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil,
		"The .env files to load the configuration from. "+
			"Defaults to ./.env if it exists.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Overrides VMSIM_LOG_LEVEL (debug, info, warn, error).")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
