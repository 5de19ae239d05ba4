package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration.",
	Long: "`config` prints the configuration after loading the .env files " +
		"and the environment, in a format that can be saved as a .env file.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.String())

		c := config.VM
		fmt.Fprintf(cmd.OutOrStdout(),
			"# page size %d, %d pages, %d words of physical memory, "+
				"%d address bits\n",
			c.PageSize(), c.NumPages(), c.PhysicalMemorySize(),
			c.AddressWidth())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
