package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/simulation"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay an access trace.",
	Long: "`run --trace [file]` replays the reads and writes of a trace file " +
		"and reports the page faults and evictions that happened.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := applyRunFlags(cmd)
		if err != nil {
			return err
		}

		traceFile, _ := cmd.Flags().GetString("trace")
		f, err := os.Open(traceFile)
		if err != nil {
			return fmt.Errorf("open trace: %w", err)
		}
		defer f.Close()

		builder := simulation.MakeBuilder().
			WithConfig(config).
			WithLogger(logger)

		monitorOn, _ := cmd.Flags().GetBool("monitor")
		if monitorOn {
			builder = builder.WithMonitoring()
		}

		translationTrace, _ := cmd.Flags().GetString("translation-trace")
		if translationTrace != "" {
			w, closeFn, err := openOutput(cmd, translationTrace)
			if err != nil {
				return err
			}
			defer closeFn()

			builder = builder.WithTranslationTrace(w)
		}

		s, err := builder.Build()
		if err != nil {
			return err
		}

		if open, _ := cmd.Flags().GetBool("open"); open && monitorOn {
			err = browser.OpenURL(s.MonitorURL())
			if err != nil {
				logger.Warn("cannot open browser", "err", err)
			}
		}

		result, err := s.RunTrace(f)
		if err != nil {
			s.Terminate()
			return err
		}

		printResult(cmd.OutOrStdout(), s, result)

		if wait, _ := cmd.Flags().GetBool("wait"); wait && monitorOn {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"Trace finished. Monitor still serving at %s, "+
					"press Ctrl+C to exit.\n", s.MonitorURL())

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			<-sig
		}

		err = s.Terminate()
		if err != nil {
			return err
		}

		if len(result.Mismatches) > 0 {
			return fmt.Errorf("%d reads returned unexpected values",
				len(result.Mismatches))
		}

		return nil
	},
}

func applyRunFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("backing") {
		config.Backing, _ = flags.GetString("backing")
	}

	if flags.Changed("backing-path") {
		config.BackingPath, _ = flags.GetString("backing-path")
	}

	if flags.Changed("record") {
		config.RecordPath, _ = flags.GetString("record")
	}

	if flags.Changed("port") {
		config.MonitorPort, _ = flags.GetInt("port")
	}

	return config.Validate()
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}

	return f, func() { f.Close() }, nil
}

func printResult(
	w io.Writer,
	s *simulation.Simulation,
	result simulation.TraceResult,
) {
	stats := s.Stats()

	fmt.Fprintf(w, "reads:              %d\n", result.Reads)
	fmt.Fprintf(w, "writes:             %d\n", result.Writes)
	fmt.Fprintf(w, "rejected:           %d\n", result.Rejected)
	fmt.Fprintf(w, "page faults:        %d\n", stats.PageFaults)
	fmt.Fprintf(w, "evictions:          %d\n", stats.Evictions)
	fmt.Fprintf(w, "zero-frame reuses:  %d\n", stats.ZeroFrameReuses)
	fmt.Fprintf(w, "frames in use:      %d/%d\n",
		s.FramesInUse(), s.Config().VM.NumFrames)

	for _, m := range result.Mismatches {
		fmt.Fprintf(w, "line %d: read %d returned %d, expected %d\n",
			m.Line, m.Addr, m.Got, m.Expected)
	}
}

func init() {
	runCmd.Flags().String("trace", "", "The trace file to replay.")
	runCmd.Flags().String("backing", "",
		"The backing store, memory or sqlite. Overrides VMSIM_BACKING.")
	runCmd.Flags().String("backing-path", "",
		"The SQLite file of the backing store. Overrides VMSIM_BACKING_PATH.")
	runCmd.Flags().String("record", "",
		"Record the events into [record].sqlite3. Overrides VMSIM_RECORD.")
	runCmd.Flags().String("translation-trace", "",
		"Write every fault, reuse, and eviction to a file, or - for stdout.")
	runCmd.Flags().Bool("monitor", false, "Serve the monitoring page.")
	runCmd.Flags().Int("port", 0,
		"The port of the monitoring server. Overrides VMSIM_MONITOR_PORT.")
	runCmd.Flags().Bool("open", false,
		"Open the monitoring page in a browser.")
	runCmd.Flags().Bool("wait", false,
		"Keep the monitoring server alive after the trace finishes.")

	err := runCmd.MarkFlagRequired("trace")
	if err != nil {
		panic(err)
	}

	rootCmd.AddCommand(runCmd)
}
