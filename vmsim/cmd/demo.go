package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/simulation"
)

type demoStep struct {
	write bool
	addr  uint64
	value vm.Word
}

// Six frames hold the root, two tables, and three data pages, so the fourth
// data page forces an eviction.
var demoSteps = []demoStep{
	{write: true, addr: 0, value: 7},
	{addr: 0},
	{write: true, addr: 20, value: 9},
	{addr: 0},
	{write: true, addr: 4, value: 11},
	{write: true, addr: 24, value: 13},
	{write: true, addr: 8, value: 15},
	{write: true, addr: 12, value: 17},
	{addr: 0},
	{write: true, addr: 32, value: 19},
	{addr: 20},
	{addr: 12},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a small example step by step.",
	Long: "`demo` runs a fixed sequence of accesses on 16 pages of 4 words " +
		"with 2 table levels and 6 frames, and prints the events and the " +
		"resident pages after every access.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		c := config
		c.VM = vm.Config{
			OffsetWidth:       2,
			TablesDepth:       2,
			NumFrames:         6,
			VirtualMemorySize: 64,
		}
		c.Backing = simulation.BackingMemory
		c.RecordPath = ""

		s, err := simulation.MakeBuilder().
			WithConfig(c).
			WithLogger(logger).
			WithTranslationTrace(&indentWriter{w: out}).
			Build()
		if err != nil {
			return err
		}

		for _, step := range demoSteps {
			runDemoStep(out, s, step)
		}

		return s.Terminate()
	},
}

func runDemoStep(out io.Writer, s *simulation.Simulation, step demoStep) {
	vpn := s.Config().VM.PageNumber(step.addr)

	if step.write {
		fmt.Fprintf(out, "write(%d, %d)  page %d\n", step.addr, step.value, vpn)
		s.Write(step.addr, step.value)
	} else {
		fmt.Fprintf(out, "read(%d)  page %d\n", step.addr, vpn)
		value, _ := s.Read(step.addr)
		fmt.Fprintf(out, "  = %d\n", value)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "  \tpage\tframe\n")

	for _, m := range s.Mappings() {
		fmt.Fprintf(tw, "  \t%d\t%d\n", m.VPN, m.Frame)
	}

	tw.Flush()

	stats := s.Stats()
	fmt.Fprintf(out, "  faults %d, evictions %d, reuses %d\n\n",
		stats.PageFaults, stats.Evictions, stats.ZeroFrameReuses)
}

type indentWriter struct {
	w io.Writer
}

func (w *indentWriter) Write(p []byte) (int, error) {
	_, err := fmt.Fprintf(w.w, "  > %s", p)
	if err != nil {
		return 0, err
	}

	return len(p), nil
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
