package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("vmsim", func() {
	var (
		dir     string
		envFile string
		stdout  *bytes.Buffer
	)

	execute := func(args ...string) error {
		stdout = new(bytes.Buffer)
		envFiles = nil
		logLevel = ""

		rootCmd.SetArgs(args)
		rootCmd.SetOut(stdout)
		rootCmd.SetErr(new(bytes.Buffer))

		return rootCmd.Execute()
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		envFile = filepath.Join(dir, "small.env")

		Expect(os.WriteFile(envFile, []byte(
			"VMSIM_OFFSET_WIDTH=2\n"+
				"VMSIM_TABLES_DEPTH=2\n"+
				"VMSIM_NUM_FRAMES=6\n"+
				"VMSIM_VIRTUAL_MEMORY_SIZE=64\n"), 0o644)).To(Succeed())
	})

	It("should print the configuration", func() {
		Expect(execute("config", "--env", envFile)).To(Succeed())

		Expect(stdout.String()).To(ContainSubstring("VMSIM_NUM_FRAMES=6"))
		Expect(stdout.String()).To(ContainSubstring("16 pages"))
	})

	It("should run the demo", func() {
		Expect(execute("demo")).To(Succeed())

		out := stdout.String()
		Expect(out).To(ContainSubstring("write(24, 13)  page 6"))
		Expect(out).To(ContainSubstring("evictions 1, reuses 0"))
		Expect(out).To(ContainSubstring(",Eviction,24,"))
	})

	It("should replay a trace", func() {
		trace := filepath.Join(dir, "trace.txt")
		Expect(os.WriteFile(trace, []byte(
			"W 0 7\nW 20 9\nW 4 11\nW 24 13\nR 0 7\nR 24 13\n"),
			0o644)).To(Succeed())

		Expect(execute("run", "--env", envFile, "--trace", trace)).
			To(Succeed())

		Expect(stdout.String()).To(MatchRegexp(`evictions:\s+3`))
		Expect(stdout.String()).To(MatchRegexp(`writes:\s+4`))
	})

	It("should fail on unexpected values", func() {
		trace := filepath.Join(dir, "trace.txt")
		Expect(os.WriteFile(trace, []byte("W 0 7\nR 0 8\n"), 0o644)).
			To(Succeed())

		err := execute("run", "--env", envFile, "--trace", trace)

		Expect(err).To(MatchError(ContainSubstring("1 reads")))
		Expect(stdout.String()).To(ContainSubstring("expected 8"))
	})
})
