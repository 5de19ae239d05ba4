package datarecording

import (
	"os"
	"strings"
	"time"
)

// ExecInfo is a property of a run.
type ExecInfo struct {
	RunID    string
	Property string
	Value    string
}

// ExecTableName is the table that holds the run properties.
const ExecTableName = "exec_info"

// ExecRecorder records how and when a run happened.
type ExecRecorder struct {
	runID    string
	recorder DataRecorder
	entries  []ExecInfo
}

// NewExecRecorder creates an ExecRecorder and its table.
func NewExecRecorder(runID string, recorder DataRecorder) *ExecRecorder {
	recorder.CreateTable(ExecTableName, ExecInfo{})

	return &ExecRecorder{
		runID:    runID,
		recorder: recorder,
	}
}

// Start records the start time, the command, and the working directory.
func (e *ExecRecorder) Start() {
	e.Record("Start Time", formatTime(time.Now()))
	e.Record("Command", strings.Join(os.Args, " "))

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	e.Record("Working Directory", cwd)
}

// Record adds a property of the run.
func (e *ExecRecorder) Record(property, value string) {
	e.entries = append(e.entries, ExecInfo{
		RunID:    e.runID,
		Property: property,
		Value:    value,
	})
}

// End writes the recorded properties along with the end time.
func (e *ExecRecorder) End() {
	e.Record("End Time", formatTime(time.Now()))

	for _, entry := range e.entries {
		e.recorder.InsertData(ExecTableName, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000000000")
}
