package datarecording

import (
	"github.com/sarchlab/vmsim/mem/vm"
)

// Table names used by the EventHook.
const (
	FaultTableName    = "page_faults"
	EvictionTableName = "evictions"
	ReuseTableName    = "zero_frame_reuses"
)

// FaultEntry is a row of the page fault table.
type FaultEntry struct {
	RunID  string
	Seq    uint64
	MMU    string
	VAddr  uint64
	Level  uint64
	Frame  uint64
	IsLeaf bool
}

// EvictionEntry is a row of the eviction table.
type EvictionEntry struct {
	RunID     string
	Seq       uint64
	MMU       string
	VAddr     uint64
	Frame     uint64
	VPN       uint64
	TargetVPN uint64
	Distance  uint64
}

// ReuseEntry is a row of the zero-frame reuse table.
type ReuseEntry struct {
	RunID  string
	Seq    uint64
	MMU    string
	VAddr  uint64
	Frame  uint64
	Parent uint64
	Offset uint64
}

type namer interface {
	Name() string
}

// EventHook is a hook that records the page faults, evictions, and empty
// table reuses of an MMU.
type EventHook struct {
	runID    string
	recorder DataRecorder
	seq      uint64
}

// NewEventHook creates an EventHook and the tables it writes to.
func NewEventHook(runID string, recorder DataRecorder) *EventHook {
	recorder.CreateTable(FaultTableName, FaultEntry{})
	recorder.CreateTable(EvictionTableName, EvictionEntry{})
	recorder.CreateTable(ReuseTableName, ReuseEntry{})

	return &EventHook{
		runID:    runID,
		recorder: recorder,
	}
}

// Func records the event.
func (h *EventHook) Func(ctx vm.HookCtx) {
	vAddr, ok := ctx.Item.(uint64)
	if !ok {
		return
	}

	name := ""
	if n, ok := ctx.Domain.(namer); ok {
		name = n.Name()
	}

	switch detail := ctx.Detail.(type) {
	case vm.FaultDetail:
		h.recorder.InsertData(FaultTableName, FaultEntry{
			RunID:  h.runID,
			Seq:    h.seq,
			MMU:    name,
			VAddr:  vAddr,
			Level:  detail.Level,
			Frame:  uint64(detail.Frame),
			IsLeaf: detail.IsLeaf,
		})
	case vm.EvictionDetail:
		h.recorder.InsertData(EvictionTableName, EvictionEntry{
			RunID:     h.runID,
			Seq:       h.seq,
			MMU:       name,
			VAddr:     vAddr,
			Frame:     uint64(detail.Frame),
			VPN:       detail.VPN,
			TargetVPN: detail.TargetVPN,
			Distance:  detail.Distance,
		})
	case vm.ReuseDetail:
		h.recorder.InsertData(ReuseTableName, ReuseEntry{
			RunID:  h.runID,
			Seq:    h.seq,
			MMU:    name,
			VAddr:  vAddr,
			Frame:  uint64(detail.Frame),
			Parent: uint64(detail.Parent),
			Offset: detail.Offset,
		})
	default:
		return
	}

	h.seq++
}

// MapEventTables binds the event and run tables of a reader.
func MapEventTables(reader DataReader) {
	reader.MapTable(ExecTableName, ExecInfo{})
	reader.MapTable(FaultTableName, FaultEntry{})
	reader.MapTable(EvictionTableName, EvictionEntry{})
	reader.MapTable(ReuseTableName, ReuseEntry{})
}
