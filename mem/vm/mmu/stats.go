package mmu

import "github.com/sarchlab/vmsim/mem/vm"

// Stats counts what an MMU has done since it was built.
type Stats struct {
	Reads        uint64 `json:"reads"`
	Writes       uint64 `json:"writes"`
	OutOfRange   uint64 `json:"out_of_range"`
	Translations uint64 `json:"translations"`
	Restores     uint64 `json:"restores"`

	PageFaults         uint64 `json:"page_faults"`
	TableFramesCreated uint64 `json:"table_frames_created"`
	DataFramesCreated  uint64 `json:"data_frames_created"`

	GrowthAllocations uint64 `json:"growth_allocations"`
	ZeroFrameReuses   uint64 `json:"zero_frame_reuses"`
	Evictions         uint64 `json:"evictions"`
}

// Stats returns a copy of the counters.
func (c *Comp) Stats() Stats {
	return c.stats
}

// A Mapping tells which frame holds a resident virtual page.
type Mapping struct {
	VPN   uint64         `json:"vpn"`
	Frame vm.FrameNumber `json:"frame"`
}

// Mappings lists the resident pages in the order of the page numbers.
func (c *Comp) Mappings() []Mapping {
	mappings := []Mapping{}

	c.visitLeaves(func(l leaf) {
		mappings = append(mappings, Mapping{VPN: l.VPN, Frame: l.Frame})
	})

	return mappings
}

// FramesInUse returns the number of frames reachable from the root,
// including the root.
func (c *Comp) FramesInUse() int {
	return c.countFrames(vm.RootFrame, 0)
}

func (c *Comp) countFrames(frame vm.FrameNumber, depth uint64) int {
	if depth == c.config.TablesDepth {
		return 1
	}

	n := 1
	for offset := uint64(0); offset < c.config.PageSize(); offset++ {
		child := c.entryAt(frame, offset)
		if child != vm.RootFrame {
			n += c.countFrames(child, depth+1)
		}
	}

	return n
}
