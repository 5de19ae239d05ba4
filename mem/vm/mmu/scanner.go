package mmu

import (
	"log"

	"github.com/sarchlab/vmsim/mem/vm"
)

// scanResult is what a single pass over the page-table tree learns.
type scanResult struct {
	maxFrame vm.FrameNumber

	zeroFound  bool
	zeroFrame  vm.FrameNumber
	zeroParent vm.FrameNumber
	zeroOffset uint64
}

// scanTree visits every frame reachable from the root. It records the highest
// frame number in use and the first empty table that is not on the path of
// the address being translated.
func (c *Comp) scanTree(vAddr uint64) scanResult {
	r := scanResult{}

	c.scanFrame(&r, vAddr, vm.RootFrame, 0, true, vm.RootFrame, 0)

	if r.zeroFound && r.zeroFrame == vm.RootFrame {
		log.Panic("root table selected for reuse")
	}

	return r
}

func (c *Comp) scanFrame(
	r *scanResult,
	vAddr uint64,
	frame vm.FrameNumber,
	depth uint64,
	onPath bool,
	parent vm.FrameNumber,
	parentOffset uint64,
) {
	if frame > r.maxFrame {
		r.maxFrame = frame
	}

	// Data frames are never read as tables.
	if depth == c.config.TablesDepth {
		return
	}

	pathIndex := c.config.TableIndex(vAddr, depth)
	numChildren := 0

	for offset := uint64(0); offset < c.config.PageSize(); offset++ {
		child := c.entryAt(frame, offset)
		if child == vm.RootFrame {
			continue
		}

		numChildren++

		c.scanFrame(r, vAddr, child, depth+1,
			onPath && offset == pathIndex, frame, offset)
	}

	if numChildren == 0 && !onPath && !r.zeroFound {
		r.zeroFound = true
		r.zeroFrame = frame
		r.zeroParent = parent
		r.zeroOffset = parentOffset
	}
}
