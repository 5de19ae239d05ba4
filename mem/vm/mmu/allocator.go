package mmu

import (
	"log"

	"github.com/sarchlab/vmsim/mem/vm"
)

// allocateFrame returns a frame that a walk for the address can link into
// the tree. Taking back an empty table is preferred over a never-used frame,
// and both are preferred over evicting a data page.
func (c *Comp) allocateFrame(vAddr uint64) vm.FrameNumber {
	scan := c.scanTree(vAddr)

	var frame vm.FrameNumber

	switch {
	case scan.zeroFound:
		frame = c.reuseZeroFrame(vAddr, scan)
	case uint64(scan.maxFrame)+1 < c.config.NumFrames:
		frame = scan.maxFrame + 1
		c.stats.GrowthAllocations++
	default:
		frame = c.evictFarthestPage(vAddr)
	}

	if frame == vm.RootFrame {
		log.Panicf("root frame allocated for address %d", vAddr)
	}

	return frame
}

func (c *Comp) reuseZeroFrame(vAddr uint64, scan scanResult) vm.FrameNumber {
	c.setEntry(scan.zeroParent, scan.zeroOffset, vm.RootFrame)
	c.stats.ZeroFrameReuses++

	c.logger.Debug("empty table reused",
		"mmu", c.name, "vaddr", vAddr, "frame", uint64(scan.zeroFrame),
		"parent", uint64(scan.zeroParent), "offset", scan.zeroOffset)

	c.InvokeHook(vm.HookCtx{
		Domain: c,
		Pos:    vm.HookPosZeroFrameReuse,
		Item:   vAddr,
		Detail: vm.ReuseDetail{
			Frame:  scan.zeroFrame,
			Parent: scan.zeroParent,
			Offset: scan.zeroOffset,
		},
	})

	return scan.zeroFrame
}
