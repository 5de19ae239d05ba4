package mmu

import (
	"log"

	"github.com/sarchlab/vmsim/mem/vm"
)

// A leaf is a data frame together with the table entry that maps it.
type leaf struct {
	Frame  vm.FrameNumber
	Parent vm.FrameNumber
	Offset uint64
	VPN    uint64
}

// visitLeaves calls fn on every mapped data frame in pre-order.
func (c *Comp) visitLeaves(fn func(l leaf)) {
	c.visitLeavesUnder(vm.RootFrame, 0, 0, fn)
}

func (c *Comp) visitLeavesUnder(
	table vm.FrameNumber,
	depth uint64,
	prefix uint64,
	fn func(l leaf),
) {
	isLastLevel := depth == c.config.TablesDepth-1

	for offset := uint64(0); offset < c.config.PageSize(); offset++ {
		child := c.entryAt(table, offset)
		if child == vm.RootFrame {
			continue
		}

		childPrefix := prefix<<c.config.OffsetWidth | offset

		if isLastLevel {
			fn(leaf{Frame: child, Parent: table, Offset: offset, VPN: childPrefix})
			continue
		}

		c.visitLeavesUnder(child, depth+1, childPrefix, fn)
	}
}

// evictFarthestPage reclaims the data frame whose page is the farthest, on
// the page ring, from the page of the address under service. The target page
// itself is never evicted. Ties go to the first page found.
func (c *Comp) evictFarthestPage(vAddr uint64) vm.FrameNumber {
	targetVPN := c.config.PageNumber(vAddr)
	numPages := c.config.NumPages()

	var (
		victim       leaf
		found        bool
		bestDistance uint64
	)

	c.visitLeaves(func(l leaf) {
		if l.VPN == targetVPN {
			return
		}

		distance := vm.CyclicDistance(l.VPN, targetVPN, numPages)
		if !found || distance > bestDistance {
			victim = l
			found = true
			bestDistance = distance
		}
	})

	if !found {
		log.Panicf("no page can be evicted to serve address %d", vAddr)
	}

	if victim.Frame == vm.RootFrame {
		log.Panic("root frame selected for eviction")
	}

	c.setEntry(victim.Parent, victim.Offset, vm.RootFrame)
	c.storage.Evict(victim.Frame, victim.VPN)
	c.stats.Evictions++

	c.logger.Debug("page evicted",
		"mmu", c.name, "vaddr", vAddr, "frame", uint64(victim.Frame),
		"vpn", victim.VPN, "distance", bestDistance)

	c.InvokeHook(vm.HookCtx{
		Domain: c,
		Pos:    vm.HookPosEviction,
		Item:   vAddr,
		Detail: vm.EvictionDetail{
			Frame:     victim.Frame,
			VPN:       victim.VPN,
			TargetVPN: targetVPN,
			Distance:  bestDistance,
		},
	})

	return victim.Frame
}
