package mmu

import (
	"log"
	"log/slog"

	"github.com/sarchlab/vmsim/mem/vm"
)

// Comp is the default mmu implementation. It translates virtual addresses
// by walking a page-table tree that lives inside the physical memory, and
// creates the missing tables and data frames on demand.
//
// A Comp is not safe for concurrent use.
type Comp struct {
	*vm.HookableBase

	name    string
	config  vm.Config
	storage vm.PhysicalStore
	logger  *slog.Logger

	stats Stats
}

// Name returns the name of the MMU.
func (c *Comp) Name() string {
	return c.name
}

// Config returns the constants that shape the page-table tree.
func (c *Comp) Config() vm.Config {
	return c.config
}

// Initialize clears the root table. It must run before any translation.
func (c *Comp) Initialize() {
	c.clearFrame(vm.RootFrame)
}

// Read returns the word stored at the virtual address. The bool return value
// is false if the address is outside the virtual memory.
func (c *Comp) Read(vAddr uint64) (vm.Word, bool) {
	pAddr, ok := c.Translate(vAddr)
	if !ok {
		return 0, false
	}

	c.stats.Reads++

	return c.storage.ReadWord(pAddr), true
}

// Write stores a word at the virtual address. It returns false if the address
// is outside the virtual memory.
func (c *Comp) Write(vAddr uint64, value vm.Word) bool {
	pAddr, ok := c.Translate(vAddr)
	if !ok {
		return false
	}

	c.stats.Writes++
	c.storage.WriteWord(pAddr, value)

	return true
}

// Translate returns the physical address that backs the virtual address. The
// frame that holds the address is guaranteed to contain the current content
// of its page when Translate returns.
func (c *Comp) Translate(vAddr uint64) (uint64, bool) {
	if !c.config.InRange(vAddr) {
		c.stats.OutOfRange++
		return 0, false
	}

	return c.walk(vAddr), true
}

func (c *Comp) walk(vAddr uint64) uint64 {
	c.stats.Translations++

	frame := vm.RootFrame
	for level := uint64(0); level < c.config.TablesDepth; level++ {
		index := c.config.TableIndex(vAddr, level)

		next := c.entryAt(frame, index)
		if next == vm.RootFrame {
			next = c.faultIn(vAddr, level, frame, index)
		}

		frame = next
	}

	vpn := c.config.PageNumber(vAddr)
	c.storage.Restore(frame, vpn)
	c.stats.Restores++

	c.InvokeHook(vm.HookCtx{
		Domain: c,
		Pos:    vm.HookPosRestore,
		Item:   vAddr,
		Detail: frame,
	})

	return c.config.PhysicalAddress(frame, c.config.Offset(vAddr))
}

// faultIn creates the frame for an absent entry and links it into the table.
func (c *Comp) faultIn(
	vAddr uint64,
	level uint64,
	table vm.FrameNumber,
	index uint64,
) vm.FrameNumber {
	isLeaf := level == c.config.TablesDepth-1

	frame := c.allocateFrame(vAddr)

	// A data frame gets its content from Restore at the end of the walk.
	if isLeaf {
		c.stats.DataFramesCreated++
	} else {
		c.clearFrame(frame)
		c.stats.TableFramesCreated++
	}

	c.setEntry(table, index, frame)
	c.stats.PageFaults++

	c.logger.Debug("page fault",
		"mmu", c.name, "vaddr", vAddr, "level", level,
		"frame", uint64(frame), "leaf", isLeaf)

	c.InvokeHook(vm.HookCtx{
		Domain: c,
		Pos:    vm.HookPosPageFault,
		Item:   vAddr,
		Detail: vm.FaultDetail{Level: level, Frame: frame, IsLeaf: isLeaf},
	})

	return frame
}

// entryAt decodes the entry at the index of a table. It returns RootFrame for
// an absent child, since the root can never be a child.
func (c *Comp) entryAt(table vm.FrameNumber, index uint64) vm.FrameNumber {
	value := c.storage.ReadWord(c.config.PhysicalAddress(table, index))
	if value < 0 || uint64(value) >= c.config.NumFrames {
		log.Panicf("table %d entry %d holds invalid frame %d",
			table, index, value)
	}

	return vm.FrameNumber(value)
}

func (c *Comp) setEntry(
	table vm.FrameNumber,
	index uint64,
	child vm.FrameNumber,
) {
	c.storage.WriteWord(c.config.PhysicalAddress(table, index), vm.Word(child))
}

func (c *Comp) clearFrame(frame vm.FrameNumber) {
	for offset := uint64(0); offset < c.config.PageSize(); offset++ {
		c.storage.WriteWord(c.config.PhysicalAddress(frame, offset), 0)
	}
}
