package vm

import (
	"fmt"
	"math/bits"
)

// A Word is the unit that the physical memory stores. Page table entries are
// words too: 0 means an absent child and any other value is the frame number
// of the child.
type Word int64

// FrameNumber is the index of a physical frame.
type FrameNumber uint64

// RootFrame is the frame that always holds the top-level page table.
const RootFrame FrameNumber = 0

// Config holds the constants that shape the page-table tree. A Config is fixed
// once an MMU is built.
type Config struct {
	OffsetWidth       uint64
	TablesDepth       uint64
	NumFrames         uint64
	VirtualMemorySize uint64
}

// PageSize returns the number of words in a frame, which is also the number of
// entries in a page table.
func (c Config) PageSize() uint64 {
	return 1 << c.OffsetWidth
}

// NumPages returns the number of virtual pages.
func (c Config) NumPages() uint64 {
	return c.VirtualMemorySize / c.PageSize()
}

// PhysicalMemorySize returns the number of words in the physical memory.
func (c Config) PhysicalMemorySize() uint64 {
	return c.NumFrames * c.PageSize()
}

// AddressWidth returns the number of bits a virtual address may use.
func (c Config) AddressWidth() uint64 {
	return c.OffsetWidth * (c.TablesDepth + 1)
}

// Validate checks that the configuration describes a usable tree.
func (c Config) Validate() error {
	if c.OffsetWidth == 0 || c.OffsetWidth > 16 {
		return fmt.Errorf("offset width %d out of range [1, 16]", c.OffsetWidth)
	}

	if c.TablesDepth == 0 {
		return fmt.Errorf("tables depth must be at least 1")
	}

	if c.AddressWidth() > 63 {
		return fmt.Errorf("address width %d exceeds 63 bits", c.AddressWidth())
	}

	if c.VirtualMemorySize == 0 || c.VirtualMemorySize%c.PageSize() != 0 {
		return fmt.Errorf(
			"virtual memory size %d is not a positive multiple of page size %d",
			c.VirtualMemorySize, c.PageSize())
	}

	usedWidth := uint64(bits.Len64(c.VirtualMemorySize - 1))
	if usedWidth > c.AddressWidth() {
		return fmt.Errorf(
			"virtual memory size %d needs %d address bits, "+
				"but %d levels of %d bits only cover %d",
			c.VirtualMemorySize, usedWidth,
			c.TablesDepth+1, c.OffsetWidth, c.AddressWidth())
	}

	if c.NumFrames < c.TablesDepth+1 {
		return fmt.Errorf(
			"%d frames cannot hold a walk of depth %d, need at least %d",
			c.NumFrames, c.TablesDepth, c.TablesDepth+1)
	}

	return nil
}

// InRange tells if the virtual address lies inside the virtual memory.
func (c Config) InRange(vAddr uint64) bool {
	return vAddr < c.VirtualMemorySize
}

// TableIndex returns the entry index that the address uses in the table at
// the given level. Level 0 is the root.
func (c Config) TableIndex(vAddr uint64, level uint64) uint64 {
	shift := c.OffsetWidth * (c.TablesDepth - level)
	return (vAddr >> shift) & (c.PageSize() - 1)
}

// Offset returns the in-page offset of the address.
func (c Config) Offset(vAddr uint64) uint64 {
	return vAddr & (c.PageSize() - 1)
}

// PageNumber returns the virtual page number of the address.
func (c Config) PageNumber(vAddr uint64) uint64 {
	return vAddr >> c.OffsetWidth
}

// PhysicalAddress returns the address of a word within a frame.
func (c Config) PhysicalAddress(frame FrameNumber, offset uint64) uint64 {
	return uint64(frame)*c.PageSize() + offset
}

// CyclicDistance returns the distance between two page numbers placed on a
// ring of numPages pages.
func CyclicDistance(a, b, numPages uint64) uint64 {
	diff := a - b
	if b > a {
		diff = b - a
	}

	if numPages-diff < diff {
		return numPages - diff
	}

	return diff
}
