// Package vm provides the models for address translations
package vm

// PhysicalStore is the physical memory that an MMU translates into. Besides
// word access, it can move the content of a virtual page between a frame and
// the backing store.
type PhysicalStore interface {
	// ReadWord returns the word at the physical address.
	ReadWord(pAddr uint64) Word

	// WriteWord stores a word at the physical address.
	WriteWord(pAddr uint64, value Word)

	// Restore makes the frame hold the current content of the virtual page.
	Restore(frame FrameNumber, vpn uint64)

	// Evict flushes the content of the frame to the backing store as the
	// content of the virtual page.
	Evict(frame FrameNumber, vpn uint64)
}
