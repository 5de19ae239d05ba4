package memory

import (
	"log"

	"github.com/sarchlab/vmsim/mem/vm"
)

// PhysicalMemory is the default vm.PhysicalStore. It keeps the frames in a
// Storage and swaps pages with a BackingStore.
//
// PhysicalMemory remembers which virtual page each data frame holds. Restoring
// a page into the frame that already holds it does nothing, so that a
// translation can always ask for the page without losing unflushed writes.
// A page that has never been flushed is restored as all zeros.
type PhysicalMemory struct {
	storage  *Storage
	backing  BackingStore
	resident map[vm.FrameNumber]uint64

	numLoads   uint64
	numFlushes uint64
}

// NewPhysicalMemory creates a physical memory with the frames described by
// the config.
func NewPhysicalMemory(
	config vm.Config,
	backing BackingStore,
) *PhysicalMemory {
	return &PhysicalMemory{
		storage:  NewStorage(config.NumFrames, config.PageSize()),
		backing:  backing,
		resident: make(map[vm.FrameNumber]uint64),
	}
}

// Storage returns the storage that holds the frames.
func (m *PhysicalMemory) Storage() *Storage {
	return m.storage
}

// BackingStore returns the store that holds the swapped-out pages.
func (m *PhysicalMemory) BackingStore() BackingStore {
	return m.backing
}

// ReadWord returns the word at the physical address.
func (m *PhysicalMemory) ReadWord(pAddr uint64) vm.Word {
	value, err := m.storage.Read(pAddr)
	if err != nil {
		log.Panicf("read physical address %d: %v", pAddr, err)
	}

	return value
}

// WriteWord stores a word at the physical address.
func (m *PhysicalMemory) WriteWord(pAddr uint64, value vm.Word) {
	err := m.storage.Write(pAddr, value)
	if err != nil {
		log.Panicf("write physical address %d: %v", pAddr, err)
	}
}

// Restore moves the page from the backing store into the frame unless the
// frame already holds it.
func (m *PhysicalMemory) Restore(frame vm.FrameNumber, vpn uint64) {
	if holding, ok := m.resident[frame]; ok && holding == vpn {
		return
	}

	words, found := m.backing.Load(vpn)
	if found {
		m.backing.Delete(vpn)
	}

	err := m.storage.WriteFrame(frame, words)
	if err != nil {
		log.Panicf("restore page %d into frame %d: %v", vpn, frame, err)
	}

	m.resident[frame] = vpn
	m.numLoads++
}

// Evict flushes the frame to the backing store as the content of the page.
func (m *PhysicalMemory) Evict(frame vm.FrameNumber, vpn uint64) {
	if holding, ok := m.resident[frame]; ok && holding != vpn {
		log.Panicf("frame %d holds page %d, cannot evict it as page %d",
			frame, holding, vpn)
	}

	words, err := m.storage.ReadFrame(frame)
	if err != nil {
		log.Panicf("evict frame %d: %v", frame, err)
	}

	m.backing.Store(vpn, words)
	delete(m.resident, frame)
	m.numFlushes++
}

// ResidentPage returns the virtual page that the frame holds.
func (m *PhysicalMemory) ResidentPage(frame vm.FrameNumber) (uint64, bool) {
	vpn, ok := m.resident[frame]
	return vpn, ok
}

// NumLoads returns the number of times a page was loaded into a frame.
func (m *PhysicalMemory) NumLoads() uint64 {
	return m.numLoads
}

// NumFlushes returns the number of times a frame was flushed.
func (m *PhysicalMemory) NumFlushes() uint64 {
	return m.numFlushes
}
