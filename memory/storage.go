package memory

import (
	"errors"

	"github.com/sarchlab/vmsim/mem/vm"
)

// ErrOutOfCapacity is returned when accessing a word beyond the storage.
var ErrOutOfCapacity = errors.New(
	"accessing physical address beyond the storage capacity")

// A Storage keeps the words of the simulated physical memory.
//
// The storage manages the words in frames. For the frames that are not
// touched by Read and Write functions, no memory will be allocated and their
// words read as zero.
type Storage struct {
	frameSize uint64
	capacity  uint64
	data      map[uint64][]vm.Word
}

// NewStorage creates a storage object with numFrames frames of frameSize
// words each.
func NewStorage(numFrames, frameSize uint64) *Storage {
	storage := new(Storage)

	storage.frameSize = frameSize
	storage.capacity = numFrames * frameSize
	storage.data = make(map[uint64][]vm.Word)

	return storage
}

// Capacity returns the number of words in the storage.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

// FrameSize returns the number of words in a frame.
func (s *Storage) FrameSize() uint64 {
	return s.frameSize
}

// createOrGetFrame retrieves a frame if the frame has been created before.
// Otherwise it initializes the frame in the storage object.
func (s *Storage) createOrGetFrame(address uint64) ([]vm.Word, error) {
	if address >= s.capacity {
		return nil, ErrOutOfCapacity
	}

	frame := address / s.frameSize
	unit, ok := s.data[frame]
	if !ok {
		unit = make([]vm.Word, s.frameSize)
		s.data[frame] = unit
	}

	return unit, nil
}

// Read returns the word at the address.
func (s *Storage) Read(address uint64) (vm.Word, error) {
	if address >= s.capacity {
		return 0, ErrOutOfCapacity
	}

	unit, ok := s.data[address/s.frameSize]
	if !ok {
		return 0, nil
	}

	return unit[address%s.frameSize], nil
}

// Write stores a word at the address.
func (s *Storage) Write(address uint64, value vm.Word) error {
	unit, err := s.createOrGetFrame(address)
	if err != nil {
		return err
	}

	unit[address%s.frameSize] = value

	return nil
}

// ReadFrame returns a copy of all the words in a frame.
func (s *Storage) ReadFrame(frame vm.FrameNumber) ([]vm.Word, error) {
	base := uint64(frame) * s.frameSize
	if base >= s.capacity {
		return nil, ErrOutOfCapacity
	}

	res := make([]vm.Word, s.frameSize)
	if unit, ok := s.data[uint64(frame)]; ok {
		copy(res, unit)
	}

	return res, nil
}

// WriteFrame replaces the content of a frame. Missing trailing words are
// zeroed.
func (s *Storage) WriteFrame(frame vm.FrameNumber, words []vm.Word) error {
	base := uint64(frame) * s.frameSize

	unit, err := s.createOrGetFrame(base)
	if err != nil {
		return err
	}

	n := copy(unit, words)
	for i := n; i < len(unit); i++ {
		unit[i] = 0
	}

	return nil
}

// NumAllocatedFrames returns the number of frames that hold memory.
func (s *Storage) NumAllocatedFrames() int {
	return len(s.data)
}
