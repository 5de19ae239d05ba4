// Package simulation assembles an MMU with its physical memory, backing
// store, recorder, and monitor, and replays access traces on it.
package simulation

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/memory"
	"github.com/sarchlab/vmsim/memory/swap"
	"github.com/sarchlab/vmsim/monitoring"
)

// A Simulation owns an MMU and everything around it. All accesses to the MMU
// go through the simulation lock so that the monitor can read its state.
type Simulation struct {
	lock sync.Mutex

	id     string
	config Config
	logger *slog.Logger

	mmu            *mmu.Comp
	physicalMemory *memory.PhysicalMemory
	swap           *swap.SQLiteStore

	recorder     datarecording.DataRecorder
	execRecorder *datarecording.ExecRecorder

	monitor    *monitoring.Monitor
	monitorURL string
}

// ID returns the unique ID of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config {
	return s.config
}

// MMU returns the MMU. Callers that use it directly bypass the lock.
func (s *Simulation) MMU() *mmu.Comp {
	return s.mmu
}

// PhysicalMemory returns the physical memory behind the MMU.
func (s *Simulation) PhysicalMemory() *memory.PhysicalMemory {
	return s.physicalMemory
}

// Monitor returns the monitor, or nil if monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring server.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// Read reads the word at the virtual address.
func (s *Simulation) Read(vAddr uint64) (vm.Word, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.mmu.Read(vAddr)
}

// Write writes the word at the virtual address.
func (s *Simulation) Write(vAddr uint64, value vm.Word) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.mmu.Write(vAddr, value)
}

// Stats returns the counters of the MMU.
func (s *Simulation) Stats() mmu.Stats {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.mmu.Stats()
}

// Mappings returns the pages that are currently resident.
func (s *Simulation) Mappings() []mmu.Mapping {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.mmu.Mappings()
}

// FramesInUse returns the number of frames reachable from the root table.
func (s *Simulation) FramesInUse() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.mmu.FramesInUse()
}

// Terminate writes out the recording and closes the databases.
func (s *Simulation) Terminate() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	var errs []error

	if s.recorder != nil {
		s.execRecorder.End()
		errs = append(errs, s.recorder.Close())
		s.recorder = nil
	}

	if s.swap != nil {
		errs = append(errs, s.swap.Close())
		s.swap = nil
	}

	stats := s.mmu.Stats()
	s.logger.Info("simulation terminated",
		"id", s.id,
		"reads", stats.Reads,
		"writes", stats.Writes,
		"page_faults", stats.PageFaults,
		"evictions", stats.Evictions)

	return errors.Join(errs...)
}
