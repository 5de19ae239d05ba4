package simulation

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/rs/xid"

	"github.com/sarchlab/vmsim/datarecording"
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/memory"
	"github.com/sarchlab/vmsim/memory/swap"
	"github.com/sarchlab/vmsim/monitoring"
)

// Builder can be used to build a simulation.
type Builder struct {
	name        string
	config      Config
	logger      *slog.Logger
	monitorOn   bool
	traceWriter io.Writer
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		name:   "MMU",
		config: DefaultConfig(),
	}
}

// WithName sets the name of the MMU.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithConfig sets the configuration of the simulation.
func (b Builder) WithConfig(config Config) Builder {
	b.config = config
	return b
}

// WithLogger sets the logger handed to the MMU.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithMonitoring starts a monitoring server with the simulation.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithTranslationTrace writes a line to w for every page fault, zero-frame
// reuse, and eviction.
func (b Builder) WithTranslationTrace(w io.Writer) Builder {
	b.traceWriter = w
	return b
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	err := b.config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Simulation{
		id:     xid.New().String(),
		config: b.config,
		logger: logger,
	}

	backing, err := b.buildBackingStore(s)
	if err != nil {
		return nil, err
	}

	s.physicalMemory = memory.NewPhysicalMemory(b.config.VM, backing)

	s.mmu = mmu.MakeBuilder().
		WithConfig(b.config.VM).
		WithPhysicalStore(s.physicalMemory).
		WithLogger(logger.With("mmu", b.name)).
		Build(b.name)

	if b.traceWriter != nil {
		s.mmu.AcceptHook(vm.NewTranslationTracer(b.traceWriter))
	}

	if b.config.RecordPath != "" {
		b.buildRecorder(s)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.config.MonitorPort > 0 {
			s.monitor.WithPortNumber(b.config.MonitorPort)
		}

		s.monitor.RegisterComponent(s.mmu, &s.lock)
		s.monitorURL = s.monitor.StartServer()
	}

	logger.Info("simulation created",
		"id", s.id,
		"offset_width", b.config.VM.OffsetWidth,
		"tables_depth", b.config.VM.TablesDepth,
		"num_frames", b.config.VM.NumFrames,
		"virtual_memory_size", b.config.VM.VirtualMemorySize,
		"backing", b.config.Backing)

	return s, nil
}

func (b Builder) buildBackingStore(s *Simulation) (memory.BackingStore, error) {
	switch b.config.Backing {
	case BackingSQLite:
		store, err := swap.Open(b.config.BackingPath)
		if err != nil {
			return nil, err
		}

		s.swap = store

		return store, nil
	default:
		return memory.NewMapBackingStore(), nil
	}
}

func (b Builder) buildRecorder(s *Simulation) {
	s.recorder = datarecording.New(b.config.RecordPath)

	s.execRecorder = datarecording.NewExecRecorder(s.id, s.recorder)
	s.execRecorder.Start()
	s.execRecorder.Record("MMU", b.name)
	s.execRecorder.Record("Offset Width",
		strconv.FormatUint(b.config.VM.OffsetWidth, 10))
	s.execRecorder.Record("Tables Depth",
		strconv.FormatUint(b.config.VM.TablesDepth, 10))
	s.execRecorder.Record("Num Frames",
		strconv.FormatUint(b.config.VM.NumFrames, 10))
	s.execRecorder.Record("Virtual Memory Size",
		strconv.FormatUint(b.config.VM.VirtualMemorySize, 10))
	s.execRecorder.Record("Backing", b.config.Backing)

	s.mmu.AcceptHook(datarecording.NewEventHook(s.id, s.recorder))
}
