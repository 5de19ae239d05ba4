package mmu

import (
	"log/slog"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/memory"
)

// A Builder can build MMU component
type Builder struct {
	config  vm.Config
	storage vm.PhysicalStore
	logger  *slog.Logger
}

// MakeBuilder creates a new builder. The default tree translates a 20-bit
// virtual address space through 4 levels of 16-entry tables into 64 frames.
func MakeBuilder() Builder {
	return Builder{
		config: vm.Config{
			OffsetWidth:       4,
			TablesDepth:       4,
			NumFrames:         64,
			VirtualMemorySize: 1 << 20,
		},
	}
}

// WithConfig sets all the constants of the page-table tree.
func (b Builder) WithConfig(config vm.Config) Builder {
	b.config = config
	return b
}

// WithOffsetWidth sets the number of bits of the in-page offset and of each
// table index.
func (b Builder) WithOffsetWidth(width uint64) Builder {
	b.config.OffsetWidth = width
	return b
}

// WithTablesDepth sets the number of table levels.
func (b Builder) WithTablesDepth(depth uint64) Builder {
	b.config.TablesDepth = depth
	return b
}

// WithNumFrames sets the number of physical frames.
func (b Builder) WithNumFrames(n uint64) Builder {
	b.config.NumFrames = n
	return b
}

// WithVirtualMemorySize sets the number of words in the virtual memory.
func (b Builder) WithVirtualMemorySize(size uint64) Builder {
	b.config.VirtualMemorySize = size
	return b
}

// WithPhysicalStore sets the physical memory that the MMU translates into.
// If not set, an in-memory PhysicalMemory is created.
func (b Builder) WithPhysicalStore(storage vm.PhysicalStore) Builder {
	b.storage = storage
	return b
}

// WithLogger sets the logger that receives the fault and eviction records.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if err := b.config.Validate(); err != nil {
		panic(err)
	}
}

// Build returns a newly created MMU component with a cleared root table.
func (b Builder) Build(name string) *Comp {
	b.parametersMustBeValid()

	mmu := new(Comp)
	mmu.HookableBase = vm.NewHookableBase()
	mmu.name = name
	mmu.config = b.config

	mmu.storage = b.storage
	if mmu.storage == nil {
		mmu.storage = memory.NewPhysicalMemory(
			b.config, memory.NewMapBackingStore())
	}

	mmu.logger = b.logger
	if mmu.logger == nil {
		mmu.logger = slog.Default()
	}

	mmu.Initialize()

	return mmu
}
