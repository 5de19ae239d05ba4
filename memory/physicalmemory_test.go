package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/memory"
)

var _ = Describe("PhysicalMemory", func() {
	var (
		mockCtrl *gomock.Controller
		backing  *MockBackingStore
		pm       *memory.PhysicalMemory
		config   vm.Config
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		backing = NewMockBackingStore(mockCtrl)
		config = vm.Config{
			OffsetWidth:       2,
			TablesDepth:       2,
			NumFrames:         6,
			VirtualMemorySize: 64,
		}
		pm = memory.NewPhysicalMemory(config, backing)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should read and write words", func() {
		pm.WriteWord(21, 3)

		Expect(pm.ReadWord(21)).To(Equal(vm.Word(3)))
	})

	It("should panic when accessing beyond the frames", func() {
		Expect(func() { pm.ReadWord(24) }).To(Panic())
		Expect(func() { pm.WriteWord(24, 1) }).To(Panic())
	})

	It("should restore a page that was never stored as zeros", func() {
		pm.WriteWord(8, 9)
		backing.EXPECT().Load(uint64(3)).Return(nil, false)

		pm.Restore(2, 3)

		Expect(pm.ReadWord(8)).To(Equal(vm.Word(0)))
		vpn, ok := pm.ResidentPage(2)
		Expect(ok).To(BeTrue())
		Expect(vpn).To(Equal(uint64(3)))
		Expect(pm.NumLoads()).To(Equal(uint64(1)))
	})

	It("should restore a stored page", func() {
		backing.EXPECT().Load(uint64(3)).Return([]vm.Word{4, 5, 6, 7}, true)
		backing.EXPECT().Delete(uint64(3))

		pm.Restore(1, 3)

		Expect(pm.ReadWord(4)).To(Equal(vm.Word(4)))
		Expect(pm.ReadWord(7)).To(Equal(vm.Word(7)))
	})

	It("should not reload a page the frame already holds", func() {
		backing.EXPECT().Load(uint64(3)).Return(nil, false).Times(1)

		pm.Restore(1, 3)
		pm.WriteWord(5, 11)
		pm.Restore(1, 3)

		Expect(pm.ReadWord(5)).To(Equal(vm.Word(11)))
		Expect(pm.NumLoads()).To(Equal(uint64(1)))
	})

	It("should flush a frame on evict", func() {
		backing.EXPECT().Load(uint64(3)).Return(nil, false)
		pm.Restore(1, 3)
		pm.WriteWord(6, 2)

		backing.EXPECT().Store(uint64(3), []vm.Word{0, 0, 2, 0})
		pm.Evict(1, 3)

		_, ok := pm.ResidentPage(1)
		Expect(ok).To(BeFalse())
		Expect(pm.NumFlushes()).To(Equal(uint64(1)))
	})

	It("should take a restored page out of the backing store", func() {
		store := memory.NewMapBackingStore()
		pm = memory.NewPhysicalMemory(config, store)

		pm.Restore(2, 0)
		pm.WriteWord(8, 7)
		pm.Evict(2, 0)
		Expect(store.NumPages()).To(Equal(1))

		pm.Restore(3, 0)

		_, found := store.Load(0)
		Expect(found).To(BeFalse())
		Expect(store.NumPages()).To(BeZero())
		Expect(pm.ReadWord(12)).To(Equal(vm.Word(7)))
	})

	It("should panic when evicting a frame as another page", func() {
		backing.EXPECT().Load(uint64(3)).Return(nil, false)
		pm.Restore(1, 3)

		Expect(func() { pm.Evict(1, 4) }).To(Panic())
	})
})

var _ = Describe("MapBackingStore", func() {
	It("should keep copies of pages", func() {
		store := memory.NewMapBackingStore()
		page := []vm.Word{1, 2}

		store.Store(5, page)
		page[0] = 9

		loaded, found := store.Load(5)
		Expect(found).To(BeTrue())
		Expect(loaded).To(Equal([]vm.Word{1, 2}))

		loaded[1] = 8
		again, _ := store.Load(5)
		Expect(again).To(Equal([]vm.Word{1, 2}))
		Expect(store.NumPages()).To(Equal(1))
	})

	It("should delete pages", func() {
		store := memory.NewMapBackingStore()
		store.Store(5, []vm.Word{1})
		store.Store(6, []vm.Word{2})

		store.Delete(5)
		store.Delete(7)

		_, found := store.Load(5)
		Expect(found).To(BeFalse())
		Expect(store.NumPages()).To(Equal(1))
	})

	It("should report missing pages", func() {
		store := memory.NewMapBackingStore()

		_, found := store.Load(5)
		Expect(found).To(BeFalse())
	})
})
