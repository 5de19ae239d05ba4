package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/memory"
)

var _ = Describe("Storage", func() {
	It("should read and write in single frame", func() {
		storage := memory.NewStorage(4, 4)
		Expect(storage.Write(1, 7)).To(Succeed())

		res, err := storage.Read(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(vm.Word(7)))
	})

	It("should read zero from untouched frames", func() {
		storage := memory.NewStorage(4, 4)

		res, err := storage.Read(13)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(vm.Word(0)))
		Expect(storage.NumAllocatedFrames()).To(Equal(0))
	})

	It("should read and write whole frames", func() {
		storage := memory.NewStorage(4, 4)
		Expect(storage.Write(9, 5)).To(Succeed())

		words, err := storage.ReadFrame(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]vm.Word{0, 5, 0, 0}))

		Expect(storage.WriteFrame(2, []vm.Word{1, 2})).To(Succeed())
		words, _ = storage.ReadFrame(2)
		Expect(words).To(Equal([]vm.Word{1, 2, 0, 0}))

		Expect(storage.WriteFrame(2, nil)).To(Succeed())
		words, _ = storage.ReadFrame(2)
		Expect(words).To(Equal([]vm.Word{0, 0, 0, 0}))
	})

	It("should return error if accessing over the capacity", func() {
		storage := memory.NewStorage(4, 4)
		err := storage.Write(16, 1)
		Expect(err).To(MatchError(memory.ErrOutOfCapacity))

		_, err = storage.Read(16)
		Expect(err).To(MatchError(memory.ErrOutOfCapacity))

		_, err = storage.ReadFrame(4)
		Expect(err).To(MatchError(memory.ErrOutOfCapacity))
	})
})
