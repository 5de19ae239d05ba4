package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmsim/mem/vm/mmu"
)

var _ = Describe("Monitor", func() {
	var (
		monitor *Monitor
		comp    *mmu.Comp
		lock    sync.Mutex
	)

	get := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		monitor.router().ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		comp = mmu.MakeBuilder().
			WithOffsetWidth(2).
			WithTablesDepth(2).
			WithNumFrames(6).
			WithVirtualMemorySize(64).
			Build("MMU")

		monitor = NewMonitor()
		monitor.RegisterComponent(comp, &lock)

		comp.Write(0, 7)
		comp.Write(20, 9)
	})

	It("should list components", func() {
		rec := get("/api/list_components")

		var names []string
		Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(Equal([]string{"MMU"}))
	})

	It("should return 404 for unknown components", func() {
		rec := get("/api/stats/GPU")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should report stats", func() {
		rec := get("/api/stats/MMU")

		var stats mmu.Stats
		Expect(json.Unmarshal(rec.Body.Bytes(), &stats)).To(Succeed())
		Expect(stats.Writes).To(Equal(uint64(2)))
		Expect(stats.PageFaults).To(Equal(uint64(4)))
		Expect(stats.Evictions).To(Equal(uint64(0)))
	})

	It("should report mappings", func() {
		rec := get("/api/mappings/MMU")

		var rsp mappingsRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.NumFrames).To(Equal(uint64(6)))
		Expect(rsp.FramesInUse).To(Equal(5))
		Expect(rsp.Mappings).To(ConsistOf(
			mmu.Mapping{VPN: 0, Frame: 2},
			mmu.Mapping{VPN: 5, Frame: 4},
		))
	})

	It("should serialize the component", func() {
		rec := get("/api/component/MMU")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should read a field", func() {
		rec := get("/api/field/MMU/stats.Writes")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("2"))
	})

	It("should reject a bad field path", func() {
		rec := get("/api/field/MMU/stats.Nothing")

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	Context("when walking fields", func() {
		type inner struct {
			Values []int
		}

		type outer struct {
			Inner *inner
		}

		It("should walk into pointers and slices", func() {
			o := &outer{Inner: &inner{Values: []int{1, 2, 3}}}

			elem, err := monitor.walkFields(o, "Inner.Values.1")

			Expect(err).NotTo(HaveOccurred())
			Expect(elem.Int()).To(Equal(int64(2)))
		})

		It("should fail on an out of range index", func() {
			o := &outer{Inner: &inner{Values: []int{1}}}

			_, err := monitor.walkFields(o, "Inner.Values.4")

			Expect(err).To(HaveOccurred())
		})
	})

	It("should track progress bars", func() {
		bar := monitor.CreateProgressBar("trace", 10)
		bar.IncrementFinished(2)
		bar.IncrementRejected(1)
		Expect(bar.Fraction()).To(BeNumerically("~", 0.3))

		rec := get("/api/progress")

		var bars []map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0]["finished"]).To(Equal(3.0))
		Expect(bars[0]["rejected"]).To(Equal(1.0))

		monitor.CompleteProgressBar(bar)
		rec = get("/api/progress")
		Expect(rec.Body.String()).To(Equal("[]"))
	})

	It("should give live progress bars distinct IDs", func() {
		a := monitor.CreateProgressBar("a", 1)
		b := monitor.CreateProgressBar("b", 1)
		monitor.CompleteProgressBar(a)
		c := monitor.CreateProgressBar("c", 1)

		Expect(b.ID).NotTo(Equal(c.ID))
		Expect(a.ID).NotTo(Equal(c.ID))
	})
})
