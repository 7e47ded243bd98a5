package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tracelab/cachemodel/analysis"
	"github.com/tracelab/cachemodel/trace"
)

var _ = Describe("WorkingSetSizes", func() {
	It("should reject invalid parameters", func() {
		_, err := analysis.WorkingSetSizes(nil, 0, 64)
		Expect(err).To(HaveOccurred())

		_, err = analysis.WorkingSetSizes(nil, 10, 100)
		Expect(err).To(HaveOccurred())
	})

	It("should slide a distinct-block count over the trace", func() {
		accesses := addressTrace([]uint64{0, 1, 0, 2, 3, 3}, 64)

		sizes, err := analysis.WorkingSetSizes(accesses, 3, 64)
		Expect(err).ToNot(HaveOccurred())
		// Windows: {0,1,0} {1,0,2} {0,2,3} {2,3,3}.
		Expect(sizes).To(Equal([]int{2, 3, 3, 2}))
	})

	It("should equal the distinct-block count when the window spans the trace", func() {
		accesses := trace.Locality(500, 16, 128, 64, 0.8, 3)

		sizes, err := analysis.WorkingSetSizes(accesses, 500, 64)
		Expect(err).ToNot(HaveOccurred())
		Expect(sizes).To(HaveLen(1))
		Expect(sizes[0]).To(Equal(analysis.DistinctBlocks(accesses, 64)))
	})

	It("should fall back to the whole trace when shorter than the window", func() {
		accesses := addressTrace([]uint64{4, 4, 5}, 64)

		sizes, err := analysis.WorkingSetSizes(accesses, 10, 64)
		Expect(err).ToNot(HaveOccurred())
		Expect(sizes).To(Equal([]int{2}))
	})
})
