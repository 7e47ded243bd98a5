package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tracelab/cachemodel/analysis"
	"github.com/tracelab/cachemodel/trace"
)

// naiveDistances is the O(n²) windowed set-difference reference. It exists
// only to cross-check the Fenwick-tree implementation.
func naiveDistances(accesses []trace.Access, blockSize int) []int {
	blocks := make([]uint64, len(accesses))
	for i, a := range accesses {
		blocks[i] = a.Address / uint64(blockSize)
	}

	lastSeen := make(map[uint64]int)
	distances := make([]int, len(blocks))

	for i, block := range blocks {
		if prev, seen := lastSeen[block]; seen {
			between := make(map[uint64]struct{})
			for _, b := range blocks[prev+1 : i] {
				between[b] = struct{}{}
			}
			distances[i] = len(between)
		} else {
			distances[i] = analysis.InfiniteDistance
		}

		lastSeen[block] = i
	}

	return distances
}

func addressTrace(blocks []uint64, blockSize int) []trace.Access {
	accesses := make([]trace.Access, len(blocks))
	for i, b := range blocks {
		accesses[i] = trace.Access{
			Address:   b * uint64(blockSize),
			Timestamp: uint64(i),
		}
	}

	return accesses
}

var _ = Describe("ReuseDistances", func() {
	It("should reject a non-power-of-two block size", func() {
		_, err := analysis.ReuseDistances(nil, 48)
		Expect(err).To(HaveOccurred())
	})

	It("should mark first references as infinite", func() {
		accesses := addressTrace([]uint64{0, 1, 2, 3}, 64)

		distances, err := analysis.ReuseDistances(accesses, 64)
		Expect(err).ToNot(HaveOccurred())
		Expect(distances).To(Equal([]int{-1, -1, -1, -1}))
	})

	It("should count distinct blocks between repeats", func() {
		accesses := addressTrace([]uint64{0, 1, 2, 0, 1, 3, 0}, 64)

		distances, err := analysis.ReuseDistances(accesses, 64)
		Expect(err).ToNot(HaveOccurred())
		Expect(distances).To(Equal([]int{-1, -1, -1, 2, 2, -1, 2}))
	})

	It("should report distance 0 for back-to-back repeats", func() {
		accesses := addressTrace([]uint64{7, 7, 7}, 64)

		distances, err := analysis.ReuseDistances(accesses, 64)
		Expect(err).ToNot(HaveOccurred())
		Expect(distances).To(Equal([]int{-1, 0, 0}))
	})

	It("should group addresses within the same block", func() {
		accesses := []trace.Access{
			{Address: 0x00}, {Address: 0x3F}, {Address: 0x40},
		}

		distances, err := analysis.ReuseDistances(accesses, 64)
		Expect(err).ToNot(HaveOccurred())
		Expect(distances).To(Equal([]int{-1, 0, -1}))
	})

	It("should agree with the naive reference on random traces", func() {
		for _, seed := range []int64{1, 2, 3} {
			accesses := trace.Random(400, 1<<13, seed)

			distances, err := analysis.ReuseDistances(accesses, 64)
			Expect(err).ToNot(HaveOccurred())
			Expect(distances).To(Equal(naiveDistances(accesses, 64)))
		}
	})
})

var _ = Describe("PredictHitRate", func() {
	It("should return 0 on an empty trace", func() {
		Expect(analysis.PredictHitRate(nil, 8)).To(BeZero())
	})

	It("should count accesses with distance below the capacity", func() {
		distances := []int{-1, -1, -1, 2, 2, -1, 2}

		Expect(analysis.PredictHitRate(distances, 3)).To(
			BeNumerically("~", 3.0/7.0, 1e-12))
		Expect(analysis.PredictHitRate(distances, 2)).To(BeZero())
	})

	It("should match a fully-associative LRU simulation", func() {
		accesses := trace.Locality(1000, 24, 256, 64, 0.8, 11)

		distances, err := analysis.ReuseDistances(accesses, 64)
		Expect(err).ToNot(HaveOccurred())

		for _, capacity := range []int{1, 2, 4, 8, 16, 32, 64} {
			eval := analysis.SimulationEvaluator(accesses, 64)
			simulated, err := eval(capacity)
			Expect(err).ToNot(HaveOccurred())

			predicted := analysis.PredictHitRate(distances, capacity)
			Expect(predicted).To(Equal(simulated), "capacity=%d", capacity)
		}
	})
})

var _ = Describe("MissRateCurve", func() {
	It("should be non-increasing in miss rate", func() {
		accesses := trace.Zipf(2000, 1.2, 1.0, 4096, 64, 5)

		distances, err := analysis.ReuseDistances(accesses, 64)
		Expect(err).ToNot(HaveOccurred())

		curve := analysis.MissRateCurve(distances, 256)
		Expect(curve).To(HaveLen(256))

		for i := 1; i < len(curve); i++ {
			Expect(curve[i].MissRate).To(
				BeNumerically("<=", curve[i-1].MissRate), "size=%d", i+1)
		}
	})

	It("should match PredictHitRate point by point", func() {
		accesses := trace.Random(300, 1<<12, 9)

		distances, err := analysis.ReuseDistances(accesses, 64)
		Expect(err).ToNot(HaveOccurred())

		curve := analysis.MissRateCurve(distances, 32)
		for _, point := range curve {
			want := 1 - analysis.PredictHitRate(distances, point.Size)
			Expect(point.MissRate).To(
				BeNumerically("~", want, 1e-12), "size=%d", point.Size)
		}
	})
})

var _ = Describe("NewDistanceHistogram", func() {
	It("should bucket distances with an overflow bin", func() {
		distances := []int{-1, 0, 0, 3, 9, 12, -1}

		h := analysis.NewDistanceHistogram(distances, 10)

		Expect(h.FirstReferences).To(Equal(uint64(2)))
		Expect(h.Overflow).To(Equal(uint64(1)))
		Expect(h.Counts[0]).To(Equal(uint64(2)))
		Expect(h.Counts[3]).To(Equal(uint64(1)))
		Expect(h.Counts[9]).To(Equal(uint64(1)))
	})
})
