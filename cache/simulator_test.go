package cache

import (
	gomock "go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tracelab/cachemodel/cache/eviction"
	"github.com/tracelab/cachemodel/trace"
)

var _ = Describe("Simulator", func() {
	Context("with a single 4-way LRU set", func() {
		var sim *Simulator

		BeforeEach(func() {
			var err error
			sim = nil
			sim, err = MakeBuilder().
				WithNumSets(1).
				WithAssociativity(4).
				WithBlockSize(64).
				WithReplacementPolicy(eviction.KindLRU).
				Build("L1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should replay the reference trace exactly", func() {
			addrs := []uint64{
				0x0000, 0x0040, 0x0080, 0x00C0, 0x0000, 0x0100, 0x0040,
			}
			wantHit := []bool{false, false, false, false, true, false, false}

			for i, addr := range addrs {
				result := sim.Access(addr, trace.Read)
				Expect(result.Hit).To(Equal(wantHit[i]), "access %d", i+1)
			}

			Expect(sim.Stats().Hits).To(Equal(uint64(1)))
			Expect(sim.Stats().Misses).To(Equal(uint64(6)))
		})

		It("should hit way 0 on the fifth access and evict block 1 next", func() {
			for _, addr := range []uint64{0x0000, 0x0040, 0x0080, 0x00C0} {
				sim.Access(addr, trace.Read)
			}

			hit := sim.Access(0x0000, trace.Read)
			Expect(hit.Hit).To(BeTrue())
			Expect(hit.WayID).To(Equal(0))

			miss := sim.Access(0x0100, trace.Read)
			Expect(miss.Hit).To(BeFalse())
			Expect(miss.Evicted).To(BeTrue())
			Expect(miss.EvictedTag).To(Equal(uint64(1)))
		})

		It("should fill empty ways in index order", func() {
			for i, addr := range []uint64{0x0000, 0x0040, 0x0080, 0x00C0} {
				result := sim.Access(addr, trace.Read)
				Expect(result.WayID).To(Equal(i))
				Expect(result.Evicted).To(BeFalse())
			}
		})

		It("should mark written lines dirty and report dirty evictions", func() {
			sim.Access(0x0000, trace.Write)
			sim.Access(0x0040, trace.Read)
			sim.Access(0x0080, trace.Read)
			sim.Access(0x00C0, trace.Read)

			result := sim.Access(0x0100, trace.Read)
			Expect(result.Evicted).To(BeTrue())
			Expect(result.EvictedDirty).To(BeTrue())
			Expect(sim.Stats().DirtyEvictions).To(Equal(uint64(1)))
			Expect(sim.Stats().Writes).To(Equal(uint64(1)))
			Expect(sim.Stats().Reads).To(Equal(uint64(4)))
		})

		It("should start from scratch after a reset", func() {
			sim.Access(0x0000, trace.Read)
			sim.Access(0x0000, trace.Read)
			sim.Reset()

			Expect(sim.Stats()).To(Equal(Stats{}))

			result := sim.Access(0x0000, trace.Read)
			Expect(result.Hit).To(BeFalse())
			Expect(result.WayID).To(Equal(0))
		})
	})

	Context("address decoding", func() {
		It("should map a block to exactly one set", func() {
			sim, err := MakeBuilder().
				WithNumSets(8).
				WithAssociativity(2).
				WithBlockSize(64).
				Build("L1")
			Expect(err).ToNot(HaveOccurred())

			result := sim.Access(0x1240, trace.Read)
			// block = 0x1240/64 = 73, set = 73%8 = 1, tag = 73/8 = 9.
			Expect(result.Block).To(Equal(uint64(73)))
			Expect(result.SetID).To(Equal(1))
			Expect(result.Tag).To(Equal(uint64(9)))
		})

		It("should keep set-local state independent", func() {
			sim, err := MakeBuilder().
				WithNumSets(2).
				WithAssociativity(1).
				WithBlockSize(64).
				Build("L1")
			Expect(err).ToNot(HaveOccurred())

			sim.Access(0x0000, trace.Read) // set 0
			sim.Access(0x0040, trace.Read) // set 1
			Expect(sim.Access(0x0000, trace.Read).Hit).To(BeTrue())
			Expect(sim.Access(0x0040, trace.Read).Hit).To(BeTrue())
		})
	})

	Context("accounting", func() {
		It("should always satisfy hits+misses == accesses", func() {
			sim, err := MakeBuilder().
				WithNumSets(4).
				WithAssociativity(2).
				WithBlockSize(32).
				WithReplacementPolicy(eviction.KindPLRU).
				Build("L1")
			Expect(err).ToNot(HaveOccurred())

			accesses := trace.Random(500, 1<<14, 99)
			sim.Replay(accesses)

			stats := sim.Stats()
			Expect(stats.Hits + stats.Misses).To(Equal(uint64(500)))
			Expect(sim.HitRate()).To(BeNumerically(">=", 0))
			Expect(sim.HitRate()).To(BeNumerically("<=", 1))
		})

		It("should report hit rate 0 before any access", func() {
			sim, _ := MakeBuilder().Build("L1")
			Expect(sim.HitRate()).To(BeZero())
		})
	})

	Context("policy equivalence", func() {
		It("should make LRU and FIFO agree when no block repeats", func() {
			build := func(kind string) *Simulator {
				sim, err := MakeBuilder().
					WithNumSets(4).
					WithAssociativity(4).
					WithBlockSize(64).
					WithReplacementPolicy(kind).
					Build(kind)
				Expect(err).ToNot(HaveOccurred())
				return sim
			}

			lruSim := build(eviction.KindLRU)
			fifoSim := build(eviction.KindFIFO)

			accesses := trace.Sequential(200, 64)
			lruResults := lruSim.Replay(accesses)
			fifoResults := fifoSim.Replay(accesses)

			for i := range lruResults {
				Expect(lruResults[i].Hit).To(Equal(fifoResults[i].Hit),
					"access %d", i)
			}
		})
	})

	Context("policy delegation", func() {
		var (
			mockCtrl *gomock.Controller
			policy   *MockPolicy
			sim      *Simulator
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			policy = NewMockPolicy(mockCtrl)

			var err error
			sim, err = MakeBuilder().
				WithNumSets(1).
				WithAssociativity(4).
				WithBlockSize(64).
				WithPolicyFactory(func(numWays, setID int) (eviction.Policy, error) {
					return policy, nil
				}).
				Build("L1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should ask the policy for a victim on a miss", func() {
			policy.EXPECT().SelectVictim().Return(2)
			policy.EXPECT().OnAccess(2)

			result := sim.Access(0x0000, trace.Read)
			Expect(result.Hit).To(BeFalse())
			Expect(result.WayID).To(Equal(2))
		})

		It("should only notify the policy on a hit", func() {
			policy.EXPECT().SelectVictim().Return(1)
			policy.EXPECT().OnAccess(1).Times(2)

			sim.Access(0x0000, trace.Read)

			result := sim.Access(0x0000, trace.Read)
			Expect(result.Hit).To(BeTrue())
			Expect(result.WayID).To(Equal(1))
		})
	})
})
