package eviction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PLRU", func() {
	It("should reject non-power-of-two associativity", func() {
		for _, numWays := range []int{0, 1, 3, 5, 6, 7, 9, 12} {
			_, err := NewPLRU(numWays)
			Expect(err).To(HaveOccurred(), "numWays=%d", numWays)
		}
	})

	It("should accept power-of-two associativity", func() {
		for _, numWays := range []int{2, 4, 8, 16} {
			_, err := NewPLRU(numWays)
			Expect(err).ToNot(HaveOccurred(), "numWays=%d", numWays)
		}
	})

	It("should pick way 0 before any access", func() {
		p, _ := NewPLRU(4)
		Expect(p.SelectVictim()).To(Equal(0))
	})

	It("should point the victim away from the accessed half", func() {
		p, _ := NewPLRU(4)

		p.OnAccess(0)
		Expect(p.SelectVictim()).To(Equal(2))

		p.OnAccess(2)
		Expect(p.SelectVictim()).To(Equal(1))
	})

	It("should send the victim to the untouched half", func() {
		p, _ := NewPLRU(4)

		p.OnAccess(0)
		p.OnAccess(1)

		Expect(p.SelectVictim()).To(Equal(2))
	})

	It("should approximate rather than track exact recency", func() {
		p, _ := NewPLRU(4)

		// Accessing way 2 flips the root toward the left half, and the
		// left-subtree bit still points at way 0 after the access to way 1.
		// Exact LRU would evict the untouched way 3; PLRU picks way 0.
		p.OnAccess(0)
		p.OnAccess(1)
		p.OnAccess(2)

		Expect(p.SelectVictim()).To(Equal(0))
	})

	It("should behave as exact LRU for two ways", func() {
		p, _ := NewPLRU(2)

		p.OnAccess(0)
		Expect(p.SelectVictim()).To(Equal(1))

		p.OnAccess(1)
		Expect(p.SelectVictim()).To(Equal(0))
	})

	It("should not mutate state in SelectVictim", func() {
		p, _ := NewPLRU(8)
		p.OnAccess(5)

		Expect(p.SelectVictim()).To(Equal(p.SelectVictim()))
	})

	It("should clear all bits on reset", func() {
		p, _ := NewPLRU(16)
		p.OnAccess(11)
		p.OnAccess(3)
		p.Reset()

		Expect(p.SelectVictim()).To(Equal(0))
	})
})
