package eviction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Random", func() {
	It("should reject associativity below 1", func() {
		_, err := NewRandom(0, 1)
		Expect(err).To(HaveOccurred())
	})

	It("should only pick ways in range", func() {
		p, err := NewRandom(4, 1)
		Expect(err).ToNot(HaveOccurred())

		for i := 0; i < 1000; i++ {
			victim := p.SelectVictim()
			Expect(victim).To(BeNumerically(">=", 0))
			Expect(victim).To(BeNumerically("<", 4))
		}
	})

	It("should reproduce the same sequence for the same seed", func() {
		p1, _ := NewRandom(8, 42)
		p2, _ := NewRandom(8, 42)

		for i := 0; i < 100; i++ {
			Expect(p1.SelectVictim()).To(Equal(p2.SelectVictim()))
		}
	})

	It("should replay the sequence after reset", func() {
		p, _ := NewRandom(8, 7)

		first := make([]int, 20)
		for i := range first {
			first[i] = p.SelectVictim()
		}

		p.Reset()

		for i := range first {
			Expect(p.SelectVictim()).To(Equal(first[i]))
		}
	})
})
