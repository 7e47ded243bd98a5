package eviction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FIFO", func() {
	var p Policy

	BeforeEach(func() {
		var err error
		p, err = NewFIFO(4)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should reject associativity below 1", func() {
		_, err := NewFIFO(0)
		Expect(err).To(HaveOccurred())
	})

	It("should rotate through the ways", func() {
		Expect(p.SelectVictim()).To(Equal(0))
		Expect(p.SelectVictim()).To(Equal(1))
		Expect(p.SelectVictim()).To(Equal(2))
		Expect(p.SelectVictim()).To(Equal(3))
		Expect(p.SelectVictim()).To(Equal(0))
	})

	It("should ignore accesses", func() {
		p.OnAccess(2)
		p.OnAccess(2)

		Expect(p.SelectVictim()).To(Equal(0))
	})

	It("should rewind the pointer on reset", func() {
		p.SelectVictim()
		p.SelectVictim()
		p.Reset()

		Expect(p.SelectVictim()).To(Equal(0))
	})
})
