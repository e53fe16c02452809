package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VTime and Freq", func() {
	It("should count cycles from half-periods", func() {
		Expect(VTime(0).Cycle()).To(Equal(uint64(0)))
		Expect(VTime(9).Cycle()).To(Equal(uint64(4)))
		Expect(VTime(10).Cycle()).To(Equal(uint64(5)))
		Expect(HalfCyclesIn(5)).To(Equal(VTime(10)))
	})

	It("should place rising edges on odd times", func() {
		Expect(VTime(1).IsRisingEdge()).To(BeTrue())
		Expect(VTime(2).IsRisingEdge()).To(BeFalse())
	})

	It("should convert to seconds", func() {
		Expect((1 * GHz).Seconds(4)).To(BeNumerically("~", 2e-9, 1e-15))
	})

	It("should panic on zero frequency", func() {
		Expect(func() { Freq(0).Period() }).To(Panic())
	})
})
