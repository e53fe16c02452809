package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NameMustBeValid", func() {
	DescribeTable("valid names",
		func(name string) {
			Expect(func() { NameMustBeValid(name) }).NotTo(Panic())
		},
		Entry("single token", "Bench"),
		Entry("hierarchy", "Bench.MemCtrl"),
		Entry("indexed", "Bench.Uart[1]"),
	)

	DescribeTable("invalid names",
		func(name string) {
			Expect(func() { NameMustBeValid(name) }).To(Panic())
		},
		Entry("trailing dot", "Bench."),
		Entry("lowercase", "Bench.memCtrl"),
		Entry("empty index", "Bench.Uart[]"),
		Entry("unclosed bracket", "Bench.Uart[1"),
		Entry("non-integer index", "Bench.Uart[a]"),
	)
})
