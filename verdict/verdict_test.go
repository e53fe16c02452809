package verdict_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busbench/verdict"
)

var _ = Describe("Recorder", func() {
	var r *verdict.Recorder

	BeforeEach(func() {
		r = &verdict.Recorder{}
	})

	It("should start running", func() {
		Expect(r.Current().Kind).To(Equal(verdict.Running))
		Expect(r.IsTerminal()).To(BeFalse())
	})

	It("should ignore nil failures", func() {
		Expect(r.Fail(nil, 3)).To(BeFalse())
		Expect(r.IsTerminal()).To(BeFalse())
	})

	It("should keep the first failure", func() {
		Expect(r.Fail(verdict.Failf(verdict.CodeBurstAddress, "a"), 10)).To(BeTrue())
		Expect(r.Fail(verdict.Failf(verdict.CodeBurstSense, "b"), 10)).To(BeFalse())
		Expect(r.Pass(11)).To(BeFalse())

		Expect(r.Current()).To(Equal(verdict.Verdict{
			Kind:    verdict.Failed,
			Code:    verdict.CodeBurstAddress,
			Message: "a",
			Cycle:   10,
		}))
	})

	It("should not fail after passing", func() {
		Expect(r.Pass(5)).To(BeTrue())
		Expect(r.Fail(verdict.Failf(verdict.CodeDUTError, "late"), 6)).To(BeFalse())

		Expect(r.Current().Kind).To(Equal(verdict.Passed))
		Expect(r.Current().Code).To(Equal(verdict.CodePassed))
	})
})

var _ = Describe("Failure", func() {
	It("should carry its code in the error text", func() {
		f := verdict.Failf(verdict.CodeBurstContinuity, "cyc dropped at 0x%x", 0x40)

		Expect(f.Error()).To(Equal(
			"burst continuity violation (exit 3): cyc dropped at 0x40"))
	})

	It("should name unknown codes", func() {
		Expect(verdict.Code(42).String()).To(Equal("code 42"))
	})
})
