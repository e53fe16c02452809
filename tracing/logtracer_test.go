package tracing

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busbench/harness"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/verdict"
	"github.com/sarchlab/busbench/wishbone"
)

var _ = Describe("LogTracer", func() {
	var (
		buf    *bytes.Buffer
		tracer *LogTracer
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		tracer = NewLogTracer(log.New(buf, "", 0))
	})

	It("should log a stall", func() {
		tracer.Stall(13, memctrl.StallInfo{
			Txn:       wishbone.Transaction{Cyc: true, Stb: true, Addr: 0x40},
			Remaining: 5,
		})

		Expect(buf.String()).To(Equal(
			"cycle 6: stall adr=0x00000040 remaining=5\n"))
	})

	It("should log a peripheral byte", func() {
		tracer.PeriphByte(21, harness.PeriphByte{
			Channel: "uart0", Index: 2, Value: 'L',
		})

		Expect(buf.String()).To(Equal("cycle 10: uart0[2] = 'L'\n"))
	})

	It("should log a beat and a verdict", func() {
		tracer.Beat(15, memctrl.Beat{
			Txn:     wishbone.Transaction{Cyc: true, Stb: true, Addr: 0x4, Sel: 0xF},
			Rsp:     wishbone.Response{Ack: true, Data: 0x1234},
			Outcome: memctrl.Read,
		})
		tracer.Verdict(16, verdict.Verdict{Kind: verdict.Passed, Cycle: 7})

		Expect(buf.String()).To(ContainSubstring("cycle 7: "))
		Expect(buf.String()).To(ContainSubstring("ack=true dat=0x00001234"))
		Expect(buf.String()).To(ContainSubstring("OK : Simulation passed!"))
	})
})
