package tracing

import (
	"bytes"
	"context"
	"io"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busbench/config"
	"github.com/sarchlab/busbench/datarecording"
	"github.com/sarchlab/busbench/dut"
	"github.com/sarchlab/busbench/harness"
	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/verdict"
	"github.com/sarchlab/busbench/wishbone"
)

type fixedTime struct {
	now sim.VTime
}

func (t *fixedTime) CurrentTime() sim.VTime {
	return t.now
}

func buildBench(d dut.DUT, seed int64, profile string) *harness.Harness {
	return harness.MakeBuilder().
		WithEngine(sim.NewSerialEngine()).
		WithDUT(d).
		WithStorage(mem.NewStorage(64 * mem.KiB)).
		WithSeed(seed).
		WithProfile(config.ProfileByName(profile)).
		WithMaxCycles(100000).
		WithConsole(io.Discard).
		Build("Bench")
}

var _ = Describe("traceHook", func() {
	It("should forward hook items with the current time", func() {
		timeTeller := &fixedTime{now: 21}
		tracer := NewCountTracer()
		comp := memctrl.MakeBuilder().WithNewStorage(4 * mem.KiB).Build("Ctrl")

		CollectTrace(comp, timeTeller, tracer)

		comp.Respond(wishbone.Transaction{
			Cyc: true, Stb: true, Addr: 0x10, Sel: 0xF,
		}, false)
		comp.Respond(wishbone.Transaction{
			Cyc: true, Stb: true, We: true, Addr: 0x10, Sel: 0xF, Data: 7,
		}, false)

		Expect(tracer.NumBeats(memctrl.Read)).To(Equal(uint64(1)))
		Expect(tracer.NumBeats(memctrl.Wrote)).To(Equal(uint64(1)))
		Expect(tracer.NumStallCycles()).To(Equal(uint64(0)))
	})
})

var _ = Describe("CountTracer", func() {
	It("should count the activity of a run", func() {
		h := buildBench(dut.NewMaster(dut.HelloProgram(0, "HELLO WORLD")...),
			4, config.UARTProfile)
		tracer := NewCountTracer()
		CollectHarness(h, tracer)

		v, err := h.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(v.Kind).To(Equal(verdict.Passed))
		Expect(tracer.NumBeats(memctrl.Read)).To(Equal(uint64(8)))
		Expect(tracer.NumStallCycles()).To(Equal(h.MemCtrl.NumStallCycles))
		Expect(tracer.NumPeriphBytes("uart0")).To(Equal(uint64(11)))
		Expect(tracer.LastVerdict()).To(Equal(v))
		if tracer.NumStallCycles() > 0 {
			Expect(tracer.LongestStall()).To(BeNumerically(">=", 2))
			Expect(tracer.LongestStall()).To(BeNumerically("<=", 51))
		}

		buf := new(bytes.Buffer)
		tracer.Report(buf)
		Expect(buf.String()).To(ContainSubstring("reads: 8, writes: 0"))
	})
})

var _ = Describe("DBTracer", func() {
	var (
		path     string
		recorder datarecording.DataRecorder
		tracer   *DBTracer
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "trace")
		recorder = datarecording.New(path)
		tracer = NewDBTracer(recorder)
	})

	It("should create the trace tables", func() {
		Expect(recorder.ListTables()).To(ConsistOf(
			BeatTable, StallTable, PeriphTable, VerdictTable))
		Expect(recorder.Close()).To(Succeed())
	})

	It("should store a run", func() {
		h := buildBench(dut.NewMaster(dut.HelloProgram(0, "HELLO WORLD")...),
			1, config.UARTProfile)
		CollectHarness(h, tracer)

		v, err := h.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(recorder.Close()).To(Succeed())

		reader, err := datarecording.NewReader(path)
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		reader.MapTable(BeatTable, BeatEntry{})
		reader.MapTable(PeriphTable, PeriphEntry{})
		reader.MapTable(VerdictTable, VerdictEntry{})

		ctx := context.Background()

		beats, total, err := reader.Query(ctx, BeatTable,
			datarecording.QueryParams{OrderBy: "Cycle"})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(8))
		first := beats[0].(BeatEntry)
		Expect(first.Addr).To(Equal(uint32(0)))
		Expect(first.CTI).To(Equal(wishbone.CTIIncrBurst.String()))
		Expect(first.Outcome).To(Equal(memctrl.Read.String()))
		Expect(beats[7].(BeatEntry).Addr).To(Equal(uint32(0x1C)))

		bytesSeen, _, err := reader.Query(ctx, PeriphTable,
			datarecording.QueryParams{OrderBy: "Cycle"})
		Expect(err).NotTo(HaveOccurred())
		Expect(bytesSeen).To(HaveLen(11))
		Expect(bytesSeen[0]).To(Equal(PeriphEntry{
			Cycle:   bytesSeen[0].(PeriphEntry).Cycle,
			Channel: "uart0",
			Index:   0,
			Value:   'H',
		}))

		verdicts, _, err := reader.Query(ctx, VerdictTable,
			datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(verdicts).To(Equal([]any{VerdictEntry{
			Cycle:   v.Cycle,
			Kind:    "passed",
			Code:    0,
			Message: v.Message,
		}}))
	})
})
