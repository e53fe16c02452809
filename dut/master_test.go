package dut_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busbench/dut"
	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/wishbone"
)

// bench clocks a device by hand: every call to edge drives a rising edge
// followed by a falling edge.
type bench struct {
	d   dut.DUT
	in  dut.Inputs
	out dut.Outputs
}

func newBench(d dut.DUT, storage *mem.Storage) *bench {
	b := &bench{d: d}
	b.in.Mem = storage
	b.out.Periph = make([]dut.PeriphOut, 2)
	return b
}

func (b *bench) edge() {
	b.in.Clk = true
	b.d.Eval(&b.in, &b.out)
	b.in.Clk = false
	b.d.Eval(&b.in, &b.out)
}

var _ = Describe("Master", func() {
	var storage *mem.Storage

	BeforeEach(func() {
		storage = mem.NewStorage(4 * mem.KiB)
		for a := uint32(0); a < 64; a += 4 {
			storage.WriteWord(a, a*0x01010101, 0xF)
		}
	})

	It("should idle while in reset", func() {
		b := newBench(dut.NewMaster(dut.Op{Kind: dut.OpRead, Beats: 2}), storage)
		b.in.Reset = true

		b.edge()
		b.edge()

		Expect(b.out.Bus.Active()).To(BeFalse())
	})

	It("should issue an incrementing burst and hold it while not acknowledged", func() {
		b := newBench(dut.NewMaster(dut.Op{Kind: dut.OpRead, Addr: 0x10, Beats: 3}), storage)

		b.edge()
		Expect(b.out.Bus).To(Equal(wishbone.Transaction{
			Cyc: true, Stb: true, Addr: 0x10, Sel: 0xF, CTI: wishbone.CTIIncrBurst,
		}))

		b.edge()
		Expect(b.out.Bus.Addr).To(Equal(uint32(0x10)))

		b.in.Ack, b.in.Data = true, storage.WordAt(0x10)
		b.edge()
		Expect(b.out.Bus.Addr).To(Equal(uint32(0x14)))

		b.in.Data = storage.WordAt(0x14)
		b.edge()
		Expect(b.out.Bus.Addr).To(Equal(uint32(0x18)))
		Expect(b.out.Bus.CTI).To(Equal(wishbone.CTIEndOfBurst))

		b.in.Data = storage.WordAt(0x18)
		b.edge()
		Expect(b.out.Bus.Active()).To(BeFalse())
		Expect(b.out.SimErr).To(BeFalse())
	})

	It("should flag read data that disagrees with the mirror", func() {
		m := dut.NewMaster(dut.Op{Kind: dut.OpRead, Addr: 0x4, Beats: 1})
		b := newBench(m, storage)

		b.edge()
		Expect(b.out.Bus.CTI).To(Equal(wishbone.CTIClassic))

		b.in.Ack, b.in.Data = true, 0xBAD
		b.edge()

		Expect(b.out.SimErr).To(BeTrue())
		Expect(m.Mismatches).To(Equal(1))
	})

	It("should check written lanes against the mirror", func() {
		m := dut.NewMaster(dut.Op{
			Kind: dut.OpWrite, Addr: 0x100, Data: []uint32{0xAABBCCDD}, Sel: 0x3,
		})
		b := newBench(m, storage)

		b.edge()
		Expect(b.out.Bus.We).To(BeTrue())
		Expect(b.out.Bus.Sel).To(Equal(uint8(0x3)))

		storage.WriteWord(0x100, 0xAABBCCDD, 0x3)
		b.in.Ack = true
		b.edge()

		Expect(b.out.SimErr).To(BeFalse())
	})

	It("should print one byte per cycle and then pass", func() {
		b := newBench(dut.NewMaster(dut.HelloProgram(1, "HI")[1:]...), storage)

		b.edge()
		Expect(b.out.Periph[1]).To(Equal(dut.PeriphOut{Valid: true, Data: 'H'}))
		b.edge()
		Expect(b.out.Periph[1]).To(Equal(dut.PeriphOut{Valid: true, Data: 'I'}))
		b.edge()
		Expect(b.out.Periph[1].Valid).To(BeFalse())

		for i := 0; i < 5; i++ {
			b.edge()
		}
		Expect(b.out.SimOK).To(BeTrue())
	})

	It("should finish on its own when the program runs out", func() {
		b := newBench(dut.NewMaster(), storage)

		b.edge()

		Expect(b.out.Finished).To(BeTrue())
	})
})

var _ = Describe("Models", func() {
	It("should build registered models", func() {
		d, err := dut.New("memtest", 64*mem.KiB)

		Expect(err).NotTo(HaveOccurred())
		Expect(d).NotTo(BeNil())
		Expect(dut.ModelNames()).To(ContainElements("hello", "memtest"))
	})

	It("should reject unknown models", func() {
		_, err := dut.New("z80", 64*mem.KiB)

		Expect(err).To(MatchError(ContainSubstring("unknown device model")))
	})

	It("should split the image read into bursts", func() {
		prog := dut.MemTestProgram(20, 0x1000)

		Expect(prog[0]).To(Equal(dut.Op{Kind: dut.OpRead, Addr: 0, Beats: 8}))
		Expect(prog[1]).To(Equal(dut.Op{Kind: dut.OpRead, Addr: 32, Beats: 8}))
		Expect(prog[2]).To(Equal(dut.Op{Kind: dut.OpRead, Addr: 64, Beats: 4}))
		Expect(prog[len(prog)-1].Kind).To(Equal(dut.OpPass))
	})
})
