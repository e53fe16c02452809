package dut

import (
	"github.com/sarchlab/busbench/wishbone"
)

// OpKind is the kind of a bus-master operation.
type OpKind int

// Operations a Master can run.
const (
	OpRead OpKind = iota
	OpWrite
	OpPrint
	OpIdle
	OpPass
	OpFail
)

// An Op is one step of a Master program.
type Op struct {
	Kind OpKind

	// Addr is the address of the first beat of a read or write.
	Addr uint32

	// Beats is the number of words a read transfers.
	Beats int

	// Data holds the words a write transfers.
	Data []uint32

	// Sel is the byte select of every beat. Zero selects all lanes.
	Sel uint8

	// Channel and Text describe what a print emits, one byte per cycle.
	Channel int
	Text    []byte

	// Cycles is the length of an idle.
	Cycles int
}

func (op Op) numBeats() int {
	if op.Kind == OpWrite {
		return len(op.Data)
	}

	return op.Beats
}

func (op Op) sel() uint8 {
	if op.Sel == 0 {
		return 0xF
	}

	return op.Sel
}

// A Master is a behavioral Wishbone bus master. It runs a fixed program, one
// step per rising clock edge, and checks every transfer against the memory
// mirror. Multi-beat transfers are issued as incrementing bursts.
//
// A Master that runs out of program without passing or failing finishes on
// its own.
type Master struct {
	program []Op

	prevClk bool
	pc      int
	beat    int
	pos     int
	txn     wishbone.Transaction

	periphCh    int
	periphData  byte
	periphValid bool

	ok, err, finished bool

	// Mismatches counts transfers that disagreed with the memory mirror.
	Mismatches int
}

// NewMaster creates a master that runs program.
func NewMaster(program ...Op) *Master {
	return &Master{program: program}
}

// Eval implements DUT.
func (m *Master) Eval(in *Inputs, out *Outputs) {
	rising := in.Clk && !m.prevClk
	m.prevClk = in.Clk

	if rising {
		if in.Reset {
			m.reset()
		} else {
			m.step(in)
		}
	}

	m.drive(out)
}

// Final implements DUT.
func (m *Master) Final() {}

func (m *Master) reset() {
	m.pc, m.beat, m.pos = 0, 0, 0
	m.txn = wishbone.Transaction{}
	m.periphValid = false
	m.ok, m.err, m.finished = false, false, false
}

func (m *Master) step(in *Inputs) {
	m.periphValid = false

	if m.txn.Active() {
		m.continueTransfer(in)
		return
	}

	if m.ok || m.err || m.finished {
		return
	}

	if m.pc >= len(m.program) {
		m.finished = true
		return
	}

	op := m.program[m.pc]
	switch op.Kind {
	case OpRead, OpWrite:
		m.beat = 0
		m.txn = m.beatTxn(op)
	case OpPrint:
		m.emit(op)
	case OpIdle:
		m.pos++
		if m.pos >= op.Cycles {
			m.next()
		}
	case OpPass:
		m.ok = true
	case OpFail:
		m.err = true
	}
}

func (m *Master) continueTransfer(in *Inputs) {
	if !in.Ack {
		return
	}

	op := m.program[m.pc]
	m.checkBeat(op, in)
	m.beat++

	if m.beat < op.numBeats() {
		m.txn = m.beatTxn(op)
		return
	}

	m.txn = wishbone.Transaction{}
	m.next()
}

func (m *Master) next() {
	m.pc++
	m.beat = 0
	m.pos = 0
}

func (m *Master) emit(op Op) {
	if m.pos >= len(op.Text) {
		m.next()
		return
	}

	m.periphCh = op.Channel
	m.periphData = op.Text[m.pos]
	m.periphValid = true
	m.pos++

	if m.pos >= len(op.Text) {
		m.next()
	}
}

func (m *Master) beatTxn(op Op) wishbone.Transaction {
	n := op.numBeats()

	txn := wishbone.Transaction{
		Cyc:  true,
		Stb:  true,
		We:   op.Kind == OpWrite,
		Addr: op.Addr + uint32(m.beat*wishbone.WordSize),
		Sel:  op.sel(),
		CTI:  wishbone.CTIClassic,
	}

	if n > 1 {
		txn.CTI = wishbone.CTIIncrBurst
		if m.beat == n-1 {
			txn.CTI = wishbone.CTIEndOfBurst
		}
	}

	if txn.We {
		txn.Data = op.Data[m.beat]
	}

	return txn
}

func (m *Master) checkBeat(op Op, in *Inputs) {
	if in.Mem == nil {
		return
	}

	addr := m.txn.Addr
	mirror := in.Mem.WordAt(addr)

	var got, want uint32
	if m.txn.We {
		mask := laneMask(m.txn.Sel)
		got, want = mirror&mask, m.txn.Data&mask
	} else {
		got, want = in.Data, mirror
	}

	if got != want {
		m.Mismatches++
		m.err = true
	}
}

func laneMask(sel uint8) uint32 {
	var mask uint32
	for i := 0; i < 4; i++ {
		if sel&(1<<i) != 0 {
			mask |= 0xFF << (8 * i)
		}
	}

	return mask
}

func (m *Master) drive(out *Outputs) {
	out.Bus = m.txn

	for i := range out.Periph {
		out.Periph[i] = PeriphOut{}
	}

	if m.periphValid && m.periphCh < len(out.Periph) {
		out.Periph[m.periphCh] = PeriphOut{Valid: true, Data: m.periphData}
	}

	out.SimErr = m.err
	out.SimOK = m.ok
	out.Finished = m.finished
}
