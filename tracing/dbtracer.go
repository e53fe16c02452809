package tracing

import (
	"sync"

	"github.com/sarchlab/busbench/datarecording"
	"github.com/sarchlab/busbench/harness"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/verdict"
)

// Table names used by the DBTracer.
const (
	BeatTable    = "bus_beats"
	StallTable   = "bus_stalls"
	PeriphTable  = "periph_bytes"
	VerdictTable = "verdicts"
)

// BeatEntry is a row of the beat table.
type BeatEntry struct {
	Cycle   uint64
	We      bool
	Addr    uint32
	Sel     uint8
	CTI     string
	Data    uint32
	Outcome string
}

// StallEntry is a row of the stall table.
type StallEntry struct {
	Cycle     uint64
	We        bool
	Addr      uint32
	Remaining int
}

// PeriphEntry is a row of the peripheral byte table.
type PeriphEntry struct {
	Cycle   uint64
	Channel string
	Index   int
	Value   uint8
}

// VerdictEntry is a row of the verdict table.
type VerdictEntry struct {
	Cycle   uint64
	Kind    string
	Code    int
	Message string
}

// DBTracer is a tracer that stores bench activity into a database.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
}

// NewDBTracer creates the trace tables in backend and returns a tracer that
// fills them.
func NewDBTracer(backend datarecording.DataRecorder) *DBTracer {
	backend.CreateTable(BeatTable, BeatEntry{})
	backend.CreateTable(StallTable, StallEntry{})
	backend.CreateTable(PeriphTable, PeriphEntry{})
	backend.CreateTable(VerdictTable, VerdictEntry{})

	return &DBTracer{backend: backend}
}

// Beat records a serviced beat.
func (t *DBTracer) Beat(now sim.VTime, beat memctrl.Beat) {
	data := beat.Rsp.Data
	if beat.Txn.We {
		data = beat.Txn.Data
	}

	t.insert(BeatTable, BeatEntry{
		Cycle:   now.Cycle(),
		We:      beat.Txn.We,
		Addr:    beat.Txn.Addr,
		Sel:     beat.Txn.Sel,
		CTI:     beat.Txn.CTI.String(),
		Data:    data,
		Outcome: beat.Outcome.String(),
	})
}

// Stall records a stalled cycle.
func (t *DBTracer) Stall(now sim.VTime, stall memctrl.StallInfo) {
	t.insert(StallTable, StallEntry{
		Cycle:     now.Cycle(),
		We:        stall.Txn.We,
		Addr:      stall.Txn.Addr,
		Remaining: stall.Remaining,
	})
}

// PeriphByte records a peripheral byte.
func (t *DBTracer) PeriphByte(now sim.VTime, b harness.PeriphByte) {
	t.insert(PeriphTable, PeriphEntry{
		Cycle:   now.Cycle(),
		Channel: b.Channel,
		Index:   b.Index,
		Value:   b.Value,
	})
}

// Verdict records the verdict and flushes everything buffered so far.
func (t *DBTracer) Verdict(_ sim.VTime, v verdict.Verdict) {
	t.insert(VerdictTable, VerdictEntry{
		Cycle:   v.Cycle,
		Kind:    v.Kind.String(),
		Code:    int(v.Code),
		Message: v.Message,
	})

	t.mu.Lock()
	t.backend.Flush()
	t.mu.Unlock()
}

func (t *DBTracer) insert(table string, entry any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(table, entry)
}
