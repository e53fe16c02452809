package tracing

import (
	"log"

	"github.com/sarchlab/busbench/harness"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/verdict"
)

// LogTracer prints bench activity, one line per beat, stall, or byte.
type LogTracer struct {
	sim.LogHookBase
}

// NewLogTracer creates a LogTracer that writes into logger.
func NewLogTracer(logger *log.Logger) *LogTracer {
	t := new(LogTracer)
	t.Logger = logger

	return t
}

// Beat logs a serviced beat.
func (t *LogTracer) Beat(now sim.VTime, beat memctrl.Beat) {
	t.Printf("cycle %d: %s -> %s ack=%t dat=0x%08x",
		now.Cycle(), beat.Txn, beat.Outcome, beat.Rsp.Ack, beat.Rsp.Data)
}

// Stall logs a stalled cycle.
func (t *LogTracer) Stall(now sim.VTime, stall memctrl.StallInfo) {
	t.Printf("cycle %d: stall adr=0x%08x remaining=%d",
		now.Cycle(), stall.Txn.Addr, stall.Remaining)
}

// PeriphByte logs a peripheral byte.
func (t *LogTracer) PeriphByte(now sim.VTime, b harness.PeriphByte) {
	t.Printf("cycle %d: %s[%d] = %q", now.Cycle(), b.Channel, b.Index, b.Value)
}

// Verdict logs the verdict.
func (t *LogTracer) Verdict(_ sim.VTime, v verdict.Verdict) {
	t.Printf("%s", v)
}
