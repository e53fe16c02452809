package tracing

import (
	"fmt"
	"io"
	"sync"

	"github.com/sarchlab/busbench/harness"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/verdict"
)

// CountTracer counts bench activity.
type CountTracer struct {
	lock sync.Mutex

	beats       map[memctrl.Outcome]uint64
	stallCycles uint64
	longest     int
	periph      map[string]uint64
	lastVerdict verdict.Verdict
}

// NewCountTracer creates a new CountTracer.
func NewCountTracer() *CountTracer {
	return &CountTracer{
		beats:  make(map[memctrl.Outcome]uint64),
		periph: make(map[string]uint64),
	}
}

// Beat counts a beat by its outcome.
func (t *CountTracer) Beat(_ sim.VTime, beat memctrl.Beat) {
	t.lock.Lock()
	t.beats[beat.Outcome]++
	t.lock.Unlock()
}

// Stall counts a stalled cycle.
func (t *CountTracer) Stall(_ sim.VTime, stall memctrl.StallInfo) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.stallCycles++

	// The first cycle of a stall carries its full length.
	if stall.Remaining+1 > t.longest {
		t.longest = stall.Remaining + 1
	}
}

// PeriphByte counts a peripheral byte by channel.
func (t *CountTracer) PeriphByte(_ sim.VTime, b harness.PeriphByte) {
	t.lock.Lock()
	t.periph[b.Channel]++
	t.lock.Unlock()
}

// Verdict keeps the verdict.
func (t *CountTracer) Verdict(_ sim.VTime, v verdict.Verdict) {
	t.lock.Lock()
	t.lastVerdict = v
	t.lock.Unlock()
}

// NumBeats returns the number of beats with the given outcome.
func (t *CountTracer) NumBeats(outcome memctrl.Outcome) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.beats[outcome]
}

// NumStallCycles returns the number of stalled cycles.
func (t *CountTracer) NumStallCycles() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.stallCycles
}

// LongestStall returns the length of the longest stall, in cycles.
func (t *CountTracer) LongestStall() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.longest
}

// NumPeriphBytes returns the number of bytes seen on a channel.
func (t *CountTracer) NumPeriphBytes(channel string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.periph[channel]
}

// LastVerdict returns the verdict reported to the tracer.
func (t *CountTracer) LastVerdict() verdict.Verdict {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.lastVerdict
}

// Report prints a summary.
func (t *CountTracer) Report(w io.Writer) {
	t.lock.Lock()
	defer t.lock.Unlock()

	fmt.Fprintf(w, "reads: %d, writes: %d, stall cycles: %d, longest stall: %d\n",
		t.beats[memctrl.Read], t.beats[memctrl.Wrote],
		t.stallCycles, t.longest)
}
