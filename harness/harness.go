// Package harness drives a device under test clock edge by clock edge,
// emulates its memory bus, checks its bus and peripheral behavior, and decides
// the verdict of the run.
package harness

import (
	"log"

	"github.com/sarchlab/busbench/burst"
	"github.com/sarchlab/busbench/config"
	"github.com/sarchlab/busbench/dut"
	"github.com/sarchlab/busbench/latency"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/periph"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/verdict"
)

// HookPosPeriphByte marks a byte observed on a peripheral channel.
var HookPosPeriphByte = &sim.HookPos{Name: "Harness.PeriphByte"}

// HookPosVerdict marks the moment the verdict becomes terminal.
var HookPosVerdict = &sim.HookPos{Name: "Harness.Verdict"}

// PeriphByte is the hook item of HookPosPeriphByte.
type PeriphByte struct {
	Channel string
	Index   int
	Value   byte
}

// A Harness is the device's entire outside world. It ticks on every clock
// edge. On rising edges it releases reset after the hold time, answers the
// bus, runs the burst and peripheral checks, and polls the device status.
//
// A failure becomes visible on the falling edge that follows the rising edge
// that detected it. A pass ends the run right away.
type Harness struct {
	*sim.TickingComponent

	MemCtrl   *memctrl.Comp
	Checker   *burst.Checker
	Validator *periph.Validator

	dut       dut.DUT
	profile   config.Profile
	rng       latency.RNG
	resetHold sim.VTime
	maxCycles uint64
	logger    *log.Logger

	in       dut.Inputs
	out      dut.Outputs
	recorder verdict.Recorder
}

// Verdict returns the current verdict.
func (h *Harness) Verdict() verdict.Verdict {
	return h.recorder.Current()
}

// Profile returns the test profile of the run.
func (h *Harness) Profile() config.Profile {
	return h.profile
}

// Cycle returns the current clock cycle.
func (h *Harness) Cycle() uint64 {
	return h.Engine.CurrentTime().Cycle()
}

// Components returns the components that make up the harness.
func (h *Harness) Components() []sim.Component {
	return []sim.Component{h, h.MemCtrl}
}

// Run clocks the device until a verdict is reached and returns it.
func (h *Harness) Run() (verdict.Verdict, error) {
	h.TickAt(1)

	err := h.Engine.Run()

	h.dut.Final()
	h.Engine.Finished()

	return h.recorder.Current(), err
}

// Tick advances the clock by one edge.
func (h *Harness) Tick(now sim.VTime) bool {
	h.in.Clk = now.IsRisingEdge()
	h.dut.Eval(&h.in, &h.out)

	if h.out.Finished && !h.recorder.IsTerminal() {
		h.fail(verdict.Failf(verdict.CodeGeneric,
			"device finished without reporting a result"), now)
		return false
	}

	if !h.in.Clk {
		return !h.recorder.IsTerminal()
	}

	h.risingEdge(now)

	if h.recorder.Current().Kind == verdict.Passed {
		return false
	}

	if now.Cycle() >= h.maxCycles {
		h.fail(verdict.Failf(verdict.CodeGeneric,
			"no result after %d cycles", h.maxCycles), now)
	}

	return true
}

func (h *Harness) risingEdge(now sim.VTime) {
	if now < h.resetHold {
		h.in.Reset = true
		h.in.IntSel = uint8(h.rng.Intn(2))
	} else {
		h.in.Reset = false
	}

	rsp, _ := h.MemCtrl.Respond(h.out.Bus, h.in.Reset)
	h.in.Ack, h.in.Data = rsp.Ack, rsp.Data

	if h.in.Reset {
		return
	}

	h.fail(h.Checker.Check(h.out.Bus, rsp.Ack), now)
	h.observePeriph(now)
	h.pollStatus(now)
}

func (h *Harness) observePeriph(now sim.VTime) {
	n := h.Validator.NumChannels()
	if len(h.out.Periph) < n {
		n = len(h.out.Periph)
	}

	for i := 0; i < n; i++ {
		p := h.out.Periph[i]
		if !p.Valid {
			continue
		}

		ch := h.Validator.Channel(i)
		h.InvokeHook(sim.HookCtx{
			Domain: h,
			Pos:    HookPosPeriphByte,
			Item:   PeriphByte{Channel: ch.Name, Index: ch.Received, Value: p.Data},
		})

		h.fail(h.Validator.Observe(i, p.Data), now)
	}
}

func (h *Harness) pollStatus(now sim.VTime) {
	switch {
	case h.out.SimErr:
		h.fail(verdict.Failf(verdict.CodeDUTError,
			"Register/memory mismatch."), now)
	case h.out.SimOK:
		if h.profile.RequirePeripheral {
			if f := h.Validator.Complete(); f != nil {
				h.fail(f, now)
				return
			}
		}

		if h.recorder.Pass(now.Cycle()) {
			h.announce()
		}
	}
}

func (h *Harness) fail(f *verdict.Failure, now sim.VTime) {
	if !h.recorder.Fail(f, now.Cycle()) {
		return
	}

	h.logger.Printf("Error: %s", f.Message)
	h.announce()
}

func (h *Harness) announce() {
	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosVerdict,
		Item:   h.recorder.Current(),
	})
}
