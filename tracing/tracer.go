// Package tracing collects what happens on the bench, beat by beat, and hands
// it to tracers.
package tracing

import (
	"github.com/sarchlab/busbench/harness"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/verdict"
)

// A Tracer is told about every bus beat, stall cycle, peripheral byte, and
// the verdict of a run.
type Tracer interface {
	Beat(now sim.VTime, beat memctrl.Beat)
	Stall(now sim.VTime, stall memctrl.StallInfo)
	PeriphByte(now sim.VTime, b harness.PeriphByte)
	Verdict(now sim.VTime, v verdict.Verdict)
}

// CollectTrace lets the tracer collect trace from a domain.
func CollectTrace(domain sim.Hookable, timeTeller sim.TimeTeller, tracer Tracer) {
	domain.AcceptHook(&traceHook{t: tracer, timeTeller: timeTeller})
}

// CollectHarness lets the tracer collect trace from every part of a harness.
func CollectHarness(h *harness.Harness, tracer Tracer) {
	CollectTrace(h, h.Engine, tracer)
	CollectTrace(h.MemCtrl, h.Engine, tracer)
}

// A traceHook is a hook that forwards bench activity to a tracer.
type traceHook struct {
	t          Tracer
	timeTeller sim.TimeTeller
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx sim.HookCtx) {
	now := h.timeTeller.CurrentTime()

	switch ctx.Pos {
	case memctrl.HookPosBeat:
		h.t.Beat(now, ctx.Item.(memctrl.Beat))
	case memctrl.HookPosStall:
		h.t.Stall(now, ctx.Item.(memctrl.StallInfo))
	case harness.HookPosPeriphByte:
		h.t.PeriphByte(now, ctx.Item.(harness.PeriphByte))
	case harness.HookPosVerdict:
		h.t.Verdict(now, ctx.Item.(verdict.Verdict))
	}
}
