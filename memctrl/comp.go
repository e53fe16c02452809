// Package memctrl emulates the memory responder of a Wishbone bus.
package memctrl

import (
	"github.com/sarchlab/busbench/latency"
	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/wishbone"
)

// HookPosBeat marks a serviced (acknowledged) read or write.
var HookPosBeat = &sim.HookPos{Name: "MemCtrl.Beat"}

// HookPosStall marks a requested cycle that is held off.
var HookPosStall = &sim.HookPos{Name: "MemCtrl.Stall"}

// Outcome tells what the target did with the bus in one cycle.
type Outcome int

// Outcomes of one cycle. Exactly one applies per cycle.
const (
	Idle Outcome = iota
	Stalled
	Read
	Wrote
)

func (o Outcome) String() string {
	return [...]string{"idle", "stalled", "read", "wrote"}[o]
}

// Beat is the hook item for a serviced transfer.
type Beat struct {
	Txn     wishbone.Transaction
	Rsp     wishbone.Response
	Outcome Outcome
}

// StallInfo is the hook item for a stalled cycle.
type StallInfo struct {
	Txn       wishbone.Transaction
	Remaining int
}

// A Comp is the bus target. It answers every requested cycle either with an
// acknowledgement or with a stall, as decided by its latency policy.
type Comp struct {
	*sim.ComponentBase

	Storage *mem.Storage
	policy  latency.Policy
	rng     latency.RNG
	stall   latency.Stall

	NumReads       uint64
	NumWrites      uint64
	NumStallCycles uint64
}

// Stall returns the pending stall state.
func (c *Comp) Stall() latency.Stall {
	return c.stall
}

// Respond produces the target's response to the transaction the master drives
// in this cycle. Requests made while the master is in reset are never
// acknowledged. Data on any cycle that does not return read data is random.
func (c *Comp) Respond(
	txn wishbone.Transaction,
	inReset bool,
) (wishbone.Response, Outcome) {
	if !txn.Active() || inReset {
		return c.undefined(), Idle
	}

	if c.policy.Next(&c.stall, c.rng) {
		c.NumStallCycles++
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosStall,
			Item:   StallInfo{Txn: txn, Remaining: c.stall.Remaining},
		})

		return c.undefined(), Stalled
	}

	var (
		rsp     wishbone.Response
		outcome Outcome
	)

	if txn.We {
		rsp, outcome = c.write(txn), Wrote
	} else {
		rsp, outcome = c.read(txn), Read
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosBeat,
		Item:   Beat{Txn: txn, Rsp: rsp, Outcome: outcome},
	})

	return rsp, outcome
}

func (c *Comp) undefined() wishbone.Response {
	return wishbone.Response{Ack: false, Data: c.rng.Uint32()}
}

func (c *Comp) read(txn wishbone.Transaction) wishbone.Response {
	c.NumReads++

	return wishbone.Response{Ack: true, Data: c.Storage.WordAt(txn.Addr)}
}

func (c *Comp) write(txn wishbone.Transaction) wishbone.Response {
	c.NumWrites++
	c.Storage.WriteWord(txn.Addr, txn.Data, txn.Sel)

	return wishbone.Response{Ack: true, Data: c.rng.Uint32()}
}
