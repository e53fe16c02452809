// Package burst checks that a bus master obeys the incrementing-burst rules of
// the Wishbone bus.
package burst

import (
	"github.com/sarchlab/busbench/verdict"
	"github.com/sarchlab/busbench/wishbone"
)

// State is the burst bookkeeping of the checker.
type State struct {
	InBurst  bool
	LastAddr uint32
	We       bool
}

// A Checker observes one bus cycle at a time, after the target has responded.
//
// Once a beat with an incrementing cycle type is acknowledged, the burst is
// open. While it is open, cyc and stb must stay asserted, every acknowledged
// beat must be at the previous address plus the word size, and the direction
// must not change. Any cycle that is not an acknowledged continuation closes
// the burst, stalled cycles included.
type Checker struct {
	state State
}

// NewChecker creates a checker outside of any burst.
func NewChecker() *Checker {
	return &Checker{}
}

// State returns the current burst state.
func (c *Checker) State() State {
	return c.state
}

// Check validates the transaction of one cycle and updates the burst state.
// It returns nil if the cycle conforms.
func (c *Checker) Check(txn wishbone.Transaction, ack bool) *verdict.Failure {
	if c.state.InBurst && !txn.Active() {
		return verdict.Failf(verdict.CodeBurstContinuity,
			"WB_CYC/STB going low in the middle of a burst. cyc=%t stb=%t",
			txn.Cyc, txn.Stb)
	}

	if ack && c.state.InBurst {
		expected := c.state.LastAddr + wishbone.WordSize
		if txn.Addr != expected {
			return verdict.Failf(verdict.CodeBurstAddress,
				"burst addresses not sequential. Rec=0x%x Exp=0x%x",
				txn.Addr, expected)
		}

		if txn.We != c.state.We {
			return verdict.Failf(verdict.CodeBurstSense,
				"burst does not hold sense constant. Exp=%d Rec=%d",
				b2i(c.state.We), b2i(txn.We))
		}
	}

	c.update(txn, ack)

	return nil
}

func (c *Checker) update(txn wishbone.Transaction, ack bool) {
	if ack && txn.ContinuesBurst() {
		c.state = State{InBurst: true, LastAddr: txn.Addr, We: txn.We}
		return
	}

	c.state.InBurst = false
}

func b2i(b bool) int {
	if b {
		return 1
	}

	return 0
}
