// Package latency decides when the emulated bus target holds off a request.
package latency

import (
	"math/rand"
)

// DefaultMaxStall is the longest stall, in cycles, that a RandomStall policy
// starts.
const DefaultMaxStall = 50

// RNG is the random source that drives stall decisions and the undefined data
// driven on the bus. *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Uint32() uint32
}

// NewRNG returns a deterministic random source for the given seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Stall is the pending-stall state of the bus target. At most one stall is
// pending at a time.
type Stall struct {
	Remaining int
	Active    bool
}

// A Policy decides, once per requested cycle, whether the target stalls.
type Policy interface {
	// Next updates the stall state and returns true if the request must not
	// be acknowledged in this cycle.
	Next(s *Stall, rng RNG) bool
}

// ForSeed selects the test profile by seed parity. Even seeds get randomly
// delayed responses, odd seeds get immediate responses.
func ForSeed(seed int64) Policy {
	if seed%2 == 0 {
		return RandomStall{MaxCycles: DefaultMaxStall}
	}

	return NoStall{}
}

// NoStall acknowledges every request in the cycle it is made.
type NoStall struct{}

// Next never stalls.
func (NoStall) Next(s *Stall, _ RNG) bool {
	*s = Stall{}
	return false
}

// RandomStall flips a fair coin for every request that is not already
// stalled. On heads it holds the request for 1 to MaxCycles additional cycles.
// A MaxCycles of zero or less means DefaultMaxStall.
type RandomStall struct {
	MaxCycles int
}

func (p RandomStall) maxCycles() int {
	if p.MaxCycles <= 0 {
		return DefaultMaxStall
	}

	return p.MaxCycles
}

// Next decides whether to stall. The cycle that starts a stall and every cycle
// with remaining stall count are not acknowledged.
func (p RandomStall) Next(s *Stall, rng RNG) bool {
	switch {
	case !s.Active && rng.Intn(2) == 1:
		s.Active = true
		s.Remaining = rng.Intn(p.maxCycles()) + 1
		return true
	case s.Active && s.Remaining > 0:
		s.Remaining--
		return true
	default:
		*s = Stall{}
		return false
	}
}
