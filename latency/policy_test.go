package latency_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/busbench/latency"
)

// scriptedRNG replays fixed Intn results.
type scriptedRNG struct {
	ints []int
}

func (r *scriptedRNG) Intn(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	Expect(v).To(BeNumerically("<", n))
	return v
}

func (r *scriptedRNG) Uint32() uint32 {
	return 0
}

func stallRun(p latency.Policy, rng latency.RNG, requests int) []bool {
	var s latency.Stall
	out := make([]bool, requests)
	for i := range out {
		out[i] = p.Next(&s, rng)
	}
	return out
}

var _ = Describe("Policy", func() {
	It("should pick the profile by seed parity", func() {
		Expect(latency.ForSeed(4)).To(Equal(latency.RandomStall{MaxCycles: 50}))
		Expect(latency.ForSeed(7)).To(Equal(latency.NoStall{}))
		Expect(latency.ForSeed(-3)).To(Equal(latency.NoStall{}))
	})

	It("should never stall with NoStall", func() {
		rng := latency.NewRNG(1)
		for _, stalled := range stallRun(latency.NoStall{}, rng, 1000) {
			Expect(stalled).To(BeFalse())
		}
	})

	It("should hold a started stall for its length plus the starting cycle", func() {
		// heads, length index 2 -> 3 cycles, then tails
		rng := &scriptedRNG{ints: []int{1, 2, 0}}
		p := latency.RandomStall{MaxCycles: 50}

		Expect(stallRun(p, rng, 5)).
			To(Equal([]bool{true, true, true, true, false}))
	})

	It("should respond immediately on tails", func() {
		rng := &scriptedRNG{ints: []int{0, 0}}
		p := latency.RandomStall{MaxCycles: 50}

		Expect(stallRun(p, rng, 2)).To(Equal([]bool{false, false}))
	})

	It("should clear the stall after it expires", func() {
		rng := &scriptedRNG{ints: []int{1, 0}}
		p := latency.RandomStall{MaxCycles: 50}
		var s latency.Stall

		Expect(p.Next(&s, rng)).To(BeTrue())
		Expect(s).To(Equal(latency.Stall{Active: true, Remaining: 1}))
		Expect(p.Next(&s, rng)).To(BeTrue())
		Expect(s).To(Equal(latency.Stall{Active: true, Remaining: 0}))
		Expect(p.Next(&s, rng)).To(BeFalse())
		Expect(s).To(Equal(latency.Stall{}))
	})

	It("should keep stalls within bounds", func() {
		rng := latency.NewRNG(42)
		p := latency.RandomStall{MaxCycles: 50}
		var s latency.Stall

		for i := 0; i < 10000; i++ {
			p.Next(&s, rng)
			Expect(s.Remaining).To(BeNumerically("<=", 50))
			Expect(s.Remaining).To(BeNumerically(">=", 0))
		}
	})

	It("should use the default stall bound when none is set", func() {
		rng := &scriptedRNG{ints: []int{1, latency.DefaultMaxStall - 1}}
		var s latency.Stall

		Expect(latency.RandomStall{}.Next(&s, rng)).To(BeTrue())
		Expect(s).To(Equal(latency.Stall{
			Active: true, Remaining: latency.DefaultMaxStall,
		}))
	})

	It("should reproduce the same schedule for the same seed", func() {
		p := latency.ForSeed(1234)

		a := stallRun(p, latency.NewRNG(1234), 2000)
		b := stallRun(p, latency.NewRNG(1234), 2000)

		Expect(a).To(Equal(b))
		Expect(a).To(ContainElement(true))
	})
})
