package memctrl

import (
	"github.com/sarchlab/busbench/latency"
	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/sim"
)

// Builder builds bus targets.
type Builder struct {
	capacity uint64
	storage  *mem.Storage
	policy   latency.Policy
	rng      latency.RNG
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		capacity: 64 * mem.MiB,
		policy:   latency.NoStall{},
	}
}

// WithNewStorage makes the built target own a new storage of the given
// capacity.
func (b Builder) WithNewStorage(capacity uint64) Builder {
	b.capacity = capacity
	b.storage = nil

	return b
}

// WithStorage sets the storage that backs the target.
func (b Builder) WithStorage(storage *mem.Storage) Builder {
	b.storage = storage
	return b
}

// WithPolicy sets the latency policy.
func (b Builder) WithPolicy(policy latency.Policy) Builder {
	b.policy = policy
	return b
}

// WithRNG sets the random source used for stall decisions and undefined data.
func (b Builder) WithRNG(rng latency.RNG) Builder {
	b.rng = rng
	return b
}

// WithSeed sets both the latency policy and the random source from a seed.
func (b Builder) WithSeed(seed int64) Builder {
	b.policy = latency.ForSeed(seed)
	b.rng = latency.NewRNG(seed)

	return b
}

// Build creates a new bus target.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		Storage:       b.storage,
		policy:        b.policy,
		rng:           b.rng,
	}

	if c.Storage == nil {
		c.Storage = mem.NewStorage(b.capacity)
	}

	if c.rng == nil {
		c.rng = latency.NewRNG(1)
	}

	return c
}
