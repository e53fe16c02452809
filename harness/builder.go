package harness

import (
	"io"
	"log"
	"os"

	"github.com/sarchlab/busbench/burst"
	"github.com/sarchlab/busbench/config"
	"github.com/sarchlab/busbench/dut"
	"github.com/sarchlab/busbench/latency"
	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/memctrl"
	"github.com/sarchlab/busbench/periph"
	"github.com/sarchlab/busbench/sim"
)

// Builder can build harnesses.
type Builder struct {
	engine    sim.Engine
	dut       dut.DUT
	storage   *mem.Storage
	capacity  uint64
	seed      int64
	policy    latency.Policy
	profile   config.Profile
	channels  []periph.ChannelSpec
	resetHold uint64
	maxCycles uint64
	console   io.Writer
}

// MakeBuilder returns a Builder with the default configuration.
func MakeBuilder() Builder {
	c := config.Default()

	return Builder{
		capacity:  c.Variant.Capacity,
		seed:      1,
		profile:   config.ProfileByName("default"),
		channels:  c.Channels,
		resetHold: c.ResetHold,
		maxCycles: c.MaxCycles,
		console:   os.Stdout,
	}
}

// WithConfig applies the run settings of a configuration.
func (b Builder) WithConfig(c config.Config) Builder {
	b.capacity = c.Variant.Capacity
	b.seed = c.Seed
	b.profile = c.Profile
	b.channels = c.Channels
	b.resetHold = c.ResetHold
	b.maxCycles = c.MaxCycles

	return b
}

// WithEngine sets the engine that drives the clock.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithDUT sets the device under test.
func (b Builder) WithDUT(d dut.DUT) Builder {
	b.dut = d
	return b
}

// WithStorage sets the memory image. Without one, the harness creates an
// empty image of the configured capacity.
func (b Builder) WithStorage(storage *mem.Storage) Builder {
	b.storage = storage
	return b
}

// WithSeed sets the seed of all random decisions.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithPolicy overrides the latency policy derived from the seed.
func (b Builder) WithPolicy(policy latency.Policy) Builder {
	b.policy = policy
	return b
}

// WithProfile sets the test profile.
func (b Builder) WithProfile(profile config.Profile) Builder {
	b.profile = profile
	return b
}

// WithChannels sets the peripheral channels to validate.
func (b Builder) WithChannels(channels ...periph.ChannelSpec) Builder {
	b.channels = channels
	return b
}

// WithResetHold sets for how many clock half-periods reset is asserted.
func (b Builder) WithResetHold(halfCycles uint64) Builder {
	b.resetHold = halfCycles
	return b
}

// WithMaxCycles sets the cycle bound after which the run fails.
func (b Builder) WithMaxCycles(n uint64) Builder {
	b.maxCycles = n
	return b
}

// WithConsole sets where peripheral output and diagnostics are printed.
func (b Builder) WithConsole(w io.Writer) Builder {
	b.console = w
	return b
}

// Build creates a harness.
func (b Builder) Build(name string) *Harness {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.dut == nil {
		log.Panic("device under test is not set")
	}

	storage := b.storage
	if storage == nil {
		storage = mem.NewStorage(b.capacity)
	}

	policy := b.policy
	if policy == nil {
		policy = latency.ForSeed(b.seed)
	}

	rng := latency.NewRNG(b.seed)

	h := &Harness{
		dut:       b.dut,
		profile:   b.profile,
		rng:       rng,
		resetHold: sim.VTime(b.resetHold),
		maxCycles: b.maxCycles,
		logger:    log.New(b.console, "", 0),
		Checker:   burst.NewChecker(),
		Validator: periph.NewValidator(b.console, b.channels...),
	}
	h.TickingComponent = sim.NewTickingComponent(name, b.engine, h)
	h.MemCtrl = memctrl.MakeBuilder().
		WithStorage(storage).
		WithPolicy(policy).
		WithRNG(rng).
		Build(name + ".MemCtrl")

	h.in = dut.Inputs{
		Reset: true,
		Ack:   rng.Intn(2) == 1,
		Data:  rng.Uint32(),
		Mem:   storage,
	}
	h.out.Periph = make([]dut.PeriphOut, len(b.channels))

	return h
}
