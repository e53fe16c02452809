// Package config collects the settings of one harness run.
package config

import (
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/periph"
	"github.com/sarchlab/busbench/verdict"
)

// UARTProfile is the reserved profile name that makes the peripheral output
// part of the pass criterion.
const UARTProfile = "uart"

// Defaults.
const (
	DefaultResetHold = 10
	DefaultMaxCycles = 10_000_000
	DefaultVariant   = "64m"
	DefaultDUT       = "memtest"
)

// A Profile labels a test. Only the reserved profile requires peripheral
// output.
type Profile struct {
	Name              string
	RequirePeripheral bool
}

// ProfileByName returns the profile for a test name.
func ProfileByName(name string) Profile {
	return Profile{Name: name, RequirePeripheral: name == UARTProfile}
}

// A Variant is a memory configuration of the harness.
type Variant struct {
	Name     string
	Capacity uint64
}

var variants = map[string]Variant{
	"64m": {Name: "64m", Capacity: 64 * mem.MiB},
	"64k": {Name: "64k", Capacity: 64 * mem.KiB},
}

// VariantByName looks up a memory variant.
func VariantByName(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, errors.Errorf("unknown memory variant %q, available: %v",
			name, VariantNames())
	}

	return v, nil
}

// VariantNames lists the known memory variants.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// DefaultChannels returns the peripheral channels checked in every run.
func DefaultChannels() []periph.ChannelSpec {
	return []periph.ChannelSpec{
		{
			Name:         "uart0",
			Golden:       []byte("HELLO WORLD"),
			MismatchCode: verdict.CodePeripheralMismatch,
		},
		{
			Name:         "uart1",
			Golden:       []byte(""),
			MismatchCode: verdict.CodePeripheral1Mismatch,
		},
	}
}

// Config is the complete configuration of one run.
type Config struct {
	ImagePath string
	Profile   Profile
	Seed      int64
	SeedGiven bool
	Variant   Variant
	Channels  []periph.ChannelSpec

	// ResetHold is the number of clock half-periods the reset is held for.
	ResetHold uint64
	MaxCycles uint64
	DUTModel  string

	TracePath   string
	Monitor     bool
	MonitorPort int
	OpenBrowser bool
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	v, _ := VariantByName(DefaultVariant)

	return Config{
		Variant:   v,
		Channels:  DefaultChannels(),
		ResetHold: DefaultResetHold,
		MaxCycles: DefaultMaxCycles,
		DUTModel:  DefaultDUT,
	}
}

// ParseSeed parses a decimal seed.
func ParseSeed(s string) (int64, error) {
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid seed %q", s)
	}

	return seed, nil
}

// TimeSeed derives a seed from the wall clock.
func TimeSeed() int64 {
	return time.Now().Unix()
}

// LoadEnvFiles loads environment files into the process environment without
// overriding variables that are already set. A missing default ".env" file is
// not an error.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}

		files = []string{".env"}
	}

	return errors.Wrap(godotenv.Load(files...), "loading environment")
}

// ApplyEnv overrides c with BUSBENCH_* environment variables.
func ApplyEnv(c Config) (Config, error) {
	if s := os.Getenv("BUSBENCH_VARIANT"); s != "" {
		v, err := VariantByName(s)
		if err != nil {
			return c, err
		}
		c.Variant = v
	}

	for name, dst := range map[string]*uint64{
		"BUSBENCH_MAX_CYCLES": &c.MaxCycles,
		"BUSBENCH_RESET_HOLD": &c.ResetHold,
	} {
		s := os.Getenv(name)
		if s == "" {
			continue
		}

		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c, errors.Wrapf(err, "parsing %s", name)
		}
		*dst = n
	}

	if s := os.Getenv("BUSBENCH_MONITOR_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil {
			return c, errors.Wrap(err, "parsing BUSBENCH_MONITOR_PORT")
		}
		c.MonitorPort = port
	}

	if s := os.Getenv("BUSBENCH_DUT"); s != "" {
		c.DUTModel = s
	}

	if s := os.Getenv("BUSBENCH_TRACE"); s != "" {
		c.TracePath = s
	}

	return c, nil
}

// Validate checks the settings that the command line cannot restrict.
func (c Config) Validate() error {
	if c.MaxCycles == 0 {
		return errors.New("max cycles must be positive")
	}

	if c.Variant.Capacity == 0 {
		return errors.New("no memory variant selected")
	}

	return nil
}
