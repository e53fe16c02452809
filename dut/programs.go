package dut

import (
	"sort"

	"github.com/pkg/errors"
)

// burstLen is the number of beats in each burst the built-in programs issue.
const burstLen = 8

// MemTestProgram reads the first words of the image in bursts, writes a
// pattern into a scratch window, reads it back, and passes.
func MemTestProgram(imageWords int, scratch uint32) []Op {
	var prog []Op

	for w := 0; w < imageWords; w += burstLen {
		n := burstLen
		if imageWords-w < n {
			n = imageWords - w
		}

		prog = append(prog, Op{Kind: OpRead, Addr: uint32(w * 4), Beats: n})
	}

	pattern := make([]uint32, burstLen)
	for i := range pattern {
		pattern[i] = 0xA5A50000 | uint32(i)<<8 | uint32(i)
	}

	prog = append(prog,
		Op{Kind: OpWrite, Addr: scratch, Data: pattern},
		Op{Kind: OpRead, Addr: scratch, Beats: burstLen},
		Op{Kind: OpWrite, Addr: scratch + 0x40, Data: []uint32{0x11223344}, Sel: 0x5},
		Op{Kind: OpRead, Addr: scratch + 0x40, Beats: 1},
		Op{Kind: OpPass},
	)

	return prog
}

// HelloProgram fetches a few words, prints text on a peripheral channel, and
// passes.
func HelloProgram(channel int, text string) []Op {
	return []Op{
		{Kind: OpRead, Addr: 0, Beats: burstLen},
		{Kind: OpPrint, Channel: channel, Text: []byte(text)},
		{Kind: OpIdle, Cycles: 4},
		{Kind: OpPass},
	}
}

// A Factory builds a device for a memory of the given capacity.
type Factory func(capacity uint64) DUT

var models = map[string]Factory{
	"memtest": func(capacity uint64) DUT {
		return NewMaster(MemTestProgram(64, uint32(capacity/2))...)
	},
	"hello": func(uint64) DUT {
		return NewMaster(HelloProgram(0, "HELLO WORLD")...)
	},
}

// Register adds a device model under name, replacing any model of that name.
func Register(name string, f Factory) {
	models[name] = f
}

// ModelNames returns the names of all registered models, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for n := range models {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// New builds the model registered under name.
func New(name string, capacity uint64) (DUT, error) {
	f, ok := models[name]
	if !ok {
		return nil, errors.Errorf("unknown device model %q, available: %v",
			name, ModelNames())
	}

	return f(capacity), nil
}
