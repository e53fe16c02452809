package sim

import (
	"log"
)

// VTime is the virtual time of the simulation, counted in clock half-periods.
// Every clock edge, rising or falling, advances the time by one.
type VTime uint64

// Cycle returns the number of full clock cycles that have elapsed at t.
func (t VTime) Cycle() uint64 {
	return uint64(t) / 2
}

// IsRisingEdge tells if t is the time of a rising clock edge. The clock starts
// low at time 0, so rising edges fall on odd times.
func (t VTime) IsRisingEdge() bool {
	return t%2 == 1
}

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive rising edges in seconds.
func (f Freq) Period() float64 {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return 1.0 / float64(f)
}

// Seconds converts a virtual time into the wall-clock time it represents on a
// device that runs at frequency f.
func (f Freq) Seconds(t VTime) float64 {
	return float64(t) * f.Period() / 2
}

// HalfCyclesIn returns the virtual time that covers n full cycles.
func HalfCyclesIn(n uint64) VTime {
	return VTime(n * 2)
}
