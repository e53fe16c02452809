// Package dut defines the pin-level boundary between the harness and the
// device under test.
package dut

import (
	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/wishbone"
)

// Inputs are the signals the harness drives into the device.
type Inputs struct {
	Clk   bool
	Reset bool

	// Ack and Data are the bus response.
	Ack  bool
	Data uint32

	// IntSel selects the interrupt source port.
	IntSel uint8

	// Mem mirrors the memory image so the device can check itself.
	Mem mem.View
}

// PeriphOut is the output of one peripheral channel in one cycle.
type PeriphOut struct {
	Valid bool
	Data  byte
}

// Outputs are the signals the device drives.
type Outputs struct {
	Bus    wishbone.Transaction
	Periph []PeriphOut

	// SimErr reports an internal self-check failure.
	SimErr bool

	// SimOK reports that all tests in the device passed.
	SimOK bool

	// Finished reports that the device model stopped on its own.
	Finished bool
}

// A DUT is a device that can be evaluated once per clock half-period.
type DUT interface {
	// Eval settles the device for the current inputs and updates out.
	Eval(in *Inputs, out *Outputs)

	// Final releases the device at the end of the run.
	Final()
}
