// Package wishbone defines the per-cycle values exchanged on a classic
// pipelined-burst Wishbone bus.
package wishbone

import "fmt"

// WordSize is the width of the data path in bytes. Addresses in an
// incrementing burst advance by WordSize per beat.
const WordSize = 4

// CTI is the cycle type identifier that a master drives with each beat.
type CTI uint8

// Cycle type identifiers.
const (
	CTIClassic    CTI = 0
	CTIConstAddr  CTI = 1
	CTIIncrBurst  CTI = 2
	CTIEndOfBurst CTI = 7
)

func (c CTI) String() string {
	switch c {
	case CTIClassic:
		return "classic"
	case CTIConstAddr:
		return "const"
	case CTIIncrBurst:
		return "incr"
	case CTIEndOfBurst:
		return "end"
	default:
		return fmt.Sprintf("cti(%d)", uint8(c))
	}
}

// A Transaction is what the bus master drives during one cycle.
type Transaction struct {
	Cyc  bool
	Stb  bool
	We   bool
	Addr uint32
	Sel  uint8
	CTI  CTI
	Data uint32
}

// Active tells if the master requests a transfer in this cycle.
func (t Transaction) Active() bool {
	return t.Cyc && t.Stb
}

// ContinuesBurst tells if the master announces that another beat follows
// this one at the next address.
func (t Transaction) ContinuesBurst() bool {
	return t.CTI == CTIIncrBurst
}

func (t Transaction) String() string {
	dir := "R"
	if t.We {
		dir = "W"
	}

	return fmt.Sprintf("cyc=%t stb=%t %s adr=0x%08x sel=0x%x cti=%s dat=0x%08x",
		t.Cyc, t.Stb, dir, t.Addr, t.Sel&0xF, t.CTI, t.Data)
}

// A Response is what the target drives back during one cycle.
type Response struct {
	Ack  bool
	Data uint32
}
