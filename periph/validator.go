// Package periph validates the byte streams that peripherals of the device
// under test emit against golden reference sequences.
package periph

import (
	"fmt"
	"io"

	"github.com/sarchlab/busbench/verdict"
)

// A ChannelSpec describes one peripheral output channel.
type ChannelSpec struct {
	Name string

	// Golden is the exact byte sequence the channel must produce.
	Golden []byte

	// MismatchCode is the exit code for a wrong byte or an overflow on this
	// channel.
	MismatchCode verdict.Code
}

// Channel is the run-time state of one channel.
type Channel struct {
	ChannelSpec
	Received int
}

// Done tells if the channel has received its whole golden sequence.
func (c *Channel) Done() bool {
	return c.Received == len(c.Golden)
}

// A Validator compares peripheral output against golden sequences and echoes
// every observed byte to a console.
type Validator struct {
	channels []*Channel
	console  io.Writer
}

// NewValidator creates a validator for the given channels. Observed bytes are
// echoed to console, which may be nil.
func NewValidator(console io.Writer, specs ...ChannelSpec) *Validator {
	v := &Validator{console: console}
	for _, s := range specs {
		v.channels = append(v.channels, &Channel{ChannelSpec: s})
	}

	return v
}

// NumChannels returns the number of channels.
func (v *Validator) NumChannels() int {
	return len(v.channels)
}

// Channel returns the state of channel i.
func (v *Validator) Channel(i int) *Channel {
	return v.channels[i]
}

// Observe records that channel i emitted b. It returns a failure if b differs
// from the golden byte at the current position or if the golden sequence is
// already exhausted. The received count advances in either case.
func (v *Validator) Observe(i int, b byte) *verdict.Failure {
	ch := v.channels[i]
	pos := ch.Received
	ch.Received++

	if v.console != nil {
		fmt.Fprintf(v.console, "%c", b)
	}

	if pos >= len(ch.Golden) {
		return verdict.Failf(ch.MismatchCode,
			"%s character overflow. Rcvd=%q after %d expected bytes",
			ch.Name, b, len(ch.Golden))
	}

	if b != ch.Golden[pos] {
		return verdict.Failf(ch.MismatchCode,
			"%s character mismatch at byte %d. Rcvd=%q Exp=%q",
			ch.Name, pos, b, ch.Golden[pos])
	}

	return nil
}

// Complete returns a failure unless every channel received exactly its golden
// sequence.
func (v *Validator) Complete() *verdict.Failure {
	for _, ch := range v.channels {
		if !ch.Done() {
			return verdict.Failf(verdict.CodePeripheralIncomplete,
				"%q not printed correctly on %s. Received %d of %d bytes",
				ch.Golden, ch.Name, ch.Received, len(ch.Golden))
		}
	}

	return nil
}
