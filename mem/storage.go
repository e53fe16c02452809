// Package mem provides the flat memory image that backs the emulated bus
// target.
package mem

import (
	"fmt"
	"log"
)

// Useful units
const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
)

// A View is a read-only window into a memory image. The device under test gets
// a View so that it can check its own accesses against the backing store.
type View interface {
	Capacity() uint64
	ByteAt(addr uint32) byte
	WordAt(addr uint32) uint32
}

// A Storage keeps the data of the guest system as one contiguous byte array.
//
// Every address is masked into the capacity, so no access can fall outside
// the array. Aliased addresses wrap around.
type Storage struct {
	data []byte
	mask uint32
}

// NewStorage creates a zero-filled storage. The capacity must be a power of
// two between 4 bytes and 4 GiB.
func NewStorage(capacity uint64) *Storage {
	if capacity < 4 || capacity > 1<<32 || capacity&(capacity-1) != 0 {
		log.Panicf("storage capacity %d is not a power of two in [4, 4GiB]",
			capacity)
	}

	return &Storage{
		data: make([]byte, capacity),
		mask: uint32(capacity - 1),
	}
}

// Capacity returns the number of bytes in the storage.
func (s *Storage) Capacity() uint64 {
	return uint64(len(s.data))
}

// Mask returns the mask applied to every address.
func (s *Storage) Mask() uint32 {
	return s.mask
}

// ByteAt returns the byte at addr.
func (s *Storage) ByteAt(addr uint32) byte {
	return s.data[addr&s.mask]
}

// SetByte stores value at addr.
func (s *Storage) SetByte(addr uint32, value byte) {
	s.data[addr&s.mask] = value
}

// WordAt assembles the little-endian 32-bit word that contains addr. The low
// two address bits are ignored.
func (s *Storage) WordAt(addr uint32) uint32 {
	base := addr &^ 3

	var word uint32
	for i := uint32(0); i < 4; i++ {
		word |= uint32(s.ByteAt(base+i)) << (8 * i)
	}

	return word
}

// WriteWord stores the bytes of data whose bit is set in sel into the word
// that contains addr. Bit i of sel selects byte lane i.
func (s *Storage) WriteWord(addr uint32, data uint32, sel uint8) {
	base := addr &^ 3

	for i := uint32(0); i < 4; i++ {
		if sel&(1<<i) != 0 {
			s.SetByte(base+i, byte(data>>(8*i)))
		}
	}
}

// String describes the storage.
func (s *Storage) String() string {
	return fmt.Sprintf("Storage(%d bytes, mask 0x%x)", len(s.data), s.mask)
}
