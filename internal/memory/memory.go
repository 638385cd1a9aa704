// Package memory implements the 4KB CHIP-8 address space.
//
// CHIP-8 memory map:
//
//	0x000-0x04F: unused interpreter area
//	0x050-0x09F: built-in hexadecimal font sprites
//	0x0A0-0x1FF: unused interpreter area
//	0x200-0xFFF: program and data space
package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the total size of the address space in bytes.
	Size = 4096

	// MaxAddress is the highest valid address.
	MaxAddress = Size - 1

	// ProgramStart is the address programs are loaded to and start executing at.
	ProgramStart = 0x200

	// ProgramSize is the number of bytes available for a program image.
	ProgramSize = Size - ProgramStart

	// FontStart is the address of the sprite for digit 0.
	FontStart = 0x050

	// FontGlyphSize is the number of bytes per font sprite.
	FontGlyphSize = 5
)

// ErrOutOfBounds is returned for accesses outside of the address space.
var ErrOutOfBounds = errors.New("memory access out of bounds")

// font contains the 16 hexadecimal digit sprites, 4 pixels wide and 5 rows high.
var font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Font returns a copy of the built-in font sprite set.
func Font() []byte {
	b := make([]byte, len(font))
	copy(b, font[:])
	return b
}

// GlyphAddress returns the address of the font sprite for the given digit.
// Only the low nibble of digit is used.
func GlyphAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0x0F)*FontGlyphSize
}

// Memory is the flat byte addressable store of the machine.
type Memory struct {
	data [Size]byte
}

// New returns a memory instance that has been reset.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes the whole address space and installs the font set.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	copy(m.data[FontStart:], font[:])
}

// ReadWord returns the big-endian 16-bit word starting at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if address >= MaxAddress {
		return 0, fmt.Errorf("%w: reading word at $%04X", ErrOutOfBounds, address)
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Slice returns a view of length bytes starting at address. The returned
// slice aliases the memory and must not be retained across a reset.
func (m *Memory) Slice(address uint16, length int) ([]byte, error) {
	if err := CheckRange(address, length); err != nil {
		return nil, err
	}
	return m.data[int(address) : int(address)+length], nil
}

// Copy writes data starting at address. Nothing is written if the data
// does not fit completely.
func (m *Memory) Copy(address uint16, data []byte) error {
	if err := CheckRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// Dump returns a copy of the complete address space.
func (m *Memory) Dump() []byte {
	b := make([]byte, Size)
	copy(b, m.data[:])
	return b
}

// CheckRange verifies that length bytes starting at address are inside the
// address space.
func CheckRange(address uint16, length int) error {
	if length < 0 || int(address)+length > Size {
		return fmt.Errorf("%w: $%04X+%d", ErrOutOfBounds, address, length)
	}
	return nil
}
