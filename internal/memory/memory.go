// Package memory implements the flat 4 KiB address space of the CHIP-8 machine.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// TotalMemory is the size of the CHIP-8 address space in bytes.
	TotalMemory = 0x1000

	// FontAddress is the address at which the built-in hex digit glyph
	// table is stored. The exact address is arbitrary as long as the
	// table stays below ProgramStart.
	FontAddress = 0x100

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into the
	// program region.
	MaxProgramSize = TotalMemory - ProgramStart
)

// GlyphHeight is the height in bytes of one built-in digit sprite.
const GlyphHeight = 5

// fontSprites contains the 16 built-in 5 byte bitmap sprites for the
// hexadecimal digits 0-F.
var fontSprites = [16][GlyphHeight]byte{
	{0xF0, 0x90, 0x90, 0x90, 0xF0}, // 0
	{0x20, 0x60, 0x20, 0x20, 0x70}, // 1
	{0xF0, 0x10, 0xF0, 0x80, 0xF0}, // 2
	{0xF0, 0x10, 0xF0, 0x10, 0xF0}, // 3
	{0x90, 0x90, 0xF0, 0x10, 0x10}, // 4
	{0xF0, 0x80, 0xF0, 0x10, 0xF0}, // 5
	{0xF0, 0x80, 0xF0, 0x90, 0xF0}, // 6
	{0xF0, 0x10, 0x20, 0x40, 0x40}, // 7
	{0xF0, 0x90, 0xF0, 0x90, 0xF0}, // 8
	{0xF0, 0x90, 0xF0, 0x10, 0xF0}, // 9
	{0xF0, 0x90, 0xF0, 0x90, 0x90}, // A
	{0xE0, 0x90, 0xE0, 0x90, 0xE0}, // B
	{0xF0, 0x80, 0x80, 0x80, 0xF0}, // C
	{0xE0, 0x90, 0x90, 0x90, 0xE0}, // D
	{0xF0, 0x80, 0xF0, 0x80, 0xF0}, // E
	{0xF0, 0x80, 0xF0, 0x80, 0x80}, // F
}

// Compile-time check that the glyph table does not overlap the program region.
const _ = uint(ProgramStart - (FontAddress + len(fontSprites)*GlyphHeight))

// Program image loading errors, reported to the caller as ordinary
// failures so that loading can be retried.
var (
	ErrEmptyProgram    = errors.New("cannot load size 0 program")
	ErrProgramTooLarge = errors.New("program size exceeds CHIP-8 maximum")
)

// ErrOutOfRange is returned for any access outside the addressable
// memory. The interpreter treats it as a fatal machine fault.
var ErrOutOfRange = errors.New("memory access out of range")

// Memory represents the byte-addressable storage of a single machine
// instance. The glyph table is written once at creation, the program
// image once per load.
type Memory struct {
	data [TotalMemory]byte
}

// New creates a zero-filled memory with the glyph table in place.
func New() *Memory {
	m := &Memory{}
	m.writeGlyphTable()
	return m
}

// LoadProgram copies a program image verbatim into the program region.
// Zero-length images and images exceeding MaxProgramSize are rejected
// and leave memory unmodified.
func (m *Memory) LoadProgram(data []byte) error {
	switch {
	case len(data) == 0:
		return ErrEmptyProgram
	case len(data) > MaxProgramSize:
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(data), MaxProgramSize)
	}

	copy(m.data[ProgramStart:], data)
	return nil
}

// ClearProgram zeroes the program region, keeping the glyph table intact.
func (m *Memory) ClearProgram() {
	clear(m.data[ProgramStart:])
}

// ReadByte reads a single byte.
func (m *Memory) ReadByte(address uint16) (byte, error) {
	if int(address) >= TotalMemory {
		return 0, fmt.Errorf("%w: reading byte at $%04X", ErrOutOfRange, address)
	}
	return m.data[address], nil
}

// FetchWord reads the big-endian 16 bit instruction word at the given address.
func (m *Memory) FetchWord(address uint16) (uint16, error) {
	if int(address)+1 >= TotalMemory {
		return 0, fmt.Errorf("%w: fetching word at $%04X", ErrOutOfRange, address)
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// ReadRange returns a read-only view of length bytes starting at the
// given address. The view aliases the underlying storage and is only
// valid until the next mutation.
func (m *Memory) ReadRange(address uint16, length int) ([]byte, error) {
	if int(address)+length > TotalMemory {
		return nil, fmt.Errorf("%w: reading %d bytes at $%04X", ErrOutOfRange, length, address)
	}
	return m.data[address : int(address)+length], nil
}

// WriteRange copies data into memory starting at the given address.
func (m *Memory) WriteRange(address uint16, data []byte) error {
	if int(address)+len(data) > TotalMemory {
		return fmt.Errorf("%w: writing %d bytes at $%04X", ErrOutOfRange, len(data), address)
	}
	copy(m.data[address:], data)
	return nil
}

func (m *Memory) writeGlyphTable() {
	offset := FontAddress
	for _, sprite := range fontSprites {
		copy(m.data[offset:], sprite[:])
		offset += GlyphHeight
	}
}

// GlyphAddress returns the address of the built-in sprite for a hex
// digit. Values above 0xF wrap, matching the original interpreter.
func GlyphAddress(digit byte) uint16 {
	return FontAddress + uint16(digit%16)
}
