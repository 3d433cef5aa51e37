// Package screen implements the 64x32 monochrome display buffer of the
// CHIP-8 machine, including the XOR sprite blit with collision detection.
package screen

import (
	"errors"
	"fmt"
)

// Display dimensions of the CHIP-8 screen.
const (
	Width  = 64
	Height = 32

	// NumPixels is the total number of pixel cells.
	NumPixels = Width * Height
)

// Pixel values of the RGB565 frame snapshot.
const (
	pixelUnset = 0x0000
	pixelSet   = 0xFFFF
)

// MaxSpriteHeight is the maximum number of sprite rows a single draw
// instruction can carry.
const MaxSpriteHeight = 15

// ErrSpriteTooLarge is returned when a sprite exceeds MaxSpriteHeight
// rows. The interpreter treats it as a fatal machine fault.
var ErrSpriteTooLarge = errors.New("sprite exceeds maximum height")

// Screen is a grid of binary pixel cells. It is mutated only through
// DrawSprite and Clear and read once per frame for the video refresh.
type Screen struct {
	cells [NumPixels]bool
	frame [NumPixels]uint16
}

// New creates a cleared screen.
func New() *Screen {
	return &Screen{}
}

// Clear unsets every pixel cell.
func (s *Screen) Clear() {
	s.cells = [NumPixels]bool{}
}

// DrawSprite XORs a sprite into the display buffer with its top left
// corner at the given position. Each sprite byte is one 8 pixel wide
// row, most significant bit first. The start position wraps modulo the
// screen dimensions, the sprite itself is clipped at the right and
// bottom edges. It reports whether any pixel cell transitioned from set
// to unset; pixels turning on do not count as a collision, matching the
// original hardware behavior.
func (s *Screen) DrawSprite(sprite []byte, x, y byte) (bool, error) {
	if len(sprite) > MaxSpriteHeight {
		return false, fmt.Errorf("%w: %d rows", ErrSpriteTooLarge, len(sprite))
	}

	xPos := int(x) % Width
	yPos := int(y) % Height

	rows := min(Height-yPos, len(sprite))
	cols := min(Width-xPos, 8)

	collided := false
	for row := range rows {
		bits := sprite[row]
		for col := range cols {
			if bits&(0x80>>col) == 0 {
				continue
			}
			index := (yPos+row)*Width + xPos + col
			if s.cells[index] {
				collided = true
			}
			s.cells[index] = !s.cells[index]
		}
	}
	return collided, nil
}

// Pixel reports whether the cell at the given coordinates is set.
func (s *Screen) Pixel(x, y int) bool {
	return s.cells[y*Width+x]
}

// Frame renders the current display buffer contents as RGB565 pixels,
// one uint16 per cell, set cells white and unset cells black. The
// returned slice is reused by subsequent calls.
func (s *Screen) Frame() []uint16 {
	for i, set := range s.cells {
		if set {
			s.frame[i] = pixelSet
		} else {
			s.frame[i] = pixelUnset
		}
	}
	return s.frame[:]
}
