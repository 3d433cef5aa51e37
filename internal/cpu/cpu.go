// Package cpu implements the CHIP-8 register file and the fetch, decode
// and execute cycle of the interpreter.
package cpu

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/chip8go/internal/memory"
	"github.com/retroenv/chip8go/internal/screen"
	"github.com/retroenv/retrogolib/log"
)

const (
	// NumRegisters is the number of general purpose registers V0-VF.
	NumRegisters = 16

	// StackDepth is the maximum call nesting depth.
	StackDepth = 16

	// flagRegister is the index of VF. It doubles as the implicit
	// carry, borrow and collision flag output of arithmetic, shift and
	// draw instructions while remaining addressable as an ordinary
	// register.
	flagRegister = 0xF
)

// Call stack fault conditions. Both are fatal machine faults.
var (
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrStackUnderflow = errors.New("cannot pop from empty call stack")
)

// CPU holds the register file of a machine instance and executes
// instructions against its memory and screen. It never blocks or
// suspends mid instruction; no state escapes a single Step call.
type CPU struct {
	logger *log.Logger
	mem    *memory.Memory
	screen *screen.Screen

	// V are the general purpose registers V0-VF.
	V [NumRegisters]byte
	// I is the 16 bit address register.
	I uint16
	// PC is the program counter.
	PC uint16
	// DT and ST are the delay and sound countdown timers.
	DT byte
	ST byte

	stack [StackDepth]uint16
	sp    int

	keys uint16

	randByte func() byte
	trace    bool
}

// New creates a CPU in power-on state, with the program counter at the
// program region start.
func New(logger *log.Logger, mem *memory.Memory, scr *screen.Screen) *CPU {
	return &CPU{
		logger:   logger,
		mem:      mem,
		screen:   scr,
		PC:       memory.ProgramStart,
		randByte: func() byte { return byte(rand.Uint32()) },
	}
}

// Reset returns the register file to power-on state. Memory and screen
// contents are not touched.
func (c *CPU) Reset() {
	c.V = [NumRegisters]byte{}
	c.I = 0
	c.PC = memory.ProgramStart
	c.DT = 0
	c.ST = 0
	c.sp = 0
	c.keys = 0
}

// SetKeys installs the key state snapshot taken by the frame driver's
// once-per-frame input poll. Bit n set means key n is pressed.
func (c *CPU) SetKeys(keys uint16) {
	c.keys = keys
}

// SetTrace enables per-instruction debug logging.
func (c *CPU) SetTrace(trace bool) {
	c.trace = trace
}

// Step fetches, decodes and executes the instruction at the program
// counter. A returned error is a fatal machine fault; the register file
// must be considered corrupted and execution must not continue.
func (c *CPU) Step() error {
	word, err := c.mem.FetchWord(c.PC)
	if err != nil {
		return fmt.Errorf("fetching instruction: %w", err)
	}

	ins, err := Decode(word)
	if err != nil {
		return err
	}

	if c.trace {
		c.logger.Debug("executing instruction",
			log.String("pc", fmt.Sprintf("$%03X", c.PC)),
			log.String("code", FormatInstruction(ins)),
		)
	}

	return c.execute(ins)
}

// keyPressed reports whether the key selected by a register value is
// currently pressed. Register values above 0xF wrap onto the 16 key
// keypad, consistent with the glyph table lookup.
func (c *CPU) keyPressed(value byte) bool {
	return c.keys&(1<<(value%16)) != 0
}
