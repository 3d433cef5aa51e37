package cpu

import (
	"fmt"

	"github.com/retroenv/chip8go/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// execute applies the state mutations of a decoded instruction. The
// program counter advances by 2 afterwards unless the instruction
// redirected control flow itself.
func (c *CPU) execute(ins Instruction) error {
	advance := true

	switch ins.Op {
	case MachineJump:
		// 0nnn jumps into interpreter machine code on the original
		// hardware. No program uses it, ignoring it is safe.
		c.logger.Info("ignoring jump to machine code routine",
			log.String("address", fmt.Sprintf("$%03X", ins.NNN)))

	case ClearScreen:
		c.screen.Clear()

	case Return:
		if c.sp == 0 {
			return ErrStackUnderflow
		}
		c.sp--
		c.PC = c.stack[c.sp]
		advance = false

	case Jump:
		c.PC = ins.NNN
		advance = false

	case CallSub:
		if c.sp == StackDepth {
			return fmt.Errorf("%w: depth %d", ErrStackOverflow, StackDepth)
		}
		c.stack[c.sp] = c.PC + 2
		c.sp++
		c.PC = ins.NNN
		advance = false

	case SkipEqImm:
		if c.V[ins.X] == ins.NN {
			c.PC += 2
		}
	case SkipNeImm:
		if c.V[ins.X] != ins.NN {
			c.PC += 2
		}
	case SkipEqReg:
		if c.V[ins.X] == c.V[ins.Y] {
			c.PC += 2
		}
	case SkipNeReg:
		if c.V[ins.X] != c.V[ins.Y] {
			c.PC += 2
		}

	case LoadImm:
		c.V[ins.X] = ins.NN
	case AddImm:
		c.V[ins.X] += ins.NN

	case LoadReg, OrReg, AndReg, XorReg, AddReg, SubReg, ShiftRight, SubnReg, ShiftLeft:
		c.executeArithmetic(ins)

	case LoadIndex:
		c.I = ins.NNN

	case JumpV0:
		c.PC = uint16(c.V[0]) + ins.NNN
		advance = false

	case Random:
		c.V[ins.X] = c.randByte() & ins.NN

	case Draw:
		if err := c.draw(ins); err != nil {
			return err
		}

	case SkipKey:
		if c.keyPressed(c.V[ins.X]) {
			c.PC += 2
		}
	case SkipNoKey:
		if !c.keyPressed(c.V[ins.X]) {
			c.PC += 2
		}

	default:
		return c.executeMisc(ins, &advance)
	}

	if advance {
		c.PC += 2
	}
	return nil
}

// executeArithmetic handles the 8xyN register operations. Operands are
// read first, then the flag register is written before the result, so
// an instruction naming VF as its result register overwrites the flag
// with the result, matching the original interpreter.
func (c *CPU) executeArithmetic(ins Instruction) {
	x, y := c.V[ins.X], c.V[ins.Y]

	switch ins.Op {
	case LoadReg:
		c.V[ins.X] = y
	case OrReg:
		c.V[ins.X] = x | y
	case AndReg:
		c.V[ins.X] = x & y
	case XorReg:
		c.V[ins.X] = x ^ y

	case AddReg:
		sum := uint16(x) + uint16(y)
		c.V[flagRegister] = b2i(sum > 0xFF)
		c.V[ins.X] = byte(sum)

	case SubReg: // VF = 1 iff no borrow
		c.V[flagRegister] = b2i(x >= y)
		c.V[ins.X] = x - y

	case SubnReg:
		c.V[flagRegister] = b2i(y >= x)
		c.V[ins.X] = y - x

	case ShiftRight: // original CHIP-8 shifts Vy into Vx
		c.V[flagRegister] = y & 1
		c.V[ins.X] = y >> 1

	case ShiftLeft:
		c.V[flagRegister] = y >> 7
		c.V[ins.X] = y << 1
	}
}

// executeMisc handles the Fx timer, memory and input family.
func (c *CPU) executeMisc(ins Instruction, advance *bool) error {
	switch ins.Op {
	case LoadDelay:
		c.V[ins.X] = c.DT
	case SetDelay:
		c.DT = c.V[ins.X]
	case SetSound:
		c.ST = c.V[ins.X]

	case WaitKey:
		// Re-execute the instruction every tick until a key is down,
		// then store the lowest pressed key. Execution of other frame
		// work continues, so the machine stays frame-driven instead of
		// blocking.
		if c.keys == 0 {
			*advance = false
			return nil
		}
		for key := byte(0); key < 16; key++ {
			if c.keys&(1<<key) != 0 {
				c.V[ins.X] = key
				break
			}
		}

	case AddIndex:
		// 16 bit add without masking, I may exceed the addressable
		// range until it is used, matching the legacy interpreter.
		c.I += uint16(c.V[ins.X])

	case LoadGlyph:
		c.I = memory.GlyphAddress(c.V[ins.X])

	case StoreBCD:
		value := c.V[ins.X]
		digits := []byte{value / 100, value / 10 % 10, value % 10}
		if err := c.mem.WriteRange(c.I, digits); err != nil {
			return fmt.Errorf("storing BCD digits: %w", err)
		}

	case StoreRegs:
		if err := c.mem.WriteRange(c.I, c.V[:int(ins.X)+1]); err != nil {
			return fmt.Errorf("storing registers: %w", err)
		}
		c.I += uint16(ins.X) + 1

	case LoadRegs:
		data, err := c.mem.ReadRange(c.I, int(ins.X)+1)
		if err != nil {
			return fmt.Errorf("loading registers: %w", err)
		}
		copy(c.V[:], data)
		c.I += uint16(ins.X) + 1
	}

	if *advance {
		c.PC += 2
	}
	return nil
}

// draw blits a sprite of N rows read from memory at the address
// register to position (Vx, Vy) and stores the collision result in VF.
func (c *CPU) draw(ins Instruction) error {
	sprite, err := c.mem.ReadRange(c.I, int(ins.N))
	if err != nil {
		return fmt.Errorf("reading sprite data: %w", err)
	}

	collided, err := c.screen.DrawSprite(sprite, c.V[ins.X], c.V[ins.Y])
	if err != nil {
		return fmt.Errorf("drawing sprite: %w", err)
	}
	c.V[flagRegister] = b2i(collided)
	return nil
}

func b2i(b bool) byte {
	if b {
		return 1
	}
	return 0
}
