package cpu

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// ErrUnknownInstruction is returned for instruction words that do not
// match any defined opcode pattern, including defined families with an
// invalid sub-opcode nibble. It is a fatal decode fault; the
// interpreter must not silently continue.
var ErrUnknownInstruction = errors.New("unknown instruction")

// Operation identifies a decoded CHIP-8 operation.
type Operation uint8

// All operations of the canonical CHIP-8 instruction set.
const (
	MachineJump Operation = iota // 0nnn, unused legacy instruction
	ClearScreen                  // 00E0
	Return                       // 00EE
	Jump                         // 1nnn
	CallSub                      // 2nnn
	SkipEqImm                    // 3xkk
	SkipNeImm                    // 4xkk
	SkipEqReg                    // 5xy0
	SkipNeReg                    // 9xy0
	LoadImm                      // 6xkk
	AddImm                       // 7xkk
	LoadReg                      // 8xy0
	OrReg                        // 8xy1
	AndReg                       // 8xy2
	XorReg                       // 8xy3
	AddReg                       // 8xy4
	SubReg                       // 8xy5
	ShiftRight                   // 8xy6
	SubnReg                      // 8xy7
	ShiftLeft                    // 8xyE
	LoadIndex                    // Annn
	JumpV0                       // Bnnn
	Random                       // Cxkk
	Draw                         // Dxyn
	SkipKey                      // Ex9E
	SkipNoKey                    // ExA1
	LoadDelay                    // Fx07
	WaitKey                      // Fx0A
	SetDelay                     // Fx15
	SetSound                     // Fx18
	AddIndex                     // Fx1E
	LoadGlyph                    // Fx29
	StoreBCD                     // Fx33
	StoreRegs                    // Fx55
	LoadRegs                     // Fx65
)

// Instruction is a decoded instruction: the operation tag, the operand
// fields already extracted from the instruction word, and the matching
// retrogolib instruction definition used for mnemonics in trace output
// and diagnostics.
type Instruction struct {
	Op  Operation
	Def *chip8.Instruction

	X    byte   // second nibble, register index
	Y    byte   // third nibble, register index
	N    byte   // trailing nibble
	NN   byte   // trailing byte
	NNN  uint16 // trailing 12 bits, the instruction stem
	Word uint16 // the raw instruction word
}

// Decode splits a 16 bit instruction word into its tagged operation and
// operand fields. Words not matching any defined pattern return
// ErrUnknownInstruction.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{
		X:    byte(word >> 8 & 0xF),
		Y:    byte(word >> 4 & 0xF),
		N:    byte(word & 0xF),
		NN:   byte(word),
		NNN:  word & 0x0FFF,
		Word: word,
	}

	switch word >> 12 {
	case 0x0:
		switch ins.NNN {
		case 0x0E0:
			ins.Op, ins.Def = ClearScreen, chip8.ClsInst
		case 0x0EE:
			ins.Op, ins.Def = Return, chip8.RetInst
		default:
			ins.Op = MachineJump
		}

	case 0x1:
		ins.Op, ins.Def = Jump, chip8.JpInst
	case 0x2:
		ins.Op, ins.Def = CallSub, chip8.CallInst
	case 0x3:
		ins.Op, ins.Def = SkipEqImm, chip8.SeInst
	case 0x4:
		ins.Op, ins.Def = SkipNeImm, chip8.SneInst

	case 0x5:
		// the trailing nibble must be exactly 0
		if ins.N != 0 {
			return ins, unknownInstruction(word)
		}
		ins.Op, ins.Def = SkipEqReg, chip8.SeInst

	case 0x6:
		ins.Op, ins.Def = LoadImm, chip8.LdInst
	case 0x7:
		ins.Op, ins.Def = AddImm, chip8.AddInst

	case 0x8:
		if err := decodeArithmetic(&ins); err != nil {
			return ins, err
		}

	case 0x9:
		if ins.N != 0 {
			return ins, unknownInstruction(word)
		}
		ins.Op, ins.Def = SkipNeReg, chip8.SneInst

	case 0xA:
		ins.Op, ins.Def = LoadIndex, chip8.LdInst
	case 0xB:
		ins.Op, ins.Def = JumpV0, chip8.JpInst
	case 0xC:
		ins.Op, ins.Def = Random, chip8.RndInst
	case 0xD:
		ins.Op, ins.Def = Draw, chip8.DrwInst

	case 0xE:
		switch ins.NN {
		case 0x9E:
			ins.Op, ins.Def = SkipKey, chip8.SkpInst
		case 0xA1:
			ins.Op, ins.Def = SkipNoKey, chip8.SknpInst
		default:
			return ins, unknownInstruction(word)
		}

	case 0xF:
		if err := decodeMisc(&ins); err != nil {
			return ins, err
		}
	}

	return ins, nil
}

// decodeArithmetic decodes the 8xyN register operation family by its
// trailing nibble.
func decodeArithmetic(ins *Instruction) error {
	switch ins.N {
	case 0x0:
		ins.Op, ins.Def = LoadReg, chip8.LdInst
	case 0x1:
		ins.Op, ins.Def = OrReg, chip8.OrInst
	case 0x2:
		ins.Op, ins.Def = AndReg, chip8.AndInst
	case 0x3:
		ins.Op, ins.Def = XorReg, chip8.XorInst
	case 0x4:
		ins.Op, ins.Def = AddReg, chip8.AddInst
	case 0x5:
		ins.Op, ins.Def = SubReg, chip8.SubInst
	case 0x6:
		ins.Op, ins.Def = ShiftRight, chip8.ShrInst
	case 0x7:
		ins.Op, ins.Def = SubnReg, chip8.SubnInst
	case 0xE:
		ins.Op, ins.Def = ShiftLeft, chip8.ShlInst
	default:
		return unknownInstruction(ins.Word)
	}
	return nil
}

// decodeMisc decodes the Fx timer, memory and input family by its
// trailing byte.
func decodeMisc(ins *Instruction) error {
	switch ins.NN {
	case 0x07:
		ins.Op, ins.Def = LoadDelay, chip8.LdInst
	case 0x0A:
		ins.Op, ins.Def = WaitKey, chip8.LdInst
	case 0x15:
		ins.Op, ins.Def = SetDelay, chip8.LdInst
	case 0x18:
		ins.Op, ins.Def = SetSound, chip8.LdInst
	case 0x1E:
		ins.Op, ins.Def = AddIndex, chip8.AddInst
	case 0x29:
		ins.Op, ins.Def = LoadGlyph, chip8.LdInst
	case 0x33:
		ins.Op, ins.Def = StoreBCD, chip8.LdInst
	case 0x55:
		ins.Op, ins.Def = StoreRegs, chip8.LdInst
	case 0x65:
		ins.Op, ins.Def = LoadRegs, chip8.LdInst
	default:
		return unknownInstruction(ins.Word)
	}
	return nil
}

func unknownInstruction(word uint16) error {
	return fmt.Errorf("%w: $%04X", ErrUnknownInstruction, word)
}
