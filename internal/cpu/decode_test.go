package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		word    uint16
		wantOp  Operation
		wantDef *chip8.Instruction
	}{
		{"clear screen", 0x00E0, ClearScreen, chip8.ClsInst},
		{"return", 0x00EE, Return, chip8.RetInst},
		{"machine jump", 0x0123, MachineJump, nil},
		{"jump", 0x1234, Jump, chip8.JpInst},
		{"call", 0x2345, CallSub, chip8.CallInst},
		{"skip eq imm", 0x3A42, SkipEqImm, chip8.SeInst},
		{"skip ne imm", 0x4B10, SkipNeImm, chip8.SneInst},
		{"skip eq reg", 0x5120, SkipEqReg, chip8.SeInst},
		{"skip ne reg", 0x9340, SkipNeReg, chip8.SneInst},
		{"load imm", 0x6C99, LoadImm, chip8.LdInst},
		{"add imm", 0x7D01, AddImm, chip8.AddInst},
		{"load reg", 0x8120, LoadReg, chip8.LdInst},
		{"or", 0x8121, OrReg, chip8.OrInst},
		{"and", 0x8122, AndReg, chip8.AndInst},
		{"xor", 0x8123, XorReg, chip8.XorInst},
		{"add reg", 0x8124, AddReg, chip8.AddInst},
		{"sub", 0x8125, SubReg, chip8.SubInst},
		{"shift right", 0x8126, ShiftRight, chip8.ShrInst},
		{"subn", 0x8127, SubnReg, chip8.SubnInst},
		{"shift left", 0x812E, ShiftLeft, chip8.ShlInst},
		{"load index", 0xA2F0, LoadIndex, chip8.LdInst},
		{"jump v0", 0xB100, JumpV0, chip8.JpInst},
		{"random", 0xC40F, Random, chip8.RndInst},
		{"draw", 0xD125, Draw, chip8.DrwInst},
		{"skip key", 0xE19E, SkipKey, chip8.SkpInst},
		{"skip no key", 0xE2A1, SkipNoKey, chip8.SknpInst},
		{"load delay", 0xF107, LoadDelay, chip8.LdInst},
		{"wait key", 0xF20A, WaitKey, chip8.LdInst},
		{"set delay", 0xF315, SetDelay, chip8.LdInst},
		{"set sound", 0xF418, SetSound, chip8.LdInst},
		{"add index", 0xF51E, AddIndex, chip8.AddInst},
		{"load glyph", 0xF629, LoadGlyph, chip8.LdInst},
		{"store bcd", 0xF733, StoreBCD, chip8.LdInst},
		{"store regs", 0xF855, StoreRegs, chip8.LdInst},
		{"load regs", 0xF965, LoadRegs, chip8.LdInst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantOp, ins.Op)
			assert.Equal(t, tt.wantDef, ins.Def)
			assert.Equal(t, tt.word, ins.Word)
		})
	}
}

func TestDecodeUnknownInstruction(t *testing.T) {
	tests := []struct {
		name string
		word uint16
	}{
		// a nonzero trailing nibble on register compares must not be
		// silently treated as the plain compare
		{"skip eq reg nonzero nibble", 0x5123},
		{"skip ne reg nonzero nibble", 0x9231},
		{"arithmetic invalid sub-opcode", 0x8128},
		{"arithmetic invalid sub-opcode F", 0x812F},
		{"key skip invalid suffix", 0xE100},
		{"misc invalid suffix", 0xF100},
		{"misc invalid suffix 66", 0xF266},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.word)
			assert.True(t, errors.Is(err, ErrUnknownInstruction))
		})
	}
}

func TestDecodeOperandExtraction(t *testing.T) {
	ins, err := Decode(0xD7A5)
	assert.NoError(t, err)

	assert.Equal(t, 0x7, ins.X)
	assert.Equal(t, 0xA, ins.Y)
	assert.Equal(t, 0x5, ins.N)
	assert.Equal(t, 0xA5, ins.NN)
	assert.Equal(t, 0x7A5, ins.NNN)
	assert.Equal(t, 0xD7A5, ins.Word)
}
