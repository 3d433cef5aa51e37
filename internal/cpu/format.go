package cpu

import (
	"fmt"
)

// FormatInstruction formats a decoded instruction as assembly-like text
// for trace logging and diagnostics, e.g. "drw V1, V2, $5".
func FormatInstruction(ins Instruction) string {
	name := "sys"
	if ins.Def != nil {
		name = ins.Def.Name
	}

	params := formatParams(ins)
	if params == "" {
		return name
	}
	return fmt.Sprintf("%s %s", name, params)
}

// formatParams formats the operand fields of an instruction. Operand
// order follows the conventional CHIP-8 assembly syntax.
func formatParams(ins Instruction) string {
	switch ins.Op {
	case ClearScreen, Return:
		return ""
	case MachineJump, Jump, CallSub:
		return fmt.Sprintf("$%03X", ins.NNN)
	case JumpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)

	case SkipEqImm, SkipNeImm, LoadImm, AddImm, Random:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case SkipEqReg, SkipNeReg, LoadReg, OrReg, AndReg, XorReg, AddReg, SubReg, SubnReg:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case ShiftRight, ShiftLeft:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)

	case LoadIndex:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case SkipKey, SkipNoKey:
		return fmt.Sprintf("V%X", ins.X)

	case LoadDelay:
		return fmt.Sprintf("V%X, DT", ins.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", ins.X)
	case SetDelay:
		return fmt.Sprintf("DT, V%X", ins.X)
	case SetSound:
		return fmt.Sprintf("ST, V%X", ins.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", ins.X)
	case LoadGlyph:
		return fmt.Sprintf("F, V%X", ins.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", ins.X)
	case StoreRegs:
		return fmt.Sprintf("[I], V%X", ins.X)
	case LoadRegs:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}
