package chip8

import (
	"fmt"
	"strings"

	rgchip8 "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns a map of addresses and their corresponding instructions
// over the whole program space. Jump targets may be odd, so every address
// gets an entry.
func (b *Bus) Disassemble() map[uint16]string {
	disasm := make(map[uint16]string, MaxAddress-ProgramStart)
	for addr := ProgramStart; addr < MaxAddress; addr++ {
		pc := uint16(addr)
		disasm[pc] = fmt.Sprintf("$%04X: %s", pc, disasmWord(b.ram[pc], b.ram[pc+1]))
	}
	return disasm
}

// disasmWord renders one instruction word as assembly text. The opcode is
// identified through the mask tables, the operands follow the conventional
// CHIP-8 notation.
func disasmWord(hi, lo uint8) string {
	w := uint16(hi)<<8 | uint16(lo)

	var ins *rgchip8.Instruction
	for _, opc := range rgchip8.Opcodes[int(hi>>4)] {
		if opc.Info.Mask&w == opc.Info.Value {
			ins = opc.Instruction
			break
		}
	}
	if ins == nil {
		return "???"
	}

	var (
		name = strings.ToUpper(ins.Name)
		addr = w & 0x0FFF
		x    = hi & 0x0F
		y    = lo >> 4
		n    = lo & 0x0F
	)

	switch hi >> 4 {
	case 0x0:
		switch w {
		case 0x00E0, 0x00EE:
			return name
		}
		return fmt.Sprintf("%s $%03X", name, addr)
	case 0x1, 0x2:
		return fmt.Sprintf("%s $%03X", name, addr)
	case 0x3, 0x4, 0x6, 0x7, 0xC:
		return fmt.Sprintf("%s V%X, $%02X", name, x, lo)
	case 0x5, 0x8, 0x9:
		return fmt.Sprintf("%s V%X, V%X", name, x, y)
	case 0xA:
		return fmt.Sprintf("%s I, $%03X", name, addr)
	case 0xB:
		return fmt.Sprintf("%s V0, $%03X", name, addr)
	case 0xD:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, x, y, n)
	case 0xE:
		return fmt.Sprintf("%s V%X", name, x)
	case 0xF:
		switch lo {
		case 0x07:
			return fmt.Sprintf("%s V%X, DT", name, x)
		case 0x0A:
			return fmt.Sprintf("%s V%X, K", name, x)
		case 0x15:
			return fmt.Sprintf("%s DT, V%X", name, x)
		case 0x18:
			return fmt.Sprintf("%s ST, V%X", name, x)
		case 0x1E:
			return fmt.Sprintf("%s I, V%X", name, x)
		case 0x29:
			return fmt.Sprintf("%s F, V%X", name, x)
		case 0x33:
			return fmt.Sprintf("%s B, V%X", name, x)
		case 0x55:
			return fmt.Sprintf("%s [I], V%X", name, x)
		case 0x65:
			return fmt.Sprintf("%s V%X, [I]", name, x)
		}
	}
	return name
}
