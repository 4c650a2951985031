package chip8

import "fmt"

type opKind uint8

const (
	opSys      opKind = iota + 1 // 0NNN
	opClear                      // 00E0
	opRet                        // 00EE
	opJump                       // 1NNN
	opCall                       // 2NNN
	opSkip                       // 3XNN, 4XNN, 5XY0, 9XY0
	opLoadImm                    // 6XNN
	opAddImm                     // 7XNN
	opArith                      // 8XY0..8XY7, 8XYE
	opLoadI                      // ANNN
	opJumpV0                     // BNNN
	opRandom                     // CXNN
	opDraw                       // DXYN
	opSkipKey                    // EX9E, EXA1
	opGetDelay                   // FX07
	opWaitKey                    // FX0A
	opSetDelay                   // FX15
	opSetSound                   // FX18
	opAddI                       // FX1E
	opHexGlyph                   // FX29
	opStoreBCD                   // FX33
	opSave                       // FX55
	opRestore                    // FX65
)

type arithOp uint8

const (
	ariLoad arithOp = iota + 1
	ariOr
	ariAnd
	ariXor
	ariAdd
	ariSub
	ariShiftR
	ariSubFlip
	ariShiftL
)

type cmpOp uint8

const (
	cmpEq cmpOp = iota + 1
	cmpNE
)

// op is one decoded instruction with every operand field extracted.
// Which fields are meaningful depends on kind.
type op struct {
	kind opKind
	addr uint16 // 12-bit address
	x    uint8  // first register index
	y    uint8  // second register index
	nn   uint8  // 8-bit immediate
	n    uint8  // 4-bit immediate
	ari  arithOp
	cmp  cmpOp
	yReg bool // compare against VY instead of the immediate
}

// decode maps a big-endian instruction word to its operation. Every word in
// the 0 family besides 00E0 and 00EE is a machine code call on the original
// hardware and decodes to the Sys no-op. Anything else unmatched reports
// ok == false and the caller decides what to do with it.
func decode(hi, lo uint8) (op, bool) {
	var (
		w    = uint16(hi)<<8 | uint16(lo)
		addr = w & 0x0FFF
		x    = hi & 0x0F
		y    = lo >> 4
		n    = lo & 0x0F
		nn   = lo
	)

	switch hi >> 4 {
	case 0x0:
		switch w {
		case 0x00E0:
			return op{kind: opClear}, true
		case 0x00EE:
			return op{kind: opRet}, true
		}
		return op{kind: opSys, addr: addr}, true
	case 0x1:
		return op{kind: opJump, addr: addr}, true
	case 0x2:
		return op{kind: opCall, addr: addr}, true
	case 0x3:
		return op{kind: opSkip, cmp: cmpEq, x: x, nn: nn}, true
	case 0x4:
		return op{kind: opSkip, cmp: cmpNE, x: x, nn: nn}, true
	case 0x5:
		if n == 0x0 {
			return op{kind: opSkip, cmp: cmpEq, x: x, y: y, yReg: true}, true
		}
	case 0x6:
		return op{kind: opLoadImm, x: x, nn: nn}, true
	case 0x7:
		return op{kind: opAddImm, x: x, nn: nn}, true
	case 0x8:
		if ari, ok := arithFromNibble(n); ok {
			return op{kind: opArith, ari: ari, x: x, y: y}, true
		}
	case 0x9:
		if n == 0x0 {
			return op{kind: opSkip, cmp: cmpNE, x: x, y: y, yReg: true}, true
		}
	case 0xA:
		return op{kind: opLoadI, addr: addr}, true
	case 0xB:
		return op{kind: opJumpV0, addr: addr}, true
	case 0xC:
		return op{kind: opRandom, x: x, nn: nn}, true
	case 0xD:
		return op{kind: opDraw, x: x, y: y, n: n}, true
	case 0xE:
		switch nn {
		case 0x9E:
			return op{kind: opSkipKey, cmp: cmpEq, x: x}, true
		case 0xA1:
			return op{kind: opSkipKey, cmp: cmpNE, x: x}, true
		}
	case 0xF:
		switch nn {
		case 0x07:
			return op{kind: opGetDelay, x: x}, true
		case 0x0A:
			return op{kind: opWaitKey, x: x}, true
		case 0x15:
			return op{kind: opSetDelay, x: x}, true
		case 0x18:
			return op{kind: opSetSound, x: x}, true
		case 0x1E:
			return op{kind: opAddI, x: x}, true
		case 0x29:
			return op{kind: opHexGlyph, x: x}, true
		case 0x33:
			return op{kind: opStoreBCD, x: x}, true
		case 0x55:
			return op{kind: opSave, x: x}, true
		case 0x65:
			return op{kind: opRestore, x: x}, true
		}
	}

	return op{}, false
}

func arithFromNibble(n uint8) (arithOp, bool) {
	switch n {
	case 0x0:
		return ariLoad, true
	case 0x1:
		return ariOr, true
	case 0x2:
		return ariAnd, true
	case 0x3:
		return ariXor, true
	case 0x4:
		return ariAdd, true
	case 0x5:
		return ariSub, true
	case 0x6:
		return ariShiftR, true
	case 0x7:
		return ariSubFlip, true
	case 0xE:
		return ariShiftL, true
	}
	return 0, false
}

// UnknownOpcodeError is returned by Step when the instruction word at the
// program counter does not decode to any operation. The program counter is
// already past the bad word, so the caller may keep stepping to skip it or
// stop the machine.
type UnknownOpcodeError struct {
	Addr   uint16
	Opcode uint16
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %04X", e.Opcode, e.Addr)
}
