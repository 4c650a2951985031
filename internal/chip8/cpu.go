package chip8

import (
	"math/bits"
)

type execMode uint8

const (
	modeRunning        execMode = iota // fetching and executing normally
	modeWaitKeyPress                   // parked on FX0A until a fresh key goes down
	modeWaitKeyRelease                 // parked until the captured key goes up
	modeWaitFrame                      // parked after a draw until the next frame tick
)

func (m execMode) String() string {
	switch m {
	case modeRunning:
		return "RUN"
	case modeWaitKeyPress:
		return "WAIT KEY"
	case modeWaitKeyRelease:
		return "WAIT REL"
	case modeWaitFrame:
		return "WAIT VBL"
	}
	return "???"
}

// execState is the CPU run mode together with the data that belongs to it.
// While waiting the CPU does not fetch, Step only polls the keypad.
type execState struct {
	mode execMode

	dst      uint8  // register that receives the pressed key index
	baseline uint16 // keys that were already down when the wait began
	key      uint8  // key whose release is awaited
}

type CPU struct {
	v     [16]uint8 // V0..VF, VF doubles as the flag register
	i     uint16
	pc    uint16
	stack [16]uint16
	sp    uint8
	delay uint8

	rnd      lfsr
	state    execState
	quirks   Quirks
	io       Peripherals
	redrawer Redrawer
}

func NewCPU(io Peripherals, quirks Quirks) *CPU {
	c := &CPU{
		io:     io,
		quirks: quirks,
	}
	if r, ok := io.(Redrawer); ok {
		c.redrawer = r
	}
	c.Reset()
	return c
}

// Reset puts the CPU into its power-on state.
// Memory belongs to the host and is left untouched.
func (c *CPU) Reset() {
	c.v = [16]uint8{}
	c.i = 0
	c.pc = ProgramStart
	c.stack = [16]uint16{}
	c.sp = 0
	c.delay = 0
	c.rnd = lfsrSeed
	c.state = execState{mode: modeRunning}
}

func (c CPU) read(addr uint16) uint8 {
	return c.io.ReadRAM(addr)
}

func (c *CPU) write(addr uint16, data uint8) {
	c.io.WriteRAM(addr, data)
}

func (c *CPU) setFlag(v bool) {
	if v {
		c.v[0xF] = 1
		return
	}
	c.v[0xF] = 0
}

// Step executes one instruction, or performs one keypad poll while the CPU
// is waiting. It never blocks. An instruction word that does not decode is
// returned as an UnknownOpcodeError with the program counter already moved
// past it, so the caller picks between halting and skipping.
func (c *CPU) Step() error {
	switch c.state.mode {
	case modeWaitKeyPress:
		c.pollKeyPress()
		return nil
	case modeWaitKeyRelease:
		c.pollKeyRelease()
		return nil
	case modeWaitFrame:
		return nil
	}

	hi := c.read(c.pc)
	lo := c.read(c.pc + 1)
	c.pc += 2

	o, ok := decode(hi, lo)
	if !ok {
		return UnknownOpcodeError{
			Addr:   c.pc - 2,
			Opcode: uint16(hi)<<8 | uint16(lo),
		}
	}

	c.exec(o)
	return nil
}

// TickFrame advances everything that runs at the fixed frame rate: the delay
// timer counts down, the random generator shifts once and a CPU stalled on
// the display is released. The host calls it once per frame, 60 times a
// second on the original hardware.
func (c *CPU) TickFrame() {
	if c.delay > 0 {
		c.delay--
	}
	c.rnd.next()
	if c.state.mode == modeWaitFrame {
		c.state = execState{mode: modeRunning}
	}
}

// pollKeyPress looks for a key that went down since the previous poll.
// Keys held before the wait began never count, the baseline tracks them.
func (c *CPU) pollKeyPress() {
	keys := c.io.Keys()
	fresh := keys &^ c.state.baseline
	if fresh == 0 {
		c.state.baseline = keys
		return
	}

	// the lowest set bit wins when several keys land on the same poll
	key := uint8(bits.TrailingZeros16(fresh))
	c.v[c.state.dst] = key
	c.state = execState{mode: modeWaitKeyRelease, key: key}
}

func (c *CPU) pollKeyRelease() {
	if c.io.Keys()&(1<<c.state.key) == 0 {
		c.state = execState{mode: modeRunning}
	}
}

func (c *CPU) exec(o op) {
	switch o.kind {
	case opSys:
		// machine code call on the original hardware, ignored here
	case opClear:
		c.clear()
	case opRet:
		c.ret()
	case opJump:
		c.pc = o.addr
	case opCall:
		c.call(o.addr)
	case opSkip:
		rhs := o.nn
		if o.yReg {
			rhs = c.v[o.y]
		}
		c.skipIf(o.cmp.holds(c.v[o.x], rhs))
	case opLoadImm:
		c.v[o.x] = o.nn
	case opAddImm:
		c.v[o.x] += o.nn
	case opArith:
		r, flag, hasFlag := arith(c.quirks, o.ari, c.v[o.x], c.v[o.y])
		c.v[o.x] = r
		if hasFlag {
			c.setFlag(flag)
		}
	case opLoadI:
		c.i = o.addr
	case opJumpV0:
		c.pc = o.addr + uint16(c.v[0x0])
	case opRandom:
		c.v[o.x] = c.rnd.next() & o.nn
	case opDraw:
		c.draw(o)
	case opSkipKey:
		key := c.v[o.x] & 0x0F
		pressed := c.io.Keys()&(1<<key) > 0
		if o.cmp == cmpEq {
			c.skipIf(pressed)
		} else {
			c.skipIf(!pressed)
		}
	case opGetDelay:
		c.v[o.x] = c.delay
	case opWaitKey:
		c.state = execState{
			mode:     modeWaitKeyPress,
			dst:      o.x,
			baseline: c.io.Keys(),
		}
	case opSetDelay:
		c.delay = c.v[o.x]
	case opSetSound:
		c.io.SetSound(c.v[o.x])
	case opAddI:
		sum := c.i + uint16(c.v[o.x])
		c.i = sum & MaxAddress
		c.setFlag(sum > MaxAddress)
	case opHexGlyph:
		c.i = uint16(c.v[o.x]&0x0F) * glyphStride
	case opStoreBCD:
		c.storeBCD(o.x)
	case opSave:
		c.save(o.x)
	case opRestore:
		c.restore(o.x)
	}
}

// arith computes one 8XY_ ALU operation on the register values x and y.
// hasFlag reports whether VF must be written with flag afterwards.
func arith(q Quirks, ari arithOp, x, y uint8) (r uint8, flag, hasFlag bool) {
	switch ari {
	case ariLoad:
		return y, false, false
	case ariOr:
		return x | y, false, q.ResetVF
	case ariAnd:
		return x & y, false, q.ResetVF
	case ariXor:
		return x ^ y, false, q.ResetVF
	case ariAdd:
		sum := uint16(x) + uint16(y)
		return uint8(sum), sum > 0xFF, true
	case ariSub:
		return x - y, x >= y, true
	case ariSubFlip:
		return y - x, y >= x, true
	case ariShiftR:
		v := x
		if q.ShiftVY {
			v = y
		}
		return v >> 1, v&0x01 > 0, true
	case ariShiftL:
		v := x
		if q.ShiftVY {
			v = y
		}
		return v << 1, v&0x80 > 0, true
	}
	return 0, false, false
}

func (cmp cmpOp) holds(a, b uint8) bool {
	if cmp == cmpEq {
		return a == b
	}
	return a != b
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

// call pushes the return address and jumps. The stack is 16 slots deep and
// wraps silently, a 17th nested call overwrites the oldest frame.
func (c *CPU) call(addr uint16) {
	c.stack[c.sp] = c.pc
	c.sp = (c.sp + 1) & 0x0F
	c.pc = addr
}

func (c *CPU) ret() {
	c.sp = (c.sp - 1) & 0x0F
	c.pc = c.stack[c.sp]
}

func (c *CPU) clear() {
	for y := uint8(0); y < ScreenHeight; y++ {
		c.io.SetPixelRow(y, 0)
	}
	c.redraw()
	c.waitFrame()
}

// draw XORs an o.n rows tall sprite fetched at I onto the screen. The sprite
// origin wraps on both axes; the overhang either clips at the edges or wraps
// around depending on the quirk. VF reports whether any set pixel was erased.
func (c *CPU) draw(o op) {
	x := c.v[o.x] & (ScreenWidth - 1)
	y := c.v[o.y] & (ScreenHeight - 1)

	collision := false
	for i := uint8(0); i < o.n; i++ {
		row := y + i
		if row >= ScreenHeight {
			if c.quirks.ClipSprites {
				break
			}
			row &= ScreenHeight - 1
		}

		// bit 0 of a pixel row is the leftmost pixel, while bit 7 of a
		// sprite byte is, so the byte goes in reversed
		sprite := uint64(bits.Reverse8(c.read(c.i + uint16(i))))
		var line uint64
		if c.quirks.ClipSprites {
			line = sprite << x
		} else {
			line = bits.RotateLeft64(sprite, int(x))
		}

		old := c.io.PixelRow(row)
		if old&line > 0 {
			collision = true
		}
		c.io.SetPixelRow(row, old^line)
	}

	c.setFlag(collision)
	c.redraw()
	c.waitFrame()
}

func (c *CPU) storeBCD(x uint8) {
	v := c.v[x]
	c.write(c.i, v/100)
	c.write(c.i+1, (v%100)/10)
	c.write(c.i+2, v%10)
	c.movePtr(3)
}

func (c *CPU) save(x uint8) {
	for i := uint8(0); i <= x; i++ {
		c.write(c.i+uint16(i), c.v[i])
	}
	c.movePtr(uint16(x) + 1)
}

func (c *CPU) restore(x uint8) {
	for i := uint8(0); i <= x; i++ {
		c.v[i] = c.read(c.i + uint16(i))
	}
	c.movePtr(uint16(x) + 1)
}

// movePtr advances I past a memory transfer when the increment quirk is on.
func (c *CPU) movePtr(n uint16) {
	if c.quirks.IncrementI {
		c.i = (c.i + n) & MaxAddress
	}
}

// waitFrame stalls the CPU until the next frame tick when the display wait
// quirk is on.
func (c *CPU) waitFrame() {
	if c.quirks.DisplayWait {
		c.state = execState{mode: modeWaitFrame}
	}
}

func (c *CPU) redraw() {
	if c.redrawer != nil {
		c.redrawer.Redraw()
	}
}
