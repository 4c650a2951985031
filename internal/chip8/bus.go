package chip8

// Bus is the machine around the CPU: 4 KB of RAM with the font at address 0,
// the 64x32 monochrome display as one uint64 per row, the keypad bitmask and
// the sound countdown. It serves the Peripherals interface the CPU runs
// against.
type Bus struct {
	ram   [MaxAddress + 1]uint8
	rows  [ScreenHeight]uint64
	keys  uint16
	sound uint8

	cpu    *CPU
	rom    *ROM
	dirty  bool
	frames uint64
}

func NewBus(quirks Quirks) *Bus {
	b := &Bus{}
	b.cpu = NewCPU(b, quirks)
	b.installFont()
	return b
}

// LoadROM places the program at ProgramStart and resets the machine.
func (b *Bus) LoadROM(rom *ROM) {
	b.rom = rom
	b.Reset()
}

// Reset restores the power-on state with the loaded ROM back in place.
func (b *Bus) Reset() {
	b.ram = [MaxAddress + 1]uint8{}
	b.installFont()
	if b.rom != nil {
		copy(b.ram[ProgramStart:], b.rom.data)
	}
	b.rows = [ScreenHeight]uint64{}
	b.keys = 0
	b.sound = 0
	b.dirty = true
	b.frames = 0
	b.cpu.Reset()
}

func (b *Bus) installFont() {
	copy(b.ram[:], font[:])
}

// Step runs one CPU step.
func (b *Bus) Step() error {
	return b.cpu.Step()
}

// TickFrame runs the fixed-rate frame logic. The sound level loaded by FX18
// counts down one per frame like the buzzer timer on real hosts, the tone
// stops when it reaches zero.
func (b *Bus) TickFrame() {
	b.cpu.TickFrame()
	if b.sound > 0 {
		b.sound--
	}
	b.frames++
}

// SetKeys replaces the keypad bitmask, bit i set while key i is held down.
func (b *Bus) SetKeys(keys uint16) {
	b.keys = keys
}

// Sound returns the remaining sound frames, zero means silence.
func (b *Bus) Sound() uint8 {
	return b.sound
}

// TakeRedraw reports whether the screen changed since the last call.
func (b *Bus) TakeRedraw() bool {
	dirty := b.dirty
	b.dirty = false
	return dirty
}

func (b *Bus) ReadRAM(addr uint16) uint8 {
	return b.ram[addr&MaxAddress]
}

func (b *Bus) WriteRAM(addr uint16, data uint8) {
	b.ram[addr&MaxAddress] = data
}

func (b *Bus) PixelRow(y uint8) uint64 {
	return b.rows[y]
}

func (b *Bus) SetPixelRow(y uint8, row uint64) {
	b.rows[y] = row
}

func (b *Bus) Keys() uint16 {
	return b.keys
}

func (b *Bus) SetSound(level uint8) {
	b.sound = level
}

func (b *Bus) Redraw() {
	b.dirty = true
}

// DebugInfo is a snapshot of the CPU state for the UI overlay.
type DebugInfo struct {
	PC     uint16
	I      uint16
	SP     uint8
	Delay  uint8
	V      [16]uint8
	Mode   string
	Frames uint64
}

func (b *Bus) DebugInfo() DebugInfo {
	return DebugInfo{
		PC:     b.cpu.pc,
		I:      b.cpu.i,
		SP:     b.cpu.sp,
		Delay:  b.cpu.delay,
		V:      b.cpu.v,
		Mode:   b.cpu.state.mode.String(),
		Frames: b.frames,
	}
}
