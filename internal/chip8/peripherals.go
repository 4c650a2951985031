package chip8

const (
	// ScreenWidth is the display width in pixels. One row fits a uint64.
	ScreenWidth = 64
	// ScreenHeight is the display height in pixels.
	ScreenHeight = 32
	// ProgramStart is the address where loaded programs begin execution.
	ProgramStart = 0x200
	// MaxAddress is the highest valid address of the 4 KB memory space.
	MaxAddress = 0xFFF
)

// Peripherals is everything the CPU reaches outside itself for: RAM, the
// pixel rows of the display, the keypad bitmask and the sound flag. The host
// owns all of it; the CPU only holds its registers, stack and timers.
//
// Addresses are a 16-bit space of which only the low 12 bits are meaningful,
// the host masks. In a pixel row bit 0 is the leftmost pixel. In the key
// bitmask bit i is set while key i is held down.
type Peripherals interface {
	ReadRAM(addr uint16) uint8
	WriteRAM(addr uint16, data uint8)
	PixelRow(y uint8) uint64
	SetPixelRow(y uint8, row uint64)
	Keys() uint16
	SetSound(level uint8)
}

// Redrawer is implemented by peripherals that want a notification after
// every operation that changed the screen.
type Redrawer interface {
	Redraw()
}
