package chip8

// glyphStride is the spacing of glyphs in the font table. FX29 computes
// glyph addresses as digit * glyphStride from the start of memory.
const glyphStride = 8

// font holds the sprites for the hex digits 0..F, five rows each padded to
// the glyph stride. The bus copies it to address 0 on reset.
var font = [16 * glyphStride]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, 0x00, 0x00, 0x00, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, 0x00, 0x00, 0x00, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, 0x00, 0x00, 0x00, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, 0x00, 0x00, 0x00, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, 0x00, 0x00, 0x00, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, 0x00, 0x00, 0x00, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, 0x00, 0x00, 0x00, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, 0x00, 0x00, 0x00, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, 0x00, 0x00, 0x00, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, 0x00, 0x00, 0x00, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, 0x00, 0x00, 0x00, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, 0x00, 0x00, 0x00, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, 0x00, 0x00, 0x00, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, 0x00, 0x00, 0x00, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, 0x00, 0x00, 0x00, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, 0x00, 0x00, 0x00, // F
}
