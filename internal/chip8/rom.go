package chip8

import (
	"fmt"
	"os"
)

// maxROMSize is the program space between ProgramStart and the end of memory.
const maxROMSize = MaxAddress + 1 - ProgramStart

// ROM is a raw CHIP-8 program image. There is no header format, the file
// content is loaded verbatim at ProgramStart.
type ROM struct {
	data []uint8
}

func NewROM(data []uint8) (*ROM, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("rom is empty")
	}
	if len(data) > maxROMSize {
		return nil, fmt.Errorf("rom is %d bytes, at most %d fit into memory", len(data), maxROMSize)
	}
	return &ROM{data: data}, nil
}

// NewROMFromFile reads a .ch8 file and returns a ROM.
func NewROMFromFile(path string) (*ROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the file: %w", err)
	}
	rom, err := NewROM(data)
	if err != nil {
		return nil, fmt.Errorf("couldn't load %s: %w", path, err)
	}
	return rom, nil
}

func (r ROM) Size() int {
	return len(r.data)
}
