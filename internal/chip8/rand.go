package chip8

const (
	lfsrSeed = 0xF00F
	lfsrTaps = 0xB400
)

// lfsr is a 16-bit Galois linear feedback shift register. The same seed
// always produces the same byte sequence, which keeps ROM runs reproducible.
type lfsr uint16

// next shifts the register once and returns its low byte.
func (r *lfsr) next() uint8 {
	lsb := *r&0x1 > 0
	*r >>= 1
	if lsb {
		*r ^= lfsrTaps
	}
	return uint8(*r)
}
