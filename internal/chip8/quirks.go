package chip8

// Quirks selects between the behavioral variants that CHIP-8 interpreters
// historically disagree on. The set is fixed when the CPU is created.
type Quirks struct {
	// 8XY6/8XYE shift VY instead of VX
	ShiftVY bool
	// 8XY1/8XY2/8XY3 force VF to zero
	ResetVF bool
	// FX55/FX65/FX33 leave I pointing past the transferred bytes
	IncrementI bool
	// DXYN/00E0 stall the CPU until the next frame tick
	DisplayWait bool
	// sprites clip at the screen edge instead of wrapping around
	ClipSprites bool
}

// VIPQuirks returns the behavior of the original COSMAC VIP interpreter.
func VIPQuirks() Quirks {
	return Quirks{
		ShiftVY:     true,
		ResetVF:     true,
		IncrementI:  true,
		DisplayWait: true,
		ClipSprites: true,
	}
}

// SCHIPQuirks returns the behavior most SUPER-CHIP era ROMs assume.
func SCHIPQuirks() Quirks {
	return Quirks{}
}
