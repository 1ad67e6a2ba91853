package chip8

// Quirks selects between behaviors that historical interpreters disagree on.
type Quirks struct {
	LogicResetsVF     bool // 8XY1/8XY2/8XY3 clear VF
	ShiftUsesVY       bool // 8XY6/8XYE shift VY into VX instead of shifting VX in place
	MemoryIncrementsI bool // FX55/FX65 leave I at I+X+1
	ClipSprites       bool // DXYN clips at the screen edges instead of wrapping
	JumpUsesVX        bool // BXNN jumps to VX+XNN instead of V0+NNN

	// LegacyKeyUpSkip makes EXA1 skip when the key IS pressed, matching
	// interpreters that share one code path for EX9E and EXA1.
	LegacyKeyUpSkip bool
}

// DefaultQuirks matches the original COSMAC VIP behavior for the logic,
// shift and load/store instructions, with sprite clipping.
func DefaultQuirks() Quirks {
	return Quirks{
		LogicResetsVF:     true,
		ShiftUsesVY:       true,
		MemoryIncrementsI: true,
		ClipSprites:       true,
	}
}

// ModernQuirks matches CHIP-48/SUPER-CHIP era interpreters that most
// later games were written against.
func ModernQuirks() Quirks {
	return Quirks{
		ClipSprites: true,
		JumpUsesVX:  true,
	}
}

// QuirksByName resolves a preset name used by the CLI.
func QuirksByName(name string) (Quirks, bool) {
	switch name {
	case "", "vip", "default":
		return DefaultQuirks(), true
	case "modern", "schip":
		return ModernQuirks(), true
	case "legacy":
		q := DefaultQuirks()
		q.LegacyKeyUpSkip = true
		return q, true
	}
	return Quirks{}, false
}
