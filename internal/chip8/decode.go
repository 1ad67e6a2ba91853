package chip8

// Instruction is one decoded opcode with its operand fields pre-extracted.
type Instruction struct {
	Opcode uint16
	NNN    uint16 // low 12 bits
	NN     uint8  // low 8 bits
	N      uint8  // low 4 bits
	X      uint8  // bits 8-11
	Y      uint8  // bits 4-7
}

// Decode splits the big-endian word hi:lo into its fields.
func Decode(hi, lo byte) Instruction {
	op := uint16(hi)<<8 | uint16(lo)
	return DecodeWord(op)
}

// DecodeWord splits an already combined opcode into its fields.
func DecodeWord(op uint16) Instruction {
	return Instruction{
		Opcode: op,
		NNN:    op & 0x0FFF,
		NN:     uint8(op & 0x00FF),
		N:      uint8(op & 0x000F),
		X:      uint8(op>>8) & 0x0F,
		Y:      uint8(op>>4) & 0x0F,
	}
}

// Family is the high nibble used for first-level dispatch.
func (in Instruction) Family() uint8 { return uint8(in.Opcode >> 12) }

// IsDraw reports whether the instruction is a DXYN sprite draw.
func (in Instruction) IsDraw() bool { return in.Family() == 0xD }

// fetch reads the instruction at PC and advances PC past it. The advance
// happens before execution so jumps and calls simply overwrite it.
func (m *Machine) fetch() (Instruction, error) {
	pc := m.PC
	if pc > MemorySize-2 {
		return Instruction{}, &Fault{PC: pc, Err: ErrPCOutOfRange}
	}
	in := Decode(m.Memory[pc], m.Memory[pc+1])
	m.PC = pc + 2
	return in, nil
}
