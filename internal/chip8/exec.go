package chip8

// handler applies one opcode family. Returned errors are wrapped in a
// Fault by Step.
type handler func(m *Machine, in Instruction) error

// families maps the high nibble of an opcode to its handler.
var families = [16]handler{
	0x0: (*Machine).opSystem,
	0x1: (*Machine).opJump,
	0x2: (*Machine).opCall,
	0x3: (*Machine).opSkipEqImm,
	0x4: (*Machine).opSkipNeImm,
	0x5: (*Machine).opSkipEqReg,
	0x6: (*Machine).opLoadImm,
	0x7: (*Machine).opAddImm,
	0x8: (*Machine).opALU,
	0x9: (*Machine).opSkipNeReg,
	0xA: (*Machine).opLoadIndex,
	0xB: (*Machine).opJumpOffset,
	0xC: (*Machine).opRandom,
	0xD: (*Machine).opDraw,
	0xE: (*Machine).opKeySkip,
	0xF: (*Machine).opMisc,
}

// Step fetches, decodes and executes a single instruction and returns it.
// A machine that is not Running executes nothing. On a fault the machine
// is Halted and the returned error is a *Fault.
func (m *Machine) Step() (Instruction, error) {
	if m.State != Running {
		return Instruction{}, nil
	}
	pc := m.PC
	in, err := m.fetch()
	if err != nil {
		m.State = Halted
		return in, err
	}
	if err := m.Execute(in); err != nil {
		m.State = Halted
		return in, &Fault{PC: pc, Opcode: in.Opcode, Err: err}
	}
	return in, nil
}

// Execute applies in to the machine. PC must already point past the
// instruction. Unknown opcodes are ignored.
func (m *Machine) Execute(in Instruction) error {
	return families[in.Family()](m, in)
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.PC += 2
	}
}

func (m *Machine) opSystem(in Instruction) error {
	switch in.Opcode {
	case 0x00E0: // CLS
		m.Display = [DisplaySize]bool{}
		m.DrawPending = true
	case 0x00EE: // RET
		if m.SP == 0 {
			return ErrStackUnderflow
		}
		m.SP--
		m.PC = m.Stack[m.SP]
	}
	// 0NNN machine-code calls are not supported.
	return nil
}

func (m *Machine) opJump(in Instruction) error {
	m.PC = in.NNN
	return nil
}

func (m *Machine) opCall(in Instruction) error {
	if int(m.SP) >= StackDepth {
		return ErrStackOverflow
	}
	m.Stack[m.SP] = m.PC
	m.SP++
	m.PC = in.NNN
	return nil
}

func (m *Machine) opSkipEqImm(in Instruction) error {
	m.skipIf(m.V[in.X] == in.NN)
	return nil
}

func (m *Machine) opSkipNeImm(in Instruction) error {
	m.skipIf(m.V[in.X] != in.NN)
	return nil
}

func (m *Machine) opSkipEqReg(in Instruction) error {
	if in.N == 0 {
		m.skipIf(m.V[in.X] == m.V[in.Y])
	}
	return nil
}

func (m *Machine) opLoadImm(in Instruction) error {
	m.V[in.X] = in.NN
	return nil
}

func (m *Machine) opAddImm(in Instruction) error {
	m.V[in.X] += in.NN
	return nil
}

func (m *Machine) opALU(in Instruction) error {
	x, y := in.X, in.Y
	q := m.cfg.Quirks
	switch in.N {
	case 0x0:
		m.V[x] = m.V[y]
	case 0x1:
		m.V[x] |= m.V[y]
		if q.LogicResetsVF {
			m.V[FlagRegister] = 0
		}
	case 0x2:
		m.V[x] &= m.V[y]
		if q.LogicResetsVF {
			m.V[FlagRegister] = 0
		}
	case 0x3:
		m.V[x] ^= m.V[y]
		if q.LogicResetsVF {
			m.V[FlagRegister] = 0
		}
	case 0x4:
		sum := uint16(m.V[x]) + uint16(m.V[y])
		m.V[x] = byte(sum)
		m.V[FlagRegister] = boolByte(sum > 0xFF)
	case 0x5:
		noBorrow := m.V[x] >= m.V[y]
		m.V[x] -= m.V[y]
		m.V[FlagRegister] = boolByte(noBorrow)
	case 0x6:
		src := m.V[x]
		if q.ShiftUsesVY {
			src = m.V[y]
		}
		m.V[x] = src >> 1
		m.V[FlagRegister] = src & 0x01
	case 0x7:
		noBorrow := m.V[y] >= m.V[x]
		m.V[x] = m.V[y] - m.V[x]
		m.V[FlagRegister] = boolByte(noBorrow)
	case 0xE:
		src := m.V[x]
		if q.ShiftUsesVY {
			src = m.V[y]
		}
		m.V[x] = src << 1
		m.V[FlagRegister] = src >> 7
	}
	return nil
}

func (m *Machine) opSkipNeReg(in Instruction) error {
	if in.N == 0 {
		m.skipIf(m.V[in.X] != m.V[in.Y])
	}
	return nil
}

func (m *Machine) opLoadIndex(in Instruction) error {
	m.I = in.NNN
	return nil
}

func (m *Machine) opJumpOffset(in Instruction) error {
	base := m.V[0]
	if m.cfg.Quirks.JumpUsesVX {
		base = m.V[in.X]
	}
	m.PC = uint16(base) + in.NNN
	return nil
}

func (m *Machine) opRandom(in Instruction) error {
	m.V[in.X] = byte(m.rng.UintN(256)) & in.NN
	return nil
}

func (m *Machine) opKeySkip(in Instruction) error {
	pressed := m.Keypad[m.V[in.X]&0x0F]
	switch in.NN {
	case 0x9E:
		m.skipIf(pressed)
	case 0xA1:
		if m.cfg.Quirks.LegacyKeyUpSkip {
			m.skipIf(pressed)
		} else {
			m.skipIf(!pressed)
		}
	}
	return nil
}

func (m *Machine) opMisc(in Instruction) error {
	x := in.X
	switch in.NN {
	case 0x07:
		m.V[x] = m.DelayTimer
	case 0x0A:
		m.waitKey(x)
	case 0x15:
		m.DelayTimer = m.V[x]
	case 0x18:
		m.SoundTimer = m.V[x]
	case 0x1E:
		m.I += uint16(m.V[x])
	case 0x29:
		m.I = FontBase + uint16(m.V[x])*GlyphBytes
	case 0x33:
		v := m.V[x]
		m.Write(m.I, v/100)
		m.Write(m.I+1, (v/10)%10)
		m.Write(m.I+2, v%10)
	case 0x55:
		for i := uint16(0); i <= uint16(x); i++ {
			m.Write(m.I+i, m.V[i])
		}
		if m.cfg.Quirks.MemoryIncrementsI {
			m.I += uint16(x) + 1
		}
	case 0x65:
		for i := uint16(0); i <= uint16(x); i++ {
			m.V[i] = m.Read(m.I + i)
		}
		if m.cfg.Quirks.MemoryIncrementsI {
			m.I += uint16(x) + 1
		}
	}
	return nil
}

// waitKey implements FX0A. The instruction re-executes (PC rewinds) until
// a key has gone down and come back up; the key index is then stored in VX.
func (m *Machine) waitKey(x uint8) {
	if !m.Wait.Detected {
		for k, down := range m.Keypad {
			if down {
				m.Wait = KeyWait{Detected: true, Key: uint8(k)}
				break
			}
		}
		m.PC -= 2
		return
	}
	if m.Keypad[m.Wait.Key] {
		m.PC -= 2
		return
	}
	m.V[x] = m.Wait.Key
	m.Wait = KeyWait{}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
