package chip8

// opDraw implements DXYN: XOR an 8xN sprite read from memory at I onto the
// display at (VX, VY). VF is set when any lit cell is turned off.
func (m *Machine) opDraw(in Instruction) error {
	sx := int(m.V[in.X]) % DisplayWidth
	sy := int(m.V[in.Y]) % DisplayHeight
	clip := m.cfg.Quirks.ClipSprites

	m.V[FlagRegister] = 0
	for r := 0; r < int(in.N); r++ {
		y := sy + r
		if y >= DisplayHeight {
			if clip {
				break
			}
			y %= DisplayHeight
		}
		row := m.Read(m.I + uint16(r))
		for c := 0; c < 8; c++ {
			x := sx + c
			if x >= DisplayWidth {
				if clip {
					break
				}
				x %= DisplayWidth
			}
			if row&(0x80>>c) == 0 {
				continue
			}
			cell := &m.Display[y*DisplayWidth+x]
			if *cell {
				m.V[FlagRegister] = 1
			}
			*cell = !*cell
		}
	}
	m.DrawPending = true
	return nil
}
