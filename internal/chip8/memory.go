package chip8

const addrMask = MemorySize - 1

// Read returns the byte at addr. Addresses wrap to 12 bits.
func (m *Machine) Read(addr uint16) byte {
	return m.Memory[addr&addrMask]
}

// Write stores v at addr unless addr falls inside the font table, which
// only the loader may populate. Addresses wrap to 12 bits.
func (m *Machine) Write(addr uint16, v byte) {
	a := addr & addrMask
	if a < FontBase+FontSize {
		return
	}
	m.Memory[a] = v
}

// Peek16 reads the big-endian word at addr without touching PC.
func (m *Machine) Peek16(addr uint16) uint16 {
	return uint16(m.Read(addr))<<8 | uint16(m.Read(addr+1))
}
