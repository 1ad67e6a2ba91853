// Package disasm renders CHIP-8 instructions as Cowgod-style assembly text.
package disasm

import (
	"fmt"
	"io"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
)

// Line is one disassembled instruction word.
type Line struct {
	Addr   uint16
	Opcode uint16
	Text   string
}

func (l Line) String() string {
	return fmt.Sprintf("%03X: %04X  %s", l.Addr, l.Opcode, l.Text)
}

// Format returns the mnemonic for in. Words that are not valid
// instructions are rendered as data.
func Format(in chip8.Instruction) string {
	x, y := in.X, in.Y
	switch in.Family() {
	case 0x0:
		switch in.Opcode {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
		return fmt.Sprintf("SYS 0x%03X", in.NNN)
	case 0x1:
		return fmt.Sprintf("JP 0x%03X", in.NNN)
	case 0x2:
		return fmt.Sprintf("CALL 0x%03X", in.NNN)
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%02X", x, in.NN)
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%02X", x, in.NN)
	case 0x5:
		if in.N == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%02X", x, in.NN)
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%02X", x, in.NN)
	case 0x8:
		if name, ok := aluNames[in.N]; ok {
			return fmt.Sprintf("%s V%X, V%X", name, x, y)
		}
	case 0x9:
		if in.N == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, 0x%03X", in.NNN)
	case 0xB:
		return fmt.Sprintf("JP V0, 0x%03X", in.NNN)
	case 0xC:
		return fmt.Sprintf("RND V%X, 0x%02X", x, in.NN)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, in.N)
	case 0xE:
		switch in.NN {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF:
		if f, ok := miscFormats[in.NN]; ok {
			return fmt.Sprintf(f, x)
		}
	}
	return fmt.Sprintf("DW 0x%04X", in.Opcode)
}

var aluNames = map[uint8]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscFormats = map[uint8]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}

// Disassemble decodes consecutive words of code, assuming the first byte
// sits at address base. A trailing odd byte is emitted as data.
func Disassemble(code []byte, base uint16) []Line {
	lines := make([]Line, 0, (len(code)+1)/2)
	for i := 0; i < len(code); i += 2 {
		addr := base + uint16(i)
		if i+1 >= len(code) {
			lines = append(lines, Line{Addr: addr, Opcode: uint16(code[i]) << 8, Text: fmt.Sprintf("DB 0x%02X", code[i])})
			break
		}
		in := chip8.Decode(code[i], code[i+1])
		lines = append(lines, Line{Addr: addr, Opcode: in.Opcode, Text: Format(in)})
	}
	return lines
}

// Write prints a listing of code to w.
func Write(w io.Writer, code []byte, base uint16) error {
	for _, l := range Disassemble(code, base) {
		if _, err := fmt.Fprintln(w, l.String()); err != nil {
			return err
		}
	}
	return nil
}
