package disasm

import (
	"bytes"
	"testing"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		op   uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "SYS 0x123"},
		{0x1228, "JP 0x228"},
		{0x2F00, "CALL 0xF00"},
		{0x3A42, "SE VA, 0x42"},
		{0x4A42, "SNE VA, 0x42"},
		{0x5120, "SE V1, V2"},
		{0x5121, "DW 0x5121"},
		{0x6C0A, "LD VC, 0x0A"},
		{0x7001, "ADD V0, 0x01"},
		{0x8120, "LD V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1, V2"},
		{0x8128, "DW 0x8128"},
		{0x9120, "SNE V1, V2"},
		{0xA22A, "LD I, 0x22A"},
		{0xB300, "JP V0, 0x300"},
		{0xC3FF, "RND V3, 0xFF"},
		{0xD01F, "DRW V0, V1, 15"},
		{0xE59E, "SKP V5"},
		{0xE5A1, "SKNP V5"},
		{0xE500, "DW 0xE500"},
		{0xF30A, "LD V3, K"},
		{0xF233, "LD B, V2"},
		{0xF455, "LD [I], V4"},
		{0xF465, "LD V4, [I]"},
		{0xF4FF, "DW 0xF4FF"},
	}
	for _, tt := range tests {
		got := Format(chip8.DecodeWord(tt.op))
		assert.Equal(t, tt.want, got)
	}
}

func TestDisassemble(t *testing.T) {
	code := []byte{0x60, 0x05, 0x61, 0x0A, 0x80, 0x14, 0xAB}
	lines := Disassemble(code, chip8.ProgramStart)
	assert.Equal(t, 4, len(lines))
	assert.Equal(t, uint16(0x200), lines[0].Addr)
	assert.Equal(t, "LD V0, 0x05", lines[0].Text)
	assert.Equal(t, "ADD V0, V1", lines[2].Text)
	assert.Equal(t, uint16(0x206), lines[3].Addr)
	assert.Equal(t, "DB 0xAB", lines[3].Text)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []byte{0x00, 0xE0}, 0x200)
	assert.NoError(t, err)
	assert.Equal(t, "200: 00E0  CLS\n", buf.String())
}
