package term

import (
	"strings"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
)

// Each text row covers two display rows.
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// Render draws the display as DisplayHeight/2 lines of half-block
// characters, each line ending in "\r\n" for raw-mode terminals.
func Render(cells *[chip8.DisplaySize]bool) string {
	var sb strings.Builder
	sb.Grow(chip8.DisplaySize * 2)
	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := 0; x < chip8.DisplayWidth; x++ {
			i := 0
			if cells[y*chip8.DisplayWidth+x] {
				i |= 1
			}
			if cells[(y+1)*chip8.DisplayWidth+x] {
				i |= 2
			}
			sb.WriteString(halfBlocks[i])
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
