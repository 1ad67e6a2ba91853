package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	c8audio "github.com/FabianRolfMatthiasNoll/chip8emu/internal/audio"
)

// hostKeys maps the runes in keymap.Host to ebiten key codes.
var hostKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

func volumeLabel(v int) string {
	return fmt.Sprintf("Volume %d/%d", v, c8audio.MaxVolume)
}
