package ui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/keymap"
)

const romListY = 40

// keypadGrid is the physical key layout, row by row.
var keypadGrid = [4][4]int{
	{0x1, 0x2, 0x3, 0xC},
	{0x4, 0x5, 0x6, 0xD},
	{0x7, 0x8, 0x9, 0xE},
	{0xA, 0x0, 0xB, 0xF},
}

var shade = color.RGBA{0, 0, 0, 192}

func (a *App) dim(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(a.w), float32(a.h), shade, false)
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	a.dim(screen)
	rows := []string{"Keypad        Keyboard"}
	for _, row := range keypadGrid {
		var pad, host []string
		for _, k := range row {
			pad = append(pad, keymap.Label(k))
			host = append(host, strings.ToUpper(string(keymap.Host[k])))
		}
		rows = append(rows, strings.Join(pad, " ")+"       "+strings.Join(host, " "))
	}
	rows = append(rows, "",
		"Space: Pause/Resume",
		"N: Step frame (when paused)",
		"=: Reset",
		"Up/Down: Volume",
		"F5: Save snapshot  F9: Load snapshot",
		"F12: Screenshot",
		"F2: Switch ROM",
		"Esc: Quit",
		"",
		"Enter/Esc/F1: Close",
	)
	for i, s := range rows {
		ebitenutil.DebugPrintAt(screen, s, 10, 10+i*14)
	}
	if a.tone != nil {
		ebitenutil.DebugPrintAt(screen, volumeLabel(a.tone.Volume()), 10, 10+len(rows)*14)
	}
}

func (a *App) drawROMMenu(screen *ebiten.Image) {
	a.dim(screen)
	ebitenutil.DebugPrintAt(screen, "Select ROM (Enter to load, Backspace/Esc to return)", 10, 10)
	ebitenutil.DebugPrintAt(screen, "Dir: "+a.cfg.ROMsDir, 10, 24)
	if len(a.romList) == 0 {
		ebitenutil.DebugPrintAt(screen, "No ROMs found", 10, romListY)
		return
	}
	maxRows := a.romRows()
	end := a.romOff + maxRows
	if end > len(a.romList) {
		end = len(a.romList)
	}
	for i, p := range a.romList[a.romOff:end] {
		prefix := "  "
		if a.romOff+i == a.romSel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+filepath.Base(p), 10, romListY+i*14)
	}
	// scroll indicators
	if a.romOff > 0 {
		ebitenutil.DebugPrintAt(screen, "^", 2, romListY)
	}
	if end < len(a.romList) {
		ebitenutil.DebugPrintAt(screen, "v", 2, romListY+(maxRows-1)*14)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", a.romSel+1, len(a.romList)), a.w-60, 10)
}
