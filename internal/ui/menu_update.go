package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func (a *App) updateMenu() {
	switch a.menuMode {
	case "keys":
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
			inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			a.menuMode = ""
		}
	case "rom":
		a.updateROMMenu()
	}
}

func (a *App) openROMMenu() {
	a.romList = findROMs(a.cfg.ROMsDir)
	a.romSel = 0
	a.romOff = 0
	a.menuMode = "rom"
}

// findROMs lists .ch8 and .c8 files under dir, sorted by path.
func findROMs(dir string) []string {
	var out []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".ch8", ".c8":
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out
}

func (a *App) romRows() int {
	rows := (a.h - romListY) / 14
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a *App) updateROMMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = ""
		return
	}
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.menuMode = ""
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	maxRows := a.romRows()
	if a.romSel < a.romOff {
		a.romOff = a.romSel
	}
	if a.romSel >= a.romOff+maxRows {
		a.romOff = a.romSel - maxRows + 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		path := a.romList[a.romSel]
		if err := a.m.LoadROMFromFile(path); err != nil {
			a.toast("ROM load failed: " + err.Error())
		} else {
			a.fault = nil
			a.slot = nil
			a.updateTitle()
			a.toast("Loaded ROM: " + filepath.Base(path))
		}
		a.menuMode = ""
	}
}
