package ui

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	c8audio "github.com/FabianRolfMatthiasNoll/chip8emu/internal/audio"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/emu"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/keymap"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/video"
)

type App struct {
	cfg   Config
	m     *emu.Machine
	tex   *ebiten.Image
	frame *image.RGBA
	dirty bool
	w, h  int

	audioCtx    *audio.Context
	audioPlayer *audio.Player
	tone        *c8audio.Tone

	slot  []byte // in-memory snapshot (F5/F9)
	fault error

	// overlay/menu
	menuMode string // "", "keys", "rom"
	romList  []string
	romSel   int
	romOff   int

	toastMsg   string
	toastUntil time.Time
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	a := &App{
		cfg: cfg,
		m:   m,
		w:   chip8.DisplayWidth * cfg.Scale,
		h:   chip8.DisplayHeight * cfg.Scale,
	}
	ebiten.SetWindowSize(a.w, a.h)
	a.updateTitle()
	m.AttachDisplay(a)
	a.Present(m.Frame(), &m.Core().Display)
	a.startAudio()
	return a
}

func (a *App) Run() error {
	defer func() {
		if a.audioPlayer != nil {
			a.audioPlayer.Close()
		}
	}()
	return ebiten.RunGame(a)
}

// Present implements emu.Display.
func (a *App) Present(_ *image.RGBA, cells *[chip8.DisplaySize]bool) {
	a.frame = video.Compose(cells, video.Options{
		Scale:    a.cfg.Scale,
		Outlines: a.cfg.Outlines,
		Palette:  a.m.Config().Palette,
	})
	a.dirty = true
}

func (a *App) Update() error {
	// Escape quits; inside a menu it closes the menu instead.
	if a.menuMode == "" && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.m.Halt()
		return ebiten.Termination
	}

	if a.menuMode != "" {
		a.updateMenu()
		a.m.Core().ReleaseAllKeys()
		return a.step()
	}

	// Keyboard → keypad levels
	for k, r := range keymap.Host {
		a.m.SetKey(k, ebiten.IsKeyPressed(hostKeys[r]))
	}

	// Pause toggle (Space)
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if a.m.TogglePause() {
			a.toast("Paused")
		} else {
			a.toast("Resumed")
		}
	}

	// Reset (=) reloads the ROM
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		if err := a.m.Reset(); err != nil {
			a.toast("Reset failed: " + err.Error())
		} else {
			a.fault = nil
			a.toast("Reset")
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		a.changeVolume(c8audio.VolumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.changeVolume(-c8audio.VolumeStep)
	}

	// Frame-step when paused (N)
	if a.m.State() == chip8.Paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := a.m.StepFrameWhilePaused(); err != nil {
			a.onFault(err)
		}
	}

	// Snapshot slot
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if s := a.m.SaveState(); s != nil {
			a.slot = s
			a.toast("Saved snapshot")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := a.m.LoadState(a.slot); err != nil {
			a.toast("Load failed: " + err.Error())
		} else {
			a.fault = nil
			a.toast("Loaded snapshot")
		}
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Saved " + name)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.menuMode = "keys"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		a.openROMMenu()
	}

	return a.step()
}

func (a *App) step() error {
	if err := a.m.StepFrame(); err != nil {
		a.onFault(err)
	}
	return nil
}

// onFault keeps the window open on the halted machine so the last frame
// stays visible; '=' restarts the program.
func (a *App) onFault(err error) {
	a.fault = err
	log.Printf("ui: %v", err)
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(a.w, a.h)
	}
	if a.dirty && a.frame != nil {
		a.tex.WritePixels(a.frame.Pix)
		a.dirty = false
	}
	screen.DrawImage(a.tex, nil)

	switch a.menuMode {
	case "keys":
		a.drawKeysMenu(screen)
	case "rom":
		a.drawROMMenu(screen)
	default:
		a.drawStatus(screen)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return a.w, a.h }

func (a *App) updateTitle() {
	title := a.cfg.Title
	if r := a.m.ROM(); r != nil {
		title = a.cfg.Title + " - [" + r.Name + "]"
	}
	ebiten.SetWindowTitle(title)
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) drawStatus(screen *ebiten.Image) {
	y := 4
	if a.fault != nil {
		ebitenutil.DebugPrintAt(screen, "HALTED: "+a.fault.Error(), 4, y)
		y += 14
	} else if a.m.State() == chip8.Paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED  "+a.m.Status(), 4, y)
		y += 14
	}
	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		ebitenutil.DebugPrintAt(screen, a.toastMsg, 4, y)
	}
}

func (a *App) saveScreenshot() (string, error) {
	img := video.Compose(&a.m.Core().Display, video.Options{
		Scale:    a.cfg.Scale,
		Outlines: a.cfg.Outlines,
		Palette:  a.m.Config().Palette,
	})
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	return name, video.SavePNG(name, img)
}
