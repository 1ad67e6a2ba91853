// Package term runs the emulator inside a terminal: raw-mode keyboard
// input, half-block graphics and an oto beeper.
package term

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"time"

	xterm "golang.org/x/term"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/audio"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/emu"
)

// Config controls the terminal frontend.
type Config struct {
	HoldFrames int  // frames a key stays down after its last press
	Muted      bool // do not open an audio device
	Audio      audio.Config
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.HoldFrames <= 0 {
		c.HoldFrames = 8
	}
	c.Audio.Channels = 2
	c.Audio.Defaults()
}

// Frontend implements emu.Display on an ANSI terminal.
type Frontend struct {
	cfg     Config
	m       *emu.Machine
	out     *bufio.Writer
	keys    *Keys
	tone    *audio.Tone
	speaker *audio.OtoSpeaker
	status  string
}

func New(cfg Config, m *emu.Machine, out io.Writer) *Frontend {
	cfg.Defaults()
	f := &Frontend{
		cfg:  cfg,
		m:    m,
		out:  bufio.NewWriter(out),
		keys: NewKeys(cfg.HoldFrames),
	}
	m.AttachDisplay(f)
	return f
}

// Present implements emu.Display.
func (f *Frontend) Present(_ *image.RGBA, cells *[chip8.DisplaySize]bool) {
	f.out.WriteString("\x1b[H")
	f.out.WriteString(Render(cells))
	fmt.Fprintf(f.out, "\x1b[K%s\r\n", f.status)
	f.out.Flush()
}

// Apply feeds decoded input to the machine. It reports false once the user
// asked to quit.
func (f *Frontend) Apply(events []Event) bool {
	for _, ev := range events {
		if ev.Key >= 0 {
			f.keys.Press(ev.Key)
			continue
		}
		switch ev.Action {
		case Quit:
			f.m.Halt()
			return false
		case Pause:
			if f.m.TogglePause() {
				f.setStatus("paused")
			} else {
				f.setStatus("")
			}
		case Reset:
			if err := f.m.Reset(); err != nil {
				f.setStatus("reset failed: " + err.Error())
			} else {
				f.setStatus("")
			}
		case StepFrame:
			if err := f.m.StepFrameWhilePaused(); err != nil {
				f.setStatus(err.Error())
			}
		case VolumeUp, VolumeDown:
			if f.tone != nil {
				d := audio.VolumeStep
				if ev.Action == VolumeDown {
					d = -d
				}
				f.setStatus(fmt.Sprintf("volume %d", f.tone.AdjustVolume(d)))
			}
		}
	}
	return true
}

func (f *Frontend) setStatus(s string) {
	f.status = s
	f.Present(nil, &f.m.Core().Display)
}

// readInput copies stdin into ch until it fails. A blocked read cannot be
// interrupted, so the goroutine is left behind when the frontend exits.
func readInput(r io.Reader, ch chan<- []byte) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			ch <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			close(ch)
			return
		}
	}
}

// Run puts stdin into raw mode and drives the machine at 60 frames per
// second until the user quits, ctx is cancelled or the machine halts.
func (f *Frontend) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if xterm.IsTerminal(fd) {
		old, err := xterm.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("term: raw mode: %w", err)
		}
		defer xterm.Restore(fd, old)
	}

	if !f.cfg.Muted {
		sp, err := audio.NewOtoSpeaker(f.cfg.Audio)
		if err != nil {
			log.Printf("term: audio disabled: %v", err)
		} else {
			f.speaker = sp
			f.tone = sp.Tone
			f.m.AttachSpeaker(sp)
			defer sp.Close()
		}
	}

	// clear screen, hide cursor; restore cursor on the way out
	f.out.WriteString("\x1b[2J\x1b[?25l")
	defer func() {
		f.out.WriteString("\x1b[?25h\r\n")
		f.out.Flush()
	}()
	f.Present(nil, &f.m.Core().Display)

	input := make(chan []byte, 16)
	go readInput(os.Stdin, input)

	ticker := time.NewTicker(time.Second / chip8.TimerHz)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			f.m.Halt()
			return ctx.Err()
		case <-ticker.C:
		}

	drain:
		for {
			select {
			case b, ok := <-input:
				if !ok {
					f.m.Halt()
					return nil
				}
				if !f.Apply(Decode(b)) {
					return nil
				}
			default:
				break drain
			}
		}

		down := f.keys.Frame()
		for k, d := range down {
			f.m.SetKey(k, d)
		}
		if err := f.m.StepFrame(); err != nil {
			return err
		}
		if f.m.State() == chip8.Halted {
			return nil
		}
	}
}
