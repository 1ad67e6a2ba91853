package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/audio"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/emu"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/rom"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/script"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/term"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/ui"
	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/video"
)

var (
	version = "0.3.0"
	commit  = ""
	date    = ""
)

type CLIFlags struct {
	ROMPath  string
	Scale    int
	Title    string
	Trace    bool
	IPS      int
	Seed     uint64
	FG, BG   string
	Outlines bool
	ROMsDir  string
	Version  bool

	// audio
	Freq   int
	Rate   int
	Volume int
	Mute   bool

	// quirks: a preset plus per-quirk overrides
	QuirkSet    string
	VFReset     bool
	ShiftVY     bool
	MemIncr     bool
	Clip        bool
	JumpVX      bool
	LegacyKeyUp bool

	// terminal
	Term bool
	Hold int

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	PNGScale int
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
	WAVOut   string
	Script   string
}

func parseFlags() (CLIFlags, map[string]bool) {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.ch8); may also be given as the first argument")
	flag.IntVar(&f.Scale, "scale", 20, "window scale")
	flag.StringVar(&f.Title, "title", "chip8emu", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "log every executed instruction")
	flag.IntVar(&f.IPS, "ips", 600, "instructions per second")
	flag.Uint64Var(&f.Seed, "seed", 0, "random seed for CXNN (0 = random)")
	flag.StringVar(&f.FG, "fg", "FFFFFF", "foreground color (hex RGB)")
	flag.StringVar(&f.BG, "bg", "000000", "background color (hex RGB)")
	flag.BoolVar(&f.Outlines, "outlines", true, "draw outlines around lit pixels")
	flag.StringVar(&f.ROMsDir, "romsdir", "roms", "directory listed by the ROM browser (F2)")
	flag.BoolVar(&f.Version, "version", false, "print version and exit")

	flag.IntVar(&f.Freq, "freq", 440, "beep frequency in Hz")
	flag.IntVar(&f.Rate, "rate", 44100, "audio sample rate")
	flag.IntVar(&f.Volume, "volume", 3000, "beep amplitude (0-32767)")
	flag.BoolVar(&f.Mute, "mute", false, "disable audio output")

	flag.StringVar(&f.QuirkSet, "quirks", "vip", "quirk preset: vip, modern or legacy")
	flag.BoolVar(&f.VFReset, "vfreset", true, "8XY1/8XY2/8XY3 reset VF")
	flag.BoolVar(&f.ShiftVY, "shiftvy", true, "8XY6/8XYE shift VY into VX")
	flag.BoolVar(&f.MemIncr, "memincr", true, "FX55/FX65 advance I")
	flag.BoolVar(&f.Clip, "clip", true, "clip sprites at the screen edge instead of wrapping")
	flag.BoolVar(&f.JumpVX, "jumpvx", false, "BXNN jumps to XNN+VX")
	flag.BoolVar(&f.LegacyKeyUp, "legacykeyup", false, "EXA1 skips when the key is pressed (buggy interpreters)")

	flag.BoolVar(&f.Term, "term", false, "run in the terminal instead of a window")
	flag.IntVar(&f.Hold, "hold", 8, "terminal mode: frames a key stays down after a press")

	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last frame to PNG at path")
	flag.IntVar(&f.PNGScale, "pngscale", 1, "scale factor for -outpng")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.StringVar(&f.WAVOut, "wav", "", "headless mode: record the beeper to a WAV file")
	flag.StringVar(&f.Script, "script", "", "headless mode: Lua script with an on_frame(n) hook")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: chip8emu [options] <rom.ch8>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if f.ROMPath == "" && flag.NArg() > 0 {
		f.ROMPath = flag.Arg(0)
	}
	set := map[string]bool{}
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set
}

// quirksFromFlags starts from the named preset and applies only the
// per-quirk flags given on the command line.
func quirksFromFlags(f CLIFlags, set map[string]bool) (chip8.Quirks, error) {
	q, ok := chip8.QuirksByName(f.QuirkSet)
	if !ok {
		return q, fmt.Errorf("unknown quirk preset %q", f.QuirkSet)
	}
	overrides := []struct {
		name string
		dst  *bool
		val  bool
	}{
		{"vfreset", &q.LogicResetsVF, f.VFReset},
		{"shiftvy", &q.ShiftUsesVY, f.ShiftVY},
		{"memincr", &q.MemoryIncrementsI, f.MemIncr},
		{"clip", &q.ClipSprites, f.Clip},
		{"jumpvx", &q.JumpUsesVX, f.JumpVX},
		{"legacykeyup", &q.LegacyKeyUpSkip, f.LegacyKeyUp},
	}
	for _, o := range overrides {
		if set[o.name] {
			*o.dst = o.val
		}
	}
	return q, nil
}

func paletteFromFlags(f CLIFlags) (video.Palette, error) {
	fg, err := video.ParseColor(f.FG)
	if err != nil {
		return video.Palette{}, err
	}
	bg, err := video.ParseColor(f.BG)
	if err != nil {
		return video.Palette{}, err
	}
	return video.Palette{FG: fg, BG: bg}, nil
}

func runHeadless(m *emu.Machine, f CLIFlags, acfg audio.Config) error {
	frames := f.Frames
	if frames <= 0 {
		frames = 1
	}

	var rec *audio.Recorder
	if f.WAVOut != "" {
		rec = audio.NewRecorder(acfg)
		m.AttachSpeaker(rec)
	}
	var sc *script.Script
	if f.Script != "" {
		s, err := script.Load(f.Script, m)
		if err != nil {
			return err
		}
		defer s.Close()
		sc = s
	}

	start := time.Now()
	ran := 0
	for ran < frames && m.State() != chip8.Halted {
		if sc != nil {
			if err := sc.Frame(uint64(ran)); err != nil {
				return err
			}
		}
		if err := m.StepFrame(); err != nil {
			return err
		}
		ran++
		if sc != nil && sc.Quit() {
			break
		}
	}
	dur := time.Since(start)

	crc := video.Checksum(m.Frame())
	fps := float64(ran) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		ran, dur.Truncate(time.Millisecond), fps, crc)

	if f.PNGOut != "" {
		img := video.Compose(&m.Core().Display, video.Options{
			Scale:    f.PNGScale,
			Outlines: f.Outlines,
			Palette:  m.Config().Palette,
		})
		if err := video.SavePNG(f.PNGOut, img); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", f.PNGOut)
	}
	if rec != nil {
		if err := rec.Save(f.WAVOut); err != nil {
			return err
		}
		log.Printf("wrote %s (%d samples)", f.WAVOut, rec.Samples())
	}

	if f.Expect != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(f.Expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func main() {
	f, set := parseFlags()
	if f.Version {
		fmt.Printf("chip8emu version: %s\n", buildinfo.Version(version, commit, date))
		return
	}
	if f.ROMPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	quirks, err := quirksFromFlags(f, set)
	if err != nil {
		log.Fatal(err)
	}
	pal, err := paletteFromFlags(f)
	if err != nil {
		log.Fatal(err)
	}

	r, err := rom.ReadFile(f.ROMPath)
	if err != nil {
		log.Fatalf("load rom: %v", err)
	}
	log.Printf("ROM: %s", r.Info())

	m := emu.New(emu.Config{
		IPS:     f.IPS,
		Trace:   f.Trace,
		Quirks:  quirks,
		Seed:    f.Seed,
		Palette: pal,
	})
	if err := m.LoadROM(r); err != nil {
		log.Fatalf("load rom: %v", err)
	}

	acfg := audio.Config{SampleRate: f.Rate, Freq: f.Freq, Volume: f.Volume}

	switch {
	case f.Headless:
		if err := runHeadless(m, f, acfg); err != nil {
			log.Fatal(err)
		}
	case f.Term:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		fe := term.New(term.Config{HoldFrames: f.Hold, Muted: f.Mute, Audio: acfg}, m, os.Stdout)
		if err := fe.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			stop()
			log.Fatal(err)
		}
	default:
		app := ui.NewApp(ui.Config{
			Title:    f.Title,
			Scale:    f.Scale,
			Outlines: f.Outlines,
			Muted:    f.Mute,
			ROMsDir:  f.ROMsDir,
			Audio:    acfg,
		}, m)
		if err := app.Run(); err != nil {
			log.Fatal(err)
		}
	}
}
