package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/video"
)

// findROMs recursively collects .ch8 files under dir.
func findROMs(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".ch8") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// expectedCRC reads an optional sidecar "<rom>.crc" holding the hex CRC32
// of the framebuffer after the run.
func expectedCRC(romPath string) (uint32, bool, error) {
	data, err := os.ReadFile(strings.TrimSuffix(romPath, filepath.Ext(romPath)) + ".crc")
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 16, 32)
	if err != nil {
		return 0, false, fmt.Errorf("bad crc file: %w", err)
	}
	return uint32(v), true, nil
}

// runROM executes a test ROM for a fixed number of frames. It fails on any
// fault and, when a sidecar checksum exists, on a framebuffer mismatch.
func runROM(t *testing.T, romPath string, frames int) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 1
	m := New(cfg)
	if err := m.LoadROMFromFile(romPath); err != nil {
		t.Fatalf("load ROM: %v", err)
	}
	for i := 0; i < frames; i++ {
		if err := m.StepFrame(); err != nil {
			t.Fatalf("%s faulted at frame %d: %v", filepath.Base(romPath), i, err)
		}
	}
	want, ok, err := expectedCRC(romPath)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if got := video.Checksum(m.Frame()); ok && got != want {
		t.Fatalf("%s framebuffer crc got %08x want %08x", filepath.Base(romPath), got, want)
	}
}

// TestROMSuite scans testroms (or ROMS_DIR) and runs every .ch8 found.
func TestROMSuite(t *testing.T) {
	// Opt-in via env to avoid long test runs by default.
	if os.Getenv("RUN_ROMS") == "" {
		t.Skip("set RUN_ROMS=1 and place ROMs under testroms or set ROMS_DIR to run")
	}

	base := os.Getenv("ROMS_DIR")
	if base == "" {
		// Resolve relative to module root (directory containing go.mod)
		var root string
		if _, file, _, ok := runtime.Caller(0); ok {
			dir := filepath.Dir(file)
			for {
				if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
					root = dir
					break
				}
				parent := filepath.Dir(dir)
				if parent == dir {
					break
				}
				dir = parent
			}
		}
		if root == "" {
			root = "."
		}
		base = filepath.Join(root, "testroms")
	}
	if _, err := os.Stat(base); err != nil {
		t.Skipf("ROM dir missing: %s", base)
	}

	roms, err := findROMs(base)
	if err != nil {
		t.Fatalf("scan ROMs: %v", err)
	}
	if len(roms) == 0 {
		t.Skipf("no ROMs found in %s", base)
	}

	frames := 600
	if v := os.Getenv("ROMS_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			frames = n
		}
	}

	for _, r := range roms {
		name := strings.TrimSuffix(filepath.Base(r), filepath.Ext(r))
		t.Run(name, func(t *testing.T) { runROM(t, r, frames) })
	}
}
