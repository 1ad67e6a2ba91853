package video

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#FF8000", color.RGBA{0xFF, 0x80, 0x00, 0xFF}, true},
		{"0a0b0c", color.RGBA{0x0A, 0x0B, 0x0C, 0xFF}, true},
		{"#FFF", color.RGBA{}, false},
		{"zzzzzz", color.RGBA{}, false},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("%q: err=%v want ok=%v", c.in, err, c.ok)
		}
		if c.ok && got != c.want {
			t.Fatalf("%q: got %v want %v", c.in, got, c.want)
		}
	}
}

func TestRender(t *testing.T) {
	var d [chip8.DisplaySize]bool
	d[0] = true
	d[chip8.DisplayWidth+1] = true
	p := Palette{FG: color.RGBA{1, 2, 3, 255}, BG: color.RGBA{9, 9, 9, 255}}
	img := NewFrame()
	Render(img, &d, p)
	if got := img.RGBAAt(0, 0); got != p.FG {
		t.Fatalf("(0,0) got %v want FG", got)
	}
	if got := img.RGBAAt(1, 1); got != p.FG {
		t.Fatalf("(1,1) got %v want FG", got)
	}
	if got := img.RGBAAt(1, 0); got != p.BG {
		t.Fatalf("(1,0) got %v want BG", got)
	}
}

func TestComposeScaleAndOutline(t *testing.T) {
	var d [chip8.DisplaySize]bool
	d[0] = true
	p := DefaultPalette()

	img := Compose(&d, Options{Scale: 4, Palette: p})
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 256 || h != 128 {
		t.Fatalf("size got %dx%d want 256x128", w, h)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if img.RGBAAt(x, y) != p.FG {
				t.Fatalf("(%d,%d) not lit without outlines", x, y)
			}
		}
	}
	if img.RGBAAt(4, 0) != p.BG {
		t.Fatalf("(4,0) should be background")
	}

	img = Compose(&d, Options{Scale: 4, Outlines: true, Palette: p})
	if img.RGBAAt(0, 0) != p.BG || img.RGBAAt(3, 3) != p.BG {
		t.Fatalf("outline corners should be background")
	}
	if img.RGBAAt(1, 1) != p.FG || img.RGBAAt(2, 2) != p.FG {
		t.Fatalf("outline interior should stay lit")
	}
}

func TestOutlineSkippedAtSmallScale(t *testing.T) {
	var d [chip8.DisplaySize]bool
	d[0] = true
	p := DefaultPalette()
	img := Compose(&d, Options{Scale: 2, Outlines: true, Palette: p})
	if img.RGBAAt(0, 0) != p.FG {
		t.Fatalf("scale 2 cell should not be outlined")
	}
}

func TestChecksumAndPNG(t *testing.T) {
	var a, b [chip8.DisplaySize]bool
	b[100] = true
	p := DefaultPalette()
	ia, ib := NewFrame(), NewFrame()
	Render(ia, &a, p)
	Render(ib, &b, p)
	if Checksum(ia) == Checksum(ib) {
		t.Fatalf("checksums should differ")
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, ib); err != nil {
		t.Fatalf("png: %v", err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.Bounds() != ib.Bounds() {
		t.Fatalf("bounds got %v want %v", dec.Bounds(), ib.Bounds())
	}
}
