// Package rom reads CHIP-8 program images from disk or any reader and
// reports basic facts about them.
package rom

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/FabianRolfMatthiasNoll/chip8emu/internal/chip8"
)

// ROM is a program image ready to hand to chip8.Machine.Load.
type ROM struct {
	Name string // display name, usually the file name without extension
	Path string // empty when not read from disk
	Data []byte
}

// Info summarizes a ROM for logs and window titles.
type Info struct {
	Name  string
	Size  int
	Free  int    // bytes of program space left unused
	CRC32 uint32 // IEEE checksum of Data
	End   uint16 // first address past the program once loaded
}

func (i Info) String() string {
	return fmt.Sprintf("%q size=%dB free=%dB crc32=%08x end=%03X", i.Name, i.Size, i.Free, i.CRC32, i.End)
}

// ReadFile loads a ROM from path. Missing or unreadable files wrap
// chip8.ErrROMUnreadable; oversized files wrap chip8.ErrROMTooLarge.
func ReadFile(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chip8.ErrROMUnreadable, err)
	}
	defer f.Close()
	r, err := Read(NameFromPath(path), f)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		r.Path = abs
	} else {
		r.Path = path
	}
	return r, nil
}

// Read loads a ROM from an arbitrary source such as an embedded file or a
// network response.
func Read(name string, src io.Reader) (*ROM, error) {
	data, err := io.ReadAll(io.LimitReader(src, chip8.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chip8.ErrROMUnreadable, err)
	}
	if len(data) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", chip8.ErrROMTooLarge, name, chip8.MaxROMSize)
	}
	return &ROM{Name: name, Data: data}, nil
}

// FromBytes wraps an in-memory image, validating its size.
func FromBytes(name string, data []byte) (*ROM, error) {
	return Read(name, bytes.NewReader(data))
}

// NameFromPath derives a display name from a file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Info computes summary facts about r.
func (r *ROM) Info() Info {
	return Info{
		Name:  r.Name,
		Size:  len(r.Data),
		Free:  chip8.MaxROMSize - len(r.Data),
		CRC32: crc32.ChecksumIEEE(r.Data),
		End:   uint16(chip8.ProgramStart + len(r.Data)),
	}
}
