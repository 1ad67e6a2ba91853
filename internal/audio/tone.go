// Package audio produces the CHIP-8 beeper: a fixed-pitch square wave that
// is gated on and off once per frame by the sound timer.
package audio

import (
	"encoding/binary"
	"sync/atomic"
)

const (
	MaxVolume  = 32767
	VolumeStep = 500
)

// Config describes the generated waveform.
type Config struct {
	SampleRate int // samples per second per channel
	Freq       int // tone pitch in Hz
	Volume     int // peak amplitude, 0..MaxVolume
	Channels   int // 1 (mono) or 2 (stereo, both channels identical)
}

// Defaults fills unset fields.
func (c *Config) Defaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.Freq <= 0 {
		c.Freq = 440
	}
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > MaxVolume {
		c.Volume = MaxVolume
	}
	if c.Channels != 1 && c.Channels != 2 {
		c.Channels = 2
	}
}

// Tone is a square-wave source. SetTone and SetVolume may be called from the
// emulation goroutine while an audio backend reads from another.
type Tone struct {
	on       atomic.Bool
	volume   atomic.Int32
	period   int
	phase    int
	channels int
}

// NewTone builds a generator from cfg after applying defaults.
func NewTone(cfg Config) *Tone {
	cfg.Defaults()
	t := &Tone{channels: cfg.Channels}
	t.period = cfg.SampleRate / cfg.Freq
	if t.period < 2 {
		t.period = 2
	}
	t.volume.Store(int32(cfg.Volume))
	return t
}

// SetTone gates the wave.
func (t *Tone) SetTone(on bool) { t.on.Store(on) }

// On reports whether the wave is currently gated on.
func (t *Tone) On() bool { return t.on.Load() }

// Volume returns the current peak amplitude.
func (t *Tone) Volume() int { return int(t.volume.Load()) }

// SetVolume sets the peak amplitude, clamped to [0, MaxVolume].
func (t *Tone) SetVolume(v int) {
	t.volume.Store(int32(clampVolume(v)))
}

// AdjustVolume adds delta to the volume and returns the clamped result.
func (t *Tone) AdjustVolume(delta int) int {
	v := clampVolume(t.Volume() + delta)
	t.volume.Store(int32(v))
	return v
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}

// Sample returns the next mono sample. The phase only advances while the
// tone is on, so each beep starts on a rising edge.
func (t *Tone) Sample() int16 {
	if !t.on.Load() {
		t.phase = 0
		return 0
	}
	vol := int16(t.volume.Load())
	s := vol
	if t.phase >= t.period/2 {
		s = -vol
	}
	t.phase++
	if t.phase >= t.period {
		t.phase = 0
	}
	return s
}

// Read fills p with 16-bit little-endian PCM, interleaved when stereo.
func (t *Tone) Read(p []byte) (int, error) {
	frame := 2 * t.channels
	if len(p) < frame {
		clear(p)
		return len(p), nil
	}
	n := len(p) / frame * frame
	for i := 0; i < n; i += frame {
		s := uint16(t.Sample())
		for c := 0; c < t.channels; c++ {
			binary.LittleEndian.PutUint16(p[i+2*c:], s)
		}
	}
	return n, nil
}
