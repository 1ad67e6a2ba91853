package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// framesPerSecond is the rate at which SetTone is expected to be called.
const framesPerSecond = 60

// Recorder captures the beeper into memory one emulated frame at a time and
// writes it out as a mono 16-bit WAV file. Headless runs use it in place of
// a live device.
type Recorder struct {
	tone    *Tone
	rate    int
	acc     int
	samples []int
}

// NewRecorder returns a mono recorder for cfg.
func NewRecorder(cfg Config) *Recorder {
	cfg.Defaults()
	cfg.Channels = 1
	return &Recorder{tone: NewTone(cfg), rate: cfg.SampleRate}
}

// SetTone appends one frame's worth of samples with the tone gated by on.
func (r *Recorder) SetTone(on bool) {
	r.tone.SetTone(on)
	r.acc += r.rate
	n := r.acc / framesPerSecond
	r.acc %= framesPerSecond
	for i := 0; i < n; i++ {
		r.samples = append(r.samples, int(r.tone.Sample()))
	}
}

// Samples returns the number of samples captured so far.
func (r *Recorder) Samples() int { return len(r.samples) }

// Encode writes the capture as WAV to ws.
func (r *Recorder) Encode(ws io.WriteSeeker) error {
	enc := wav.NewEncoder(ws, r.rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: r.rate},
		Data:           r.samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// Save writes the capture to path.
func (r *Recorder) Save(path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wav: %w", err)
		}
	}()
	return r.Encode(f)
}
