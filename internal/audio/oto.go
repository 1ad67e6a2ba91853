package audio

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoSpeaker plays a Tone on the default output device. It is used by
// frontends that do not bring their own audio stack.
type OtoSpeaker struct {
	*Tone
	ctx    *oto.Context
	player *oto.Player
}

// NewOtoSpeaker opens the output device and starts streaming silence.
func NewOtoSpeaker(cfg Config) (*OtoSpeaker, error) {
	cfg.Defaults()
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   40 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}
	<-ready
	tone := NewTone(cfg)
	p := ctx.NewPlayer(tone)
	p.Play()
	return &OtoSpeaker{Tone: tone, ctx: ctx, player: p}, nil
}

// Close stops playback. The oto context itself lives for the process.
func (s *OtoSpeaker) Close() error {
	s.SetTone(false)
	return s.player.Close()
}
