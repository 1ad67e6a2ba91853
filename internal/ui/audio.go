package ui

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	c8audio "github.com/FabianRolfMatthiasNoll/chip8emu/internal/audio"
)

// startAudio opens an ebiten player fed by the square-wave generator. The
// generator is also the machine's speaker, so the step loop gates it
// directly. Failure leaves the app silent but running.
func (a *App) startAudio() {
	a.tone = c8audio.NewTone(a.cfg.Audio)
	a.m.AttachSpeaker(a.tone)
	if a.cfg.Muted {
		return
	}
	a.audioCtx = audio.NewContext(a.cfg.Audio.SampleRate)
	p, err := a.audioCtx.NewPlayer(a.tone)
	if err != nil {
		log.Printf("ui: audio disabled: %v", err)
		return
	}
	a.audioPlayer = p
	a.applyPlayerBufferSize()
	a.audioPlayer.Play()
}

// applyPlayerBufferSize keeps the player buffer short so beeps start and
// stop within a couple of frames.
func (a *App) applyPlayerBufferSize() {
	if a.audioPlayer == nil {
		return
	}
	a.audioPlayer.SetBufferSize(40 * time.Millisecond)
}

func (a *App) changeVolume(delta int) {
	if a.tone == nil {
		return
	}
	v := a.tone.AdjustVolume(delta)
	a.toast(volumeLabel(v))
}
