package assets

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/dynamicmusic/cue"
)

// Engine plays library clips through an ebiten audio context and hands out a
// cue.Handle per emitted sound. Pitch and sound level are kept for
// inspection only; music is played flat and unattenuated.
type Engine struct {
	ctx    *audio.Context
	lib    *Library
	logger *log.Logger

	next   cue.Handle
	voices map[cue.Handle]*voice
	warned map[string]bool
}

type voice struct {
	player *audio.Player
	asset  string
	pitch  int
	level  cue.SoundLevel
}

func NewEngine(ctx *audio.Context, lib *Library, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		ctx:    ctx,
		lib:    lib,
		logger: logger,
		voices: make(map[cue.Handle]*voice),
		warned: make(map[string]bool),
	}
}

// Emit starts asset looping and returns its handle, or the zero handle when
// the asset cannot be played. A voice stays live until it is stopped.
func (e *Engine) Emit(asset string, volume float64, level cue.SoundLevel, pitch int) cue.Handle {
	if asset == "" {
		return 0
	}
	clip, err := e.lib.Clip(asset)
	if err != nil {
		if !e.warned[asset] {
			e.warned[asset] = true
			e.logger.Printf("assets: %v", err)
		}
		return 0
	}

	player, err := e.ctx.NewPlayer(clip.Loop())
	if err != nil {
		e.logger.Printf("assets: play %q: %v", asset, err)
		return 0
	}
	player.SetVolume(clampVolume(volume))
	player.Play()

	e.next++
	e.voices[e.next] = &voice{player: player, asset: asset, pitch: pitch, level: level}
	return e.next
}

func (e *Engine) IsLive(h cue.Handle) bool {
	v, ok := e.voices[h]
	return ok && v.player.IsPlaying()
}

func (e *Engine) Stop(h cue.Handle) {
	v, ok := e.voices[h]
	if !ok {
		return
	}
	v.player.Pause()
	_ = v.player.Close()
	delete(e.voices, h)
}

func (e *Engine) SetVolume(h cue.Handle, volume float64) {
	v, ok := e.voices[h]
	if !ok {
		return
	}
	v.player.SetVolume(clampVolume(volume))
}

func (e *Engine) Duration(asset string) time.Duration {
	return e.lib.Duration(asset)
}

// Sweep releases players that finished on their own.
func (e *Engine) Sweep() {
	for h, v := range e.voices {
		if v.player.IsPlaying() {
			continue
		}
		_ = v.player.Close()
		delete(e.voices, h)
	}
}

// Voices is the number of sounds the engine still tracks.
func (e *Engine) Voices() int {
	return len(e.voices)
}

// Close stops every sound.
func (e *Engine) Close() {
	for h := range e.voices {
		e.Stop(h)
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
