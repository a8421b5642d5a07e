// Package cuetest provides in-memory collaborators for exercising a cue.Builder
// without an audio device or a running game.
package cuetest

import (
	"strconv"
	"time"

	"github.com/milk9111/dynamicmusic/cue"
)

// Engine is a cue.SoundEngine that only records what it was asked to do.
// Sounds stay live until stopped or finished with Finish.
type Engine struct {
	Durations map[string]time.Duration
	Volumes   map[cue.Handle]float64
	Assets    map[cue.Handle]string
	Emitted   []cue.Handle

	next cue.Handle
	live map[cue.Handle]bool
}

func NewEngine() *Engine {
	return &Engine{
		Durations: map[string]time.Duration{},
		Volumes:   map[cue.Handle]float64{},
		Assets:    map[cue.Handle]string{},
		live:      map[cue.Handle]bool{},
	}
}

func (e *Engine) Emit(asset string, volume float64, _ cue.SoundLevel, _ int) cue.Handle {
	e.next++
	e.live[e.next] = true
	e.Assets[e.next] = asset
	e.Volumes[e.next] = volume
	e.Emitted = append(e.Emitted, e.next)
	return e.next
}

func (e *Engine) IsLive(h cue.Handle) bool {
	return h != 0 && e.live[h]
}

func (e *Engine) Stop(h cue.Handle) {
	delete(e.live, h)
}

func (e *Engine) SetVolume(h cue.Handle, volume float64) {
	if h == 0 {
		return
	}
	e.Volumes[h] = volume
}

func (e *Engine) Duration(asset string) time.Duration {
	return e.Durations[asset]
}

// Finish ends every sound as if it ran out.
func (e *Engine) Finish() {
	clear(e.live)
}

// Live is the number of sounds still playing.
func (e *Engine) Live() int {
	return len(e.live)
}

// Clock is a manually advanced cue.Clock.
type Clock struct {
	T time.Duration
}

func (c *Clock) Now() time.Duration {
	return c.T
}

func (c *Clock) Advance(d time.Duration) {
	c.T += d
}

// Game answers the rules, scoreboard and observer queries from plain fields.
type Game struct {
	Deathmatch bool
	LocalIndex int
	HasLocal   bool
	Score      int
	Streak     int
}

func (g *Game) IsDeathmatch() bool {
	return g.Deathmatch
}

func (g *Game) LocalPlayer() (int, bool) {
	return g.LocalIndex, g.HasLocal
}

func (g *Game) TotalScore(int) int {
	return g.Score
}

func (g *Game) Killstreak(int) int {
	return g.Streak
}

// Track registers a track whose sequences each have a neutral main wave and a
// danger-only bass wave.
func Track(b *cue.Builder, name string, sequences int) *cue.Track {
	t := cue.NewTrack(b, name)
	for i := 0; i < sequences; i++ {
		n := strconv.Itoa(i)
		seq := cue.NewSequence("part " + n)
		seq.Volume = 1
		seq.SetAsset(cue.LayerMain, cue.MoodNeutral, name+"/main"+n+".ogg")
		seq.SetAsset(cue.LayerBass, cue.MoodDanger, name+"/bass"+n+".ogg")
		t.AddSequence("part"+n, seq)
	}
	b.AddTrack(name, t)
	return t
}
