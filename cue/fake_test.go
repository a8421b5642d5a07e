package cue

import (
	"io"
	"log"
	"time"
)

type emitCall struct {
	Asset  string
	Volume float64
	Level  SoundLevel
	Pitch  int
	Handle Handle
}

type fakeEngine struct {
	next      Handle
	live      map[Handle]bool
	assets    map[Handle]string
	volumes   map[Handle]float64
	setCalls  map[Handle]int
	durations map[string]time.Duration
	emits     []emitCall
	stops     []Handle
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		live:      map[Handle]bool{},
		assets:    map[Handle]string{},
		volumes:   map[Handle]float64{},
		setCalls:  map[Handle]int{},
		durations: map[string]time.Duration{},
	}
}

func (e *fakeEngine) Emit(asset string, volume float64, level SoundLevel, pitch int) Handle {
	e.next++
	h := e.next
	e.live[h] = true
	e.assets[h] = asset
	e.volumes[h] = volume
	e.emits = append(e.emits, emitCall{Asset: asset, Volume: volume, Level: level, Pitch: pitch, Handle: h})
	return h
}

func (e *fakeEngine) IsLive(h Handle) bool {
	return h != 0 && e.live[h]
}

func (e *fakeEngine) Stop(h Handle) {
	if h == 0 {
		return
	}
	e.stops = append(e.stops, h)
	delete(e.live, h)
}

func (e *fakeEngine) SetVolume(h Handle, volume float64) {
	if h == 0 {
		return
	}
	e.volumes[h] = volume
	e.setCalls[h]++
}

func (e *fakeEngine) Duration(asset string) time.Duration {
	return e.durations[asset]
}

// finish simulates every sound running out on its own.
func (e *fakeEngine) finish() {
	for h := range e.live {
		delete(e.live, h)
	}
}

func (e *fakeEngine) liveCount() int {
	return len(e.live)
}

type fakeClock struct {
	t time.Duration
}

func (c *fakeClock) Now() time.Duration {
	return c.t
}

type fakeRules struct {
	deathmatch bool
}

func (r *fakeRules) IsDeathmatch() bool {
	return r.deathmatch
}

type fakeScores struct {
	score  int
	streak int
}

func (s *fakeScores) TotalScore(int) int {
	return s.score
}

func (s *fakeScores) Killstreak(int) int {
	return s.streak
}

type fakeObserver struct {
	index int
	ok    bool
}

func (o *fakeObserver) LocalPlayer() (int, bool) {
	return o.index, o.ok
}

type fakeBus struct {
	listens map[string]int
}

func (f *fakeBus) Listen(name string, _ Listener) {
	if f.listens == nil {
		f.listens = map[string]int{}
	}
	f.listens[name]++
}

type loaderFunc func(b *Builder) error

func (f loaderFunc) LoadTracks(b *Builder) error {
	return f(b)
}

type fixture struct {
	engine   *fakeEngine
	clock    *fakeClock
	rules    *fakeRules
	scores   *fakeScores
	observer *fakeObserver
	bus      *fakeBus
	builder  *Builder
}

func newFixture() *fixture {
	f := &fixture{
		engine:   newFakeEngine(),
		clock:    &fakeClock{},
		rules:    &fakeRules{deathmatch: true},
		scores:   &fakeScores{},
		observer: &fakeObserver{index: 0, ok: true},
		bus:      &fakeBus{},
	}
	f.builder = NewBuilder(Options{
		Engine:   f.engine,
		Clock:    f.clock,
		Rules:    f.rules,
		Scores:   f.scores,
		Observer: f.observer,
		Events:   f.bus,
		Logger:   log.New(io.Discard, "", 0),
		Debug:    true,
	})
	return f
}

// deathmatchTrack builds the two-sequence track used across tests: sequence 0
// has neutral and danger main waves, sequence 1 only a neutral main and bass.
func (f *fixture) deathmatchTrack() *Track {
	t := NewTrack(f.builder, DeathmatchTrack)

	intro := NewSequence("Intro")
	intro.Volume = 1
	intro.SetAsset(LayerMain, MoodNeutral, "a")
	intro.SetAsset(LayerMain, MoodDanger, "b")
	t.AddSequence("intro", intro)

	loop := NewSequence("Loop")
	loop.Volume = 1
	loop.SetAsset(LayerMain, MoodNeutral, "c")
	loop.SetAsset(LayerBass, MoodNeutral, "d")
	t.AddSequence("loop", loop)

	f.engine.durations["a"] = 10 * time.Second
	f.engine.durations["c"] = 20 * time.Second

	f.builder.AddTrack(DeathmatchTrack, t)
	return t
}
