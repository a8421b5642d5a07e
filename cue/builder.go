package cue

import (
	"errors"
	"fmt"
	"log"
	"time"
)

var (
	ErrUnknownTrack   = errors.New("cue: unknown track")
	ErrNoCurrentTrack = errors.New("cue: no current track")
)

// DeathmatchTrack is the track selected when a deathmatch round (re)starts.
const DeathmatchTrack = "tf_music_deathmatch"

// Options wires a Builder to its collaborators. Engine and Clock are required;
// the remaining collaborators may be nil, in which case the features that
// depend on them stay silent.
type Options struct {
	Engine   SoundEngine
	Clock    Clock
	Rules    GameRules
	Scores   Scoreboard
	Observer Observer
	Events   EventBus
	Loader   Loader

	// DeathmatchTrack overrides the track picked on round start and team change.
	DeathmatchTrack string

	Logger *log.Logger
	Debug  bool
}

// Builder owns every registered track, the current track, the global mood and
// the skip request. It is driven from the update thread only.
type Builder struct {
	engine     SoundEngine
	clock      Clock
	rules      GameRules
	scores     Scoreboard
	observer   Observer
	events     EventBus
	loader     Loader
	deathmatch string
	logger     *log.Logger
	debug      bool

	inited  bool
	tracks  map[string]*Track
	order   []string
	current string
	mood    Mood
	skip    bool
}

func NewBuilder(opts Options) *Builder {
	b := &Builder{
		engine:     opts.Engine,
		clock:      opts.Clock,
		rules:      opts.Rules,
		scores:     opts.Scores,
		observer:   opts.Observer,
		events:     opts.Events,
		loader:     opts.Loader,
		deathmatch: opts.DeathmatchTrack,
		logger:     opts.Logger,
		debug:      opts.Debug,
		tracks:     make(map[string]*Track),
	}
	if b.deathmatch == "" {
		b.deathmatch = DeathmatchTrack
	}
	if b.logger == nil {
		b.logger = log.Default()
	}
	return b
}

// Init loads the track registry and subscribes to game events. Calls after the
// first one do nothing.
func (b *Builder) Init() error {
	if b.inited {
		return nil
	}
	b.inited = true
	b.mood = MoodNeutral
	b.current = ""

	var err error
	if b.loader != nil {
		if err = b.loader.LoadTracks(b); err != nil {
			err = fmt.Errorf("cue: load tracks: %w", err)
		}
	}

	if b.events != nil {
		for _, name := range []string{
			EventServerSpawn,
			EventLocalTeamChange,
			EventPlayerDeath,
			EventWinPanel,
			EventRoundStart,
		} {
			b.events.Listen(name, b)
		}
	}
	return err
}

// Update advances every registered track, current or not.
func (b *Builder) Update() {
	for _, name := range b.order {
		if t := b.tracks[name]; t != nil {
			t.Update()
		}
	}
}

// FireGameEvent reacts to gameplay. Events only matter in deathmatch.
func (b *Builder) FireGameEvent(ev GameEvent) {
	if b.rules == nil || !b.rules.IsDeathmatch() {
		return
	}

	switch ev.Name {
	case EventLocalTeamChange, EventRoundStart:
		b.StopCue()
		if err := b.SelectTrack(b.deathmatch); err != nil {
			b.logger.Printf("cue: %s: %v", ev.Name, err)
			return
		}
		b.ResetAndStartCue()
	case EventServerSpawn, EventWinPanel:
		b.StopCue()
	case EventPlayerDeath:
		b.onPlayerDeath(ev)
	}
}

func (b *Builder) onPlayerDeath(ev GameEvent) {
	if b.scores == nil {
		return
	}
	t := b.CurrentTrack()
	if t == nil {
		return
	}
	local, ok := b.localPlayer()
	if !ok {
		return
	}

	score := b.scores.TotalScore(local)
	streak := b.scores.Killstreak(local)

	// Once the match is underway, leave the intro at its next loop boundary.
	if score > 1 && t.CurrentSeqID() == 0 {
		b.SetShouldSkip(true)
	}

	// Dying wins over a running killstreak.
	if ev.UserID == local+1 {
		b.SetMood(MoodNeutral)
	} else if streak > 3 {
		b.SetMood(MoodDanger)
	}
}

// AddTrack registers t under name. A track registered under an existing name
// replaces it; the replaced track is silenced and, if it was playing as the
// current track, the replacement takes over playback.
func (b *Builder) AddTrack(name string, t *Track) {
	if t == nil {
		return
	}
	old, exists := b.tracks[name]
	b.tracks[name] = t
	if !exists {
		b.order = append(b.order, name)
		return
	}
	if old == t {
		return
	}
	wasPlaying := old.Playing()
	old.StopPlaying()
	if name == b.current && wasPlaying {
		t.StartPlaying()
	}
}

func (b *Builder) Track(name string) *Track {
	return b.tracks[name]
}

// TrackNames lists registered tracks in registration order.
func (b *Builder) TrackNames() []string {
	return append([]string(nil), b.order...)
}

// SelectTrack makes name the current track without starting it.
func (b *Builder) SelectTrack(name string) error {
	if _, ok := b.tracks[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, name)
	}
	b.current = name
	return nil
}

// CurrentTrack returns the selected track or nil.
func (b *Builder) CurrentTrack() *Track {
	if b.current == "" {
		return nil
	}
	return b.tracks[b.current]
}

func (b *Builder) Mood() Mood {
	return b.mood
}

// SetMood changes the global mood and remixes the current track. A current
// track must be selected.
func (b *Builder) SetMood(m Mood) {
	b.devf("Mood set to %s", m)
	b.mood = m
	b.mustCurrent("SetMood").SetVolumes()
}

func (b *Builder) ShouldSkip() bool {
	return b.skip
}

// SetShouldSkip requests (or clears) a move to the next sequence at the next
// loop boundary.
func (b *Builder) SetShouldSkip(skip bool) {
	if skip {
		b.devf("Skipping to the next loop")
	}
	b.skip = skip
}

// StartCue starts the current track. A current track must be selected.
func (b *Builder) StartCue() {
	t := b.mustCurrent("StartCue")
	b.devf("Playing track %s", t.Name())
	t.StartPlaying()
}

// StopCue stops the current track, if any.
func (b *Builder) StopCue() {
	t := b.CurrentTrack()
	if t == nil {
		return
	}
	b.devf("Stop playing track %s", t.Name())
	t.StopPlaying()
}

// ResetAndStartCue rewinds the current track, resets the mood and starts it.
func (b *Builder) ResetAndStartCue() {
	b.mustCurrent("ResetAndStartCue").SetCurrentSeqID(-1)
	b.SetMood(MoodNeutral)
	b.StartCue()
}

// Shutdown silences every track and empties the registry.
func (b *Builder) Shutdown() {
	for _, name := range b.order {
		if t := b.tracks[name]; t != nil {
			t.StopPlaying()
		}
	}
	b.tracks = make(map[string]*Track)
	b.order = nil
	b.current = ""
}

func (b *Builder) mustCurrent(op string) *Track {
	t := b.CurrentTrack()
	if t == nil {
		panic(fmt.Sprintf("cue: %s: %v", op, ErrNoCurrentTrack))
	}
	return t
}

func (b *Builder) localPlayer() (int, bool) {
	if b.observer == nil {
		return 0, false
	}
	return b.observer.LocalPlayer()
}

func (b *Builder) now() time.Duration {
	if b.clock == nil {
		return 0
	}
	return b.clock.Now()
}

func (b *Builder) devf(format string, args ...any) {
	if !b.debug {
		return
	}
	b.logger.Printf("cue: "+format, args...)
}
