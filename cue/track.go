package cue

import "time"

// Mixing volumes for the mood variants of a layer. Inactive variants never
// drop to zero so they can be brought back without re-emitting.
const (
	activeVolume   = 1.0
	inactiveVolume = 0.01
)

// Track is a named, ordered set of sequences played back one after another.
// All mood variants of the current sequence play together; only their volume
// follows the builder's mood.
type Track struct {
	b    *Builder
	name string

	sequences []Sequence
	current   int
	play      bool
	startedAt time.Duration

	handles [LayerCount][MoodCount]Handle
}

// NewTrack creates an empty track bound to b's mood, skip flag and engine.
func NewTrack(b *Builder, name string) *Track {
	return &Track{
		b:       b,
		name:    name,
		current: -1,
	}
}

func (t *Track) Name() string {
	return t.name
}

// AddSequence appends seq in playback order. The sequence ID is its position.
func (t *Track) AddSequence(key string, seq Sequence) {
	seq.ID = len(t.sequences)
	seq.Key = key
	t.sequences = append(t.sequences, seq)
}

func (t *Track) SeqCount() int {
	return len(t.sequences)
}

// Sequence returns the sequence at id.
func (t *Track) Sequence(id int) (Sequence, bool) {
	if id < 0 || id >= len(t.sequences) {
		return Sequence{}, false
	}
	return t.sequences[id], true
}

func (t *Track) CurrentSeqID() int {
	return t.current
}

func (t *Track) SetCurrentSeqID(id int) {
	t.current = id
}

func (t *Track) Playing() bool {
	return t.play
}

func (t *Track) Handle(l Layer, m Mood) Handle {
	if !l.Valid() || !m.Valid() {
		return 0
	}
	return t.handles[l][m]
}

func (t *Track) StartPlaying() {
	t.play = true
}

func (t *Track) StopPlaying() {
	t.play = false
	if !t.anyLive() {
		t.handles = [LayerCount][MoodCount]Handle{}
		return
	}
	t.Stop()
}

// Update advances playback by one frame. A new sequence starts when the main
// layer has died, or when the current loop ended while a skip was pending.
func (t *Track) Update() {
	if !t.play {
		return
	}
	if _, ok := t.b.localPlayer(); !ok {
		return
	}

	now := t.b.now()
	playing := t.IsStillPlaying()
	loopEnded := false
	if seq, ok := t.Sequence(t.current); ok {
		duration := t.b.engine.Duration(seq.Asset(LayerMain, MoodNeutral))
		loopEnded = t.startedAt+duration < now
	}
	if loopEnded {
		t.b.devf("Loop ended")
		t.startedAt = now
	}
	if !playing || (loopEnded && t.b.ShouldSkip()) {
		t.startedAt = now
		t.b.SetShouldSkip(false)
		t.Stop()
		t.NextSeq()
		t.Play()
	}
}

// NextSeq moves to the following sequence. Play resets an index past the end.
func (t *Track) NextSeq() {
	t.current++
}

// Play starts every layer of every mood of the current sequence unless the
// main layer is still running, then applies the mood mix.
func (t *Track) Play() {
	if t.current >= len(t.sequences) {
		t.current = -1
		return
	}
	if t.current < 0 {
		return
	}

	if !t.IsStillPlaying() {
		t.b.devf("Playing part %s", t.sequences[t.current].Name)
		for l := Layer(0); l < LayerCount; l++ {
			for m := Mood(0); m < MoodCount; m++ {
				t.PlayLayer(t.current, l, m)
			}
		}
	}
	t.SetVolumes()
}

// PlayLayer emits the (l, m) wave of sequence id, falling back to the neutral
// wave. It returns the zero Handle when the layer has nothing to play.
func (t *Track) PlayLayer(id int, l Layer, m Mood) Handle {
	seq, ok := t.Sequence(id)
	if !ok || !l.Valid() || !m.Valid() {
		return 0
	}
	asset := seq.resolve(l, m)
	if asset == "" {
		return 0
	}

	h := t.b.engine.Emit(asset, seq.Volume, seq.SoundLevel, seq.Pitch)
	t.handles[l][m] = h
	return h
}

// Stop stops every recorded handle and forgets them.
func (t *Track) Stop() {
	for l := range t.handles {
		for m := range t.handles[l] {
			t.b.engine.Stop(t.handles[l][m])
			t.handles[l][m] = 0
		}
	}
}

// SetVolumes brings the builder's mood to full volume and holds every other
// mood variant just above silence.
func (t *Track) SetVolumes() {
	mood := t.b.Mood()
	for l := range t.handles {
		for m := range t.handles[l] {
			h := t.handles[l][m]
			if h == 0 || !t.b.engine.IsLive(h) {
				continue
			}
			volume := inactiveVolume
			if Mood(m) == mood {
				volume = activeVolume
			}
			t.b.engine.SetVolume(h, volume)
		}
	}
}

// IsStillPlaying reports whether any mood variant of the main layer is live.
func (t *Track) IsStillPlaying() bool {
	for m := range t.handles[LayerMain] {
		if t.b.engine.IsLive(t.handles[LayerMain][m]) {
			return true
		}
	}
	return false
}

func (t *Track) anyLive() bool {
	for l := range t.handles {
		for m := range t.handles[l] {
			if t.b.engine.IsLive(t.handles[l][m]) {
				return true
			}
		}
	}
	return false
}
