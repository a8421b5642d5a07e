package cue

// Sequence is one musical part of a track with a wave per layer and mood.
// An empty asset means the layer has no variant for that mood.
type Sequence struct {
	ID         int
	Key        string
	Name       string
	Volume     float64
	SoundLevel SoundLevel
	Pitch      int

	assets [LayerCount][MoodCount]string
}

// NewSequence returns a sequence with the default pitch and sound level and no assets.
func NewSequence(name string) Sequence {
	return Sequence{
		Name:       name,
		SoundLevel: SndLvlNorm,
		Pitch:      PitchNorm,
	}
}

func (s *Sequence) Asset(l Layer, m Mood) string {
	if !l.Valid() || !m.Valid() {
		return ""
	}
	return s.assets[l][m]
}

func (s *Sequence) SetAsset(l Layer, m Mood, asset string) {
	if !l.Valid() || !m.Valid() {
		return
	}
	s.assets[l][m] = asset
}

// resolve applies the neutral fallback used when emitting a layer.
func (s *Sequence) resolve(l Layer, m Mood) string {
	if asset := s.Asset(l, m); asset != "" {
		return asset
	}
	return s.Asset(l, MoodNeutral)
}
