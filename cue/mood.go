package cue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownMood       = errors.New("cue: unknown mood")
	ErrUnknownLayer      = errors.New("cue: unknown layer")
	ErrUnknownSoundLevel = errors.New("cue: unknown sound level")
)

// Mood is the gameplay state that decides which variant of every layer is audible.
// Its ordinal doubles as the mixing index.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodDanger
	MoodDeath

	MoodCount = 3
)

// Layer is an independent stem mixed together with the other layers of a sequence.
type Layer int

const (
	LayerMain Layer = iota
	LayerBass
	LayerPerc
	LayerMisc

	LayerCount = 4
)

var moodNames = [MoodCount]string{
	"MOOD_NEUTRAL",
	"MOOD_DANGER",
	"MOOD_DEATH",
}

var layerNames = [LayerCount]string{
	"LAYER_MAIN",
	"LAYER_BASS",
	"LAYER_PERC",
	"LAYER_MISC",
}

func (m Mood) Valid() bool {
	return m >= 0 && m < MoodCount
}

func (m Mood) String() string {
	if !m.Valid() {
		return "MOOD(" + strconv.Itoa(int(m)) + ")"
	}
	return moodNames[m]
}

func (l Layer) Valid() bool {
	return l >= 0 && l < LayerCount
}

func (l Layer) String() string {
	if !l.Valid() {
		return "LAYER(" + strconv.Itoa(int(l)) + ")"
	}
	return layerNames[l]
}

// ParseMood matches a definition key such as "MOOD_DANGER", ignoring case.
func ParseMood(name string) (Mood, error) {
	name = strings.TrimSpace(name)
	for i, n := range moodNames {
		if strings.EqualFold(n, name) {
			return Mood(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMood, name)
}

// ParseLayer matches a definition key such as "LAYER_BASS", ignoring case.
func ParseLayer(name string) (Layer, error) {
	name = strings.TrimSpace(name)
	for i, n := range layerNames {
		if strings.EqualFold(n, name) {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

// SoundLevel is the emitter attenuation in decibels.
type SoundLevel int

const (
	SndLvlNone    SoundLevel = 0
	SndLvlStatic  SoundLevel = 66
	SndLvlIdle    SoundLevel = 70
	SndLvlNorm    SoundLevel = 75
	SndLvlTalking SoundLevel = 80
	SndLvlGunfire SoundLevel = 140
)

// PitchNorm is the unshifted pitch percentage.
const PitchNorm = 100

const soundLevelBase = "SNDLVL_"

var namedSoundLevels = map[string]SoundLevel{
	"NONE":    SndLvlNone,
	"STATIC":  SndLvlStatic,
	"IDLE":    SndLvlIdle,
	"NORM":    SndLvlNorm,
	"TALKING": SndLvlTalking,
	"GUNFIRE": SndLvlGunfire,
}

// ParseSoundLevel accepts "SNDLVL_NORM"-style names and "SNDLVL_<n>dB" values.
func ParseSoundLevel(text string) (SoundLevel, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	rest, ok := strings.CutPrefix(s, soundLevelBase)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSoundLevel, text)
	}
	if lvl, ok := namedSoundLevels[rest]; ok {
		return lvl, nil
	}
	if num, ok := strings.CutSuffix(rest, "DB"); ok {
		n, err := strconv.Atoi(num)
		if err == nil && n >= 0 {
			return SoundLevel(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSoundLevel, text)
}
