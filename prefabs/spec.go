package prefabs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/dynamicmusic/cue"
	"gopkg.in/yaml.v3"
)

// TrackSpec is one track definition file. Sequences play in file order.
type TrackSpec struct {
	Sequences []SequenceSpec `yaml:"sequences"`
}

type SequenceSpec struct {
	Key        string                         `yaml:"key"`
	Name       string                         `yaml:"name"`
	Volume     float64                        `yaml:"volume"`
	Pitch      *int                           `yaml:"pitch"`
	SoundLevel *SoundLevelSpec                `yaml:"soundlevel"`
	Layers     map[string]map[string]WaveSpec `yaml:"layers"`
}

type WaveSpec struct {
	Wave string `yaml:"wave"`
}

// SoundLevelSpec accepts either an "SNDLVL_*" name or a plain decibel value.
type SoundLevelSpec struct {
	cue.SoundLevel
}

func (s *SoundLevelSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("soundlevel must be a scalar")
	}

	text := strings.TrimSpace(value.Value)
	if len(text) >= len("SNDLVL_") && strings.EqualFold(text[:len("SNDLVL_")], "SNDLVL_") {
		lvl, err := cue.ParseSoundLevel(text)
		if err != nil {
			return err
		}
		s.SoundLevel = lvl
		return nil
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid soundlevel %q", value.Value)
	}
	s.SoundLevel = cue.SoundLevel(n)
	return nil
}

func LoadSpec[T any](src *Source, filename string) (T, error) {
	var zero T
	data, err := src.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadTrackSpec(src *Source, filename string) (TrackSpec, error) {
	return LoadSpec[TrackSpec](src, filename)
}
