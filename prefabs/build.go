package prefabs

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/milk9111/dynamicmusic/cue"
)

// BuildTrack turns a definition into a track bound to b. Unknown layer and
// mood names are skipped and reported as warnings; with strict set they fail
// the build instead.
func BuildTrack(b *cue.Builder, name string, spec TrackSpec, strict bool) (*cue.Track, []string, error) {
	track := cue.NewTrack(b, name)
	var warnings []string
	var errs []error

	for i, seqSpec := range spec.Sequences {
		key := seqSpec.Key
		if key == "" {
			key = seqSpec.Name
		}
		if key == "" {
			key = "sequence" + strconv.Itoa(i)
		}

		seq := cue.NewSequence(seqSpec.Name)
		seq.Volume = seqSpec.Volume
		if seqSpec.Pitch != nil {
			seq.Pitch = *seqSpec.Pitch
		}
		if seqSpec.SoundLevel != nil {
			seq.SoundLevel = seqSpec.SoundLevel.SoundLevel
		}

		for _, layerName := range sortedKeys(seqSpec.Layers) {
			layer, err := cue.ParseLayer(layerName)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("sequence %q: skipping %v", key, err))
				errs = append(errs, fmt.Errorf("sequence %q: %w", key, err))
				continue
			}
			moods := seqSpec.Layers[layerName]
			for _, moodName := range sortedKeys(moods) {
				mood, err := cue.ParseMood(moodName)
				if err != nil {
					warnings = append(warnings, fmt.Sprintf("sequence %q %s: skipping %v", key, layer, err))
					errs = append(errs, fmt.Errorf("sequence %q %s: %w", key, layer, err))
					continue
				}
				seq.SetAsset(layer, mood, moods[moodName].Wave)
			}
		}

		track.AddSequence(key, seq)
	}

	if strict && len(errs) > 0 {
		return nil, warnings, fmt.Errorf("prefabs: track %s: %w", name, errors.Join(errs...))
	}
	return track, warnings, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
