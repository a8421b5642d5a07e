package prefabs

import (
	"errors"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/milk9111/dynamicmusic/cue"
)

// TrackLoader registers every track definition found in Source with a builder.
type TrackLoader struct {
	Source *Source
	Strict bool
	Logger *log.Logger
}

func NewTrackLoader(src *Source, strict bool, logger *log.Logger) *TrackLoader {
	if logger == nil {
		logger = log.Default()
	}
	return &TrackLoader{Source: src, Strict: strict, Logger: logger}
}

// LoadTracks loads all definitions. A broken file is reported but does not
// keep the others from loading.
func (l *TrackLoader) LoadTracks(b *cue.Builder) error {
	files, err := l.Source.TrackFiles()
	if err != nil {
		return err
	}

	var errs []error
	for _, file := range files {
		if err := l.LoadTrack(b, file); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadTrack parses one definition and registers it under its file name.
func (l *TrackLoader) LoadTrack(b *cue.Builder, file string) error {
	spec, err := LoadTrackSpec(l.Source, file)
	if err != nil {
		return err
	}

	name := TrackName(file)
	track, warnings, err := BuildTrack(b, name, spec, l.Strict)
	for _, w := range warnings {
		l.logger().Printf("prefabs: %s: %s", file, w)
	}
	if err != nil {
		return err
	}

	b.AddTrack(name, track)
	return nil
}

func (l *TrackLoader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

// TrackName derives the registry name from a definition path,
// "tracks/tf_music_deathmatch.yaml" -> "tf_music_deathmatch".
func TrackName(file string) string {
	base := path.Base(filepath.ToSlash(file))
	return strings.TrimSuffix(base, path.Ext(base))
}

// IsTrackFile reports whether p names a track definition.
func IsTrackFile(p string) bool {
	ok, _ := filepath.Match(TrackPattern, filepath.Base(p))
	return ok
}

func IsScriptFile(p string) bool {
	return strings.ToLower(filepath.Ext(p)) == ".tengo"
}
