package system

import (
	"context"
	"log"
	"path/filepath"

	"github.com/milk9111/dynamicmusic/prefabs"
)

// ReloadSystem re-registers track definitions and reruns console scripts that
// changed on disk. A removed override falls back to the built-in definition.
type ReloadSystem struct {
	changes <-chan string
	errs    <-chan error
	loader  *prefabs.TrackLoader
	logger  *log.Logger
}

func NewReloadSystem(changes <-chan string, errs <-chan error, loader *prefabs.TrackLoader, logger *log.Logger) *ReloadSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ReloadSystem{changes: changes, errs: errs, loader: loader, logger: logger}
}

// NewWatcherReloadSystem drains w.
func NewWatcherReloadSystem(w *prefabs.Watcher, loader *prefabs.TrackLoader, logger *log.Logger) *ReloadSystem {
	return NewReloadSystem(w.Events, w.Errors, loader, logger)
}

func (s *ReloadSystem) Update(w *World) {
	if w == nil {
		return
	}
	for {
		select {
		case err, ok := <-s.errs:
			if !ok {
				s.errs = nil
				continue
			}
			s.logger.Printf("reload: watch: %v", err)
		case file, ok := <-s.changes:
			if !ok {
				s.changes = nil
				continue
			}
			s.reload(w, file)
		default:
			return
		}
	}
}

func (s *ReloadSystem) reload(w *World, file string) {
	name := filepath.Base(file)
	switch {
	case prefabs.IsTrackFile(name):
		if w.Cues == nil || s.loader == nil {
			return
		}
		if err := s.loader.LoadTrack(w.Cues, name); err != nil {
			s.logger.Printf("reload: %v", err)
			return
		}
		s.logger.Printf("reload: track %s", prefabs.TrackName(name))
	case prefabs.IsScriptFile(name):
		if w.Console == nil || s.loader == nil {
			return
		}
		src, err := s.loader.Source.LoadScript(name)
		if err != nil {
			s.logger.Printf("reload: %v", err)
			return
		}
		if err := w.Console.RunScript(context.Background(), name, src); err != nil {
			s.logger.Printf("reload: %v", err)
		}
	}
}
