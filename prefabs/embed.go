package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

const (
	tracksDir  = "tracks"
	scriptsDir = "scripts"

	// TrackPattern matches track definition file names.
	TrackPattern = "tf_music_*.yaml"
	// ScriptPattern matches console script file names.
	ScriptPattern = "*.tengo"
)

//go:embed tracks/*.yaml scripts/*.tengo
var PrefabsFS embed.FS

// Source resolves definition files, preferring an on-disk copy over the
// embedded defaults so edits can be picked up without a rebuild.
type Source struct {
	Disk     fs.FS
	Embedded fs.FS
}

// NewSource reads from dir on disk (if non-empty) and falls back to PrefabsFS.
func NewSource(dir string) *Source {
	src := &Source{Embedded: PrefabsFS}
	if dir != "" {
		src.Disk = os.DirFS(dir)
	}
	return src
}

// Load reads a track definition, e.g. "tf_music_deathmatch.yaml".
func (s *Source) Load(name string) ([]byte, error) {
	return s.read(path.Join(tracksDir, cleanPrefabPath(name, tracksDir)))
}

// LoadScript reads a console script, e.g. "autoexec.tengo".
func (s *Source) LoadScript(name string) ([]byte, error) {
	return s.read(path.Join(scriptsDir, cleanPrefabPath(name, scriptsDir)))
}

// TrackFiles lists track definition names from both sources, sorted.
func (s *Source) TrackFiles() ([]string, error) {
	return s.list(tracksDir, TrackPattern)
}

// ScriptFiles lists console script names from both sources, sorted.
func (s *Source) ScriptFiles() ([]string, error) {
	return s.list(scriptsDir, ScriptPattern)
}

func (s *Source) read(name string) ([]byte, error) {
	if s == nil {
		return nil, fs.ErrNotExist
	}
	if s.Disk != nil {
		if data, err := fs.ReadFile(s.Disk, name); err == nil {
			return data, nil
		}
	}
	if s.Embedded == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(s.Embedded, name)
}

func (s *Source) list(dir, pattern string) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	var names []string
	var errs []error
	for _, fsys := range []fs.FS{s.Embedded, s.Disk} {
		if fsys == nil {
			continue
		}
		matches, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, m := range matches {
			names = append(names, path.Base(m))
		}
	}
	slices.Sort(names)
	return slices.Compact(names), errors.Join(errs...)
}

func cleanPrefabPath(p, dir string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, dir+"/"); ok {
		s = after
	}
	return s
}
