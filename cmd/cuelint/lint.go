package main

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"time"

	"github.com/milk9111/dynamicmusic/assets"
	"github.com/milk9111/dynamicmusic/console"
	"github.com/milk9111/dynamicmusic/cue"
	"github.com/milk9111/dynamicmusic/prefabs"
)

// durations answers cue.SoundEngine duration queries from a library and
// never plays anything.
type durations struct {
	lib *assets.Library
}

func (d durations) Emit(string, float64, cue.SoundLevel, int) cue.Handle { return 0 }
func (d durations) IsLive(cue.Handle) bool                                { return false }
func (d durations) Stop(cue.Handle)                                       {}
func (d durations) SetVolume(cue.Handle, float64)                         {}

func (d durations) Duration(asset string) time.Duration {
	if d.lib == nil {
		return 0
	}
	return d.lib.Duration(asset)
}

type linter struct {
	src    *prefabs.Source
	assets fs.FS
	out    io.Writer

	problems int
}

func (l *linter) report(format string, args ...any) {
	l.problems++
	fmt.Fprintf(l.out, format+"\n", args...)
}

// run checks every track definition and console script and returns the
// number of problems found.
func (l *linter) run() int {
	var lib *assets.Library
	if l.assets != nil {
		lib = assets.NewLibrary(l.assets, assets.SampleRate)
	}

	logger := log.New(l.out, "", 0)
	b := cue.NewBuilder(cue.Options{
		Engine: durations{lib: lib},
		Loader: prefabs.NewTrackLoader(l.src, true, logger),
		Logger: logger,
	})
	if err := b.Init(); err != nil {
		l.report("%v", err)
	}

	for _, name := range b.TrackNames() {
		l.checkTrack(b.Track(name), lib)
	}

	scripts, err := l.src.ScriptFiles()
	if err != nil {
		l.report("list scripts: %v", err)
	}
	con := console.New(b, logger)
	for _, name := range scripts {
		src, err := l.src.LoadScript(name)
		if err != nil {
			l.report("%v", err)
			continue
		}
		if err := con.CompileScript(name, src); err != nil {
			l.report("%v", err)
		}
	}
	return l.problems
}

func (l *linter) checkTrack(t *cue.Track, lib *assets.Library) {
	if t.SeqCount() == 0 {
		l.report("%s: no sequences", t.Name())
		return
	}
	for id := 0; id < t.SeqCount(); id++ {
		seq, _ := t.Sequence(id)
		if seq.Asset(cue.LayerMain, cue.MoodNeutral) == "" {
			l.report("%s: %s: no %s %s wave, the loop length is unknown", t.Name(), seq.Key, cue.LayerMain, cue.MoodNeutral)
		}
		if lib == nil {
			continue
		}
		for layer := cue.Layer(0); layer < cue.LayerCount; layer++ {
			for mood := cue.Mood(0); mood < cue.MoodCount; mood++ {
				asset := seq.Asset(layer, mood)
				if asset == "" {
					continue
				}
				if _, err := lib.Clip(asset); err != nil {
					l.report("%s: %s: %s %s: %v", t.Name(), seq.Key, layer, mood, err)
				}
			}
		}
	}
}
