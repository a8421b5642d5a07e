package sandbox

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/milk9111/dynamicmusic/console"
	"github.com/milk9111/dynamicmusic/cue"
	"github.com/milk9111/dynamicmusic/cue/cuetest"
	"github.com/milk9111/dynamicmusic/system"
)

func newWorld(t *testing.T) (*Game, *system.World, *system.Scheduler) {
	t.Helper()
	events := system.NewEventQueue()
	game := New(events)
	clock := system.NewClock(60)
	cues := cue.NewBuilder(cue.Options{
		Engine:   cuetest.NewEngine(),
		Clock:    clock,
		Rules:    game,
		Scores:   game,
		Observer: game,
		Events:   events,
		Logger:   log.New(io.Discard, "", 0),
	})
	if err := cues.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	cuetest.Track(cues, cue.DeathmatchTrack, 3)
	con := console.New(cues, log.New(io.Discard, "", 0))
	game.Register(con)

	w := &system.World{Clock: clock, Events: events, Cues: cues, Console: con}
	s := system.NewScheduler(system.NewClockSystem(), system.NewCueSystem(nil))
	return game, w, s
}

func TestMatchDrivesMood(t *testing.T) {
	game, w, s := newWorld(t)

	game.RoundStart()
	s.Update(w)
	if cur := w.Cues.CurrentTrack(); cur == nil || cur.CurrentSeqID() != 0 {
		t.Fatalf("expected the deathmatch intro to play")
	}

	for i := 0; i < 4; i++ {
		game.Frag()
	}
	s.Update(w)
	if w.Cues.Mood() != cue.MoodDanger {
		t.Fatalf("expected danger after four frags, got %s", w.Cues.Mood())
	}
	// Game time has passed the zero-length intro, so the skip lands this frame.
	if cur := w.Cues.CurrentTrack(); cur.CurrentSeqID() != 1 || w.Cues.ShouldSkip() {
		t.Fatalf("expected the intro to be skipped once scoring, at %d", cur.CurrentSeqID())
	}

	game.LocalDeath()
	s.Update(w)
	if w.Cues.Mood() != cue.MoodNeutral {
		t.Fatalf("expected neutral after dying, got %s", w.Cues.Mood())
	}
	if game.Killstreak(game.Local) != 0 {
		t.Fatalf("expected streak reset")
	}

	game.WinPanel()
	s.Update(w)
	if w.Cues.CurrentTrack().Playing() {
		t.Fatalf("expected the track to stop on the win panel")
	}
}

func TestSimCommands(t *testing.T) {
	game, w, s := newWorld(t)

	for _, line := range []string{
		"sim_score 5",
		"sim_streak 7",
		"sim_event teamplay_round_start",
		"sim_event player_death 9",
	} {
		if err := w.Console.Exec(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if game.TotalScore(0) != 5 || game.Killstreak(0) != 7 {
		t.Fatalf("expected score and streak to be set")
	}
	s.Update(w)
	if w.Cues.Mood() != cue.MoodDanger {
		t.Fatalf("expected danger, got %s", w.Cues.Mood())
	}

	if err := w.Console.Exec("sim_local -1"); err != nil {
		t.Fatalf("sim_local: %v", err)
	}
	if _, ok := game.LocalPlayer(); ok {
		t.Fatalf("expected no local player")
	}
	if err := w.Console.Exec("sim_deathmatch 0"); err != nil || game.IsDeathmatch() {
		t.Fatalf("expected deathmatch off, err %v", err)
	}

	for _, line := range []string{"sim_event", "sim_event a b", "sim_score", "sim_streak x"} {
		if err := w.Console.Exec(line); !errors.Is(err, console.ErrUsage) {
			t.Fatalf("%s: expected usage error, got %v", line, err)
		}
	}
}
