package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dynamicmusic/assets"
	"github.com/milk9111/dynamicmusic/config"
	"github.com/milk9111/dynamicmusic/console"
	"github.com/milk9111/dynamicmusic/cue"
	"github.com/milk9111/dynamicmusic/prefabs"
	"github.com/milk9111/dynamicmusic/sandbox"
	"github.com/milk9111/dynamicmusic/system"
)

const (
	baseWidth  = 640
	baseHeight = 360

	autoexecScript = "autoexec.tengo"
)

type Game struct {
	frames int

	cfg       config.Config
	logger    *log.Logger
	engine    *assets.Engine
	match     *sandbox.Game
	world     *system.World
	scheduler *system.Scheduler
	watcher   *prefabs.Watcher
}

func NewGame(cfg config.Config) (*Game, error) {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	audioCtx := audio.NewContext(cfg.SampleRate)
	lib := assets.NewLibrary(os.DirFS(cfg.AssetsDir), cfg.SampleRate)
	engine := assets.NewEngine(audioCtx, lib, logger)

	clock := system.NewClock(ebiten.TPS())
	events := system.NewEventQueue()
	match := sandbox.New(events)

	src := prefabs.NewSource(cfg.TracksDir)
	loader := prefabs.NewTrackLoader(src, cfg.Strict, logger)

	cues := cue.NewBuilder(cue.Options{
		Engine:          engine,
		Clock:           clock,
		Rules:           match,
		Scores:          match,
		Observer:        match,
		Events:          events,
		Loader:          loader,
		DeathmatchTrack: cfg.Deathmatch,
		Logger:          logger,
		Debug:           cfg.Debug,
	})
	if err := cues.Init(); err != nil {
		if cfg.Strict {
			return nil, err
		}
		logger.Printf("%v", err)
	}

	con := console.New(cues, logger)
	match.Register(con)

	g := &Game{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		match:  match,
		world: &system.World{
			Clock:   clock,
			Events:  events,
			Cues:    cues,
			Console: con,
		},
	}

	g.scheduler = system.NewScheduler(
		system.NewClockSystem(),
		system.NewConsoleSystem(readLines(os.Stdin), logger),
	)
	if cfg.Watch {
		w, err := prefabs.NewWatcher(cfg.TracksDir)
		if err != nil {
			logger.Printf("watch %s: %v", cfg.TracksDir, err)
		} else {
			g.watcher = w
			g.scheduler.Add(system.NewWatcherReloadSystem(w, loader, logger))
		}
	}
	g.scheduler.Add(system.NewCueSystem(engine))

	if script, err := src.LoadScript(autoexecScript); err == nil {
		if err := con.RunScript(context.Background(), autoexecScript, script); err != nil {
			logger.Printf("%v", err)
		}
	}

	return g, nil
}

// readLines feeds console input to the update thread.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string, 8)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

func (g *Game) Update() error {
	g.frames++

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.match.RoundStart()
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.match.Frag()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.match.LocalDeath()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.match.WinPanel()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.exec("skipdynamic")
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.exec("stopdynamic")
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) exec(line string) {
	if err := g.world.Console.Exec(line); err != nil {
		g.logger.Printf("console: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "Frames: %d    FPS: %.2f\n", g.frames, ebiten.ActualFPS())
	fmt.Fprintf(&b, "Time: %v\n\n", g.world.Clock.Now().Truncate(100*time.Millisecond))

	cues := g.world.Cues
	if t := cues.CurrentTrack(); t != nil {
		part := "-"
		if seq, ok := t.Sequence(t.CurrentSeqID()); ok {
			part = seq.Name
		}
		fmt.Fprintf(&b, "Track: %s (playing %v)\n", t.Name(), t.Playing())
		fmt.Fprintf(&b, "Part:  %d/%d %s\n", t.CurrentSeqID(), t.SeqCount(), part)
	} else {
		b.WriteString("Track: none\n")
	}
	fmt.Fprintf(&b, "Mood:  %s    skip %v\n", cues.Mood(), cues.ShouldSkip())
	fmt.Fprintf(&b, "Voices: %d\n\n", g.engine.Voices())

	local, _ := g.match.LocalPlayer()
	fmt.Fprintf(&b, "Score: %d    Streak: %d\n\n", g.match.TotalScore(local), g.match.Killstreak(local))
	b.WriteString("R round start  K frag  D die  W win panel\nSPACE skip  S stop  (stdin: console commands, try help)\n")

	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close silences everything and stops watching for changes.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.world.Cues.Shutdown()
	g.engine.Close()
}
