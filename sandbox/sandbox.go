// Package sandbox stands in for a running match: it answers the rules,
// scoreboard and observer queries of the cue builder and adds console
// commands that fake gameplay.
package sandbox

import (
	"fmt"
	"strconv"

	"github.com/milk9111/dynamicmusic/console"
	"github.com/milk9111/dynamicmusic/cue"
)

// Pusher queues game events for the next dispatch.
type Pusher interface {
	Push(ev cue.GameEvent)
}

type Game struct {
	Deathmatch bool
	Local      int
	HasLocal   bool

	scores  map[int]int
	streaks map[int]int
	events  Pusher
}

// New returns a deathmatch with the local player in slot 0.
func New(events Pusher) *Game {
	return &Game{
		Deathmatch: true,
		HasLocal:   true,
		scores:     make(map[int]int),
		streaks:    make(map[int]int),
		events:     events,
	}
}

func (g *Game) IsDeathmatch() bool {
	return g.Deathmatch
}

func (g *Game) LocalPlayer() (int, bool) {
	return g.Local, g.HasLocal
}

func (g *Game) TotalScore(index int) int {
	return g.scores[index]
}

func (g *Game) Killstreak(index int) int {
	return g.streaks[index]
}

func (g *Game) SetScore(index, score int) {
	g.scores[index] = score
}

func (g *Game) SetStreak(index, streak int) {
	g.streaks[index] = streak
}

// Fire queues ev.
func (g *Game) Fire(ev cue.GameEvent) {
	if g.events == nil {
		return
	}
	g.events.Push(ev)
}

// RoundStart restarts the round.
func (g *Game) RoundStart() {
	g.Fire(cue.GameEvent{Name: cue.EventRoundStart})
}

// LocalDeath kills the local player and ends their streak.
func (g *Game) LocalDeath() {
	g.streaks[g.Local] = 0
	g.Fire(cue.GameEvent{Name: cue.EventPlayerDeath, UserID: g.Local + 1})
}

// Frag has the local player kill someone else.
func (g *Game) Frag() {
	g.scores[g.Local]++
	g.streaks[g.Local]++
	victim := g.Local + 1
	g.Fire(cue.GameEvent{Name: cue.EventPlayerDeath, UserID: victim + 1})
}

// WinPanel ends the round.
func (g *Game) WinPanel() {
	g.Fire(cue.GameEvent{Name: cue.EventWinPanel})
}

// Register adds the sim_* commands to c.
func (g *Game) Register(c *console.Console) {
	c.Register(console.Command{
		Name:  "sim_event",
		Usage: "sim_event <name> [userid]",
		Help:  "queue a game event",
		Run:   g.simEvent,
	})
	c.Register(console.Command{
		Name:  "sim_score",
		Usage: "sim_score <n>",
		Help:  "set the local player's total score",
		Run: g.intCommand("sim_score <n>", func(n int) {
			g.SetScore(g.Local, n)
		}),
	})
	c.Register(console.Command{
		Name:  "sim_streak",
		Usage: "sim_streak <n>",
		Help:  "set the local player's killstreak",
		Run: g.intCommand("sim_streak <n>", func(n int) {
			g.SetStreak(g.Local, n)
		}),
	})
	c.Register(console.Command{
		Name:  "sim_local",
		Usage: "sim_local <index|-1>",
		Help:  "pick the local player, -1 for none",
		Run: g.intCommand("sim_local <index|-1>", func(n int) {
			g.Local, g.HasLocal = max(n, 0), n >= 0
		}),
	})
	c.Register(console.Command{
		Name:  "sim_deathmatch",
		Usage: "sim_deathmatch <0|1>",
		Help:  "switch the game mode",
		Run: g.intCommand("sim_deathmatch <0|1>", func(n int) {
			g.Deathmatch = n != 0
		}),
	})
}

func (g *Game) simEvent(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: sim_event <name> [userid]", console.ErrUsage)
	}
	ev := cue.GameEvent{Name: args[0]}
	if len(args) == 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: sim_event: %q is not a number", console.ErrUsage, args[1])
		}
		ev.UserID = id
	}
	g.Fire(ev)
	return nil
}

func (g *Game) intCommand(usage string, apply func(int)) func([]string) error {
	return func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: %s", console.ErrUsage, usage)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s: %q is not a number", console.ErrUsage, usage, args[0])
		}
		apply(n)
		return nil
	}
}
