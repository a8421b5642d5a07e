package system

import (
	"github.com/milk9111/dynamicmusic/console"
	"github.com/milk9111/dynamicmusic/cue"
)

// World is the per-frame state shared by the systems.
type World struct {
	Frame   int
	Clock   *Clock
	Events  *EventQueue
	Cues    *cue.Builder
	Console *console.Console
}
