package cue

import "time"

// Handle identifies one emitted sound instance. The zero Handle is the null handle.
type Handle uint64

// SoundEngine is the audio backend. Every method must accept the zero Handle as a no-op.
type SoundEngine interface {
	Emit(asset string, volume float64, level SoundLevel, pitch int) Handle
	IsLive(h Handle) bool
	Stop(h Handle)
	SetVolume(h Handle, volume float64)
	Duration(asset string) time.Duration
}

// Clock reports the current game time.
type Clock interface {
	Now() time.Duration
}

type GameRules interface {
	IsDeathmatch() bool
}

// Scoreboard exposes per-player statistics by player index.
type Scoreboard interface {
	TotalScore(index int) int
	Killstreak(index int) int
}

// Observer reports the local player, if one exists yet.
type Observer interface {
	LocalPlayer() (index int, ok bool)
}

// Loader parses track definitions and registers them with AddTrack.
type Loader interface {
	LoadTracks(b *Builder) error
}

// Game event names the builder listens for.
const (
	EventServerSpawn     = "server_spawn"
	EventLocalTeamChange = "localplayer_changeteam"
	EventPlayerDeath     = "player_death"
	EventWinPanel        = "teamplay_win_panel"
	EventRoundStart      = "teamplay_round_start"
)

// GameEvent is a gameplay notification. UserID is the victim for player_death
// and is one greater than the victim's player index.
type GameEvent struct {
	Name   string
	UserID int
}

type Listener interface {
	FireGameEvent(ev GameEvent)
}

// EventBus delivers named game events to listeners on the update thread.
type EventBus interface {
	Listen(name string, l Listener)
}
