package system

// Sweeper releases sounds that finished on their own.
type Sweeper interface {
	Sweep()
}

// CueSystem delivers queued game events and then advances every track.
type CueSystem struct {
	sweeper Sweeper
}

func NewCueSystem(sweeper Sweeper) *CueSystem {
	return &CueSystem{sweeper: sweeper}
}

func (s *CueSystem) Update(w *World) {
	if w == nil || w.Cues == nil {
		return
	}
	w.Events.Dispatch()
	w.Cues.Update()
	if s.sweeper != nil {
		s.sweeper.Sweep()
	}
}
