package system

import "github.com/milk9111/dynamicmusic/cue"

// EventQueue is a FIFO of game events delivered to listeners by name when
// dispatched. It implements cue.EventBus.
type EventQueue struct {
	items     []cue.GameEvent
	listeners map[string][]cue.Listener
}

func NewEventQueue() *EventQueue {
	return &EventQueue{listeners: make(map[string][]cue.Listener)}
}

// Listen subscribes l to events called name.
func (q *EventQueue) Listen(name string, l cue.Listener) {
	if q == nil || l == nil {
		return
	}
	if q.listeners == nil {
		q.listeners = make(map[string][]cue.Listener)
	}
	q.listeners[name] = append(q.listeners[name], l)
}

// Push adds an event.
func (q *EventQueue) Push(ev cue.GameEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, ev)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []cue.GameEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Dispatch delivers every queued event in order and returns how many were
// delivered. Events pushed by a listener wait for the next dispatch.
func (q *EventQueue) Dispatch() int {
	events := q.Drain()
	for _, ev := range events {
		for _, l := range q.listeners[ev.Name] {
			l.FireGameEvent(ev)
		}
	}
	return len(events)
}
