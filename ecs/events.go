package ecs

// Event is a generic event payload flowing out of systems.
type Event struct {
	Type string
	Data any
}

// EventHit is emitted once per hit candidate found by the hit-test pass.
const EventHit = "hit"

// HitEvent carries a detected attack/vulnerability overlap to external
// policy code. The collision core decides nothing about its consequences.
type HitEvent struct {
	Attacker Entity
	Victim   Entity
}

// EventQueue is a simple FIFO drained by the frame driver after systems run.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
