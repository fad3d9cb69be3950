package ecs

// EventType identifies world events.
type EventType string

const (
	EventDeath    EventType = "death"
	EventSpawned  EventType = "spawned"
	EventScripted EventType = "scripted"
)

// Event is a world event raised during a frame and consumed by systems in the
// same frame.
type Event struct {
	Type   EventType
	Entity Entity
	Name   string
	Data   any
}

// EventQueue is a simple FIFO queue.
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

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Take removes and returns the queued events of type t, keeping the rest in
// order.
func (q *EventQueue) Take(t EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var taken []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			taken = append(taken, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return taken
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
