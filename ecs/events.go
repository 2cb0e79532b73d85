package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventControllerSpawned   = "controller_spawned"
	EventControllerDestroyed = "controller_destroyed"
	EventRespawnIgnored      = "respawn_ignored"
)

// ControllerEvent describes a floating character lifecycle change.
type ControllerEvent struct {
	Entity  Entity
	SpawnID string
	Prefab  string
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
