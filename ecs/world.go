package ecs

import "github.com/milk9111/floater/ecs/component"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, the deferred command queue and the
// event queue. It is not safe for concurrent use.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	commands Commands
	events   EventQueue
	tick     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// Commands returns the deferred command queue. Queued commands run when the
// scheduler finishes the tick.
func (w *World) Commands() *Commands {
	if w == nil {
		return nil
	}
	return &w.commands
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Tick returns the number of completed scheduler steps.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) removeAll(e Entity) {
	for _, s := range w.stores {
		s.Remove(e.id())
	}
}
