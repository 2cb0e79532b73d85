package ecs

import "log"

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one tick: every system in order, then the deferred commands.
func (s *Scheduler) Update(w *World) FlushResult {
	if w == nil {
		return FlushResult{}
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	res := FlushCommands(w)
	for _, err := range res.Errors {
		log.Printf("Scheduler: tick %d: %v", w.Tick(), err)
	}
	w.tick++
	return res
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
