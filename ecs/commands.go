package ecs

import "fmt"

// SpawnFunc builds one entity tree in w.
type SpawnFunc func(w *World) (Entity, error)

type commandKind int

const (
	commandDestroy commandKind = iota
	commandDestroyRecursive
	commandSpawn
)

type command struct {
	kind   commandKind
	target Entity
	label  string
	spawn  SpawnFunc
}

// Commands queues structural changes so systems never mutate the store while
// other systems iterate it. The queue is applied in FIFO order between ticks.
type Commands struct {
	queue []command
}

// Destroy queues removal of e alone.
func (c *Commands) Destroy(e Entity) {
	if c == nil {
		return
	}
	c.queue = append(c.queue, command{kind: commandDestroy, target: e})
}

// DestroyRecursive queues removal of e and everything attached under it.
func (c *Commands) DestroyRecursive(e Entity) {
	if c == nil {
		return
	}
	c.queue = append(c.queue, command{kind: commandDestroyRecursive, target: e})
}

// Spawn queues an entity build. label only appears in errors.
func (c *Commands) Spawn(label string, fn SpawnFunc) {
	if c == nil || fn == nil {
		return
	}
	c.queue = append(c.queue, command{kind: commandSpawn, label: label, spawn: fn})
}

// Len returns the number of pending commands.
func (c *Commands) Len() int {
	if c == nil {
		return 0
	}
	return len(c.queue)
}

// FlushResult reports what a flush did.
type FlushResult struct {
	Destroyed int
	Spawned   []Entity
	Errors    []error
}

// FlushCommands applies every queued command in order. Commands queued while
// flushing (for example by a spawn function) run in the same flush. Spawn
// failures are collected, not retried.
func FlushCommands(w *World) FlushResult {
	var res FlushResult
	if w == nil {
		return res
	}
	for len(w.commands.queue) > 0 {
		cmd := w.commands.queue[0]
		w.commands.queue = w.commands.queue[1:]
		switch cmd.kind {
		case commandDestroy:
			if DestroyEntity(w, cmd.target) {
				res.Destroyed++
			}
		case commandDestroyRecursive:
			res.Destroyed += DestroyRecursive(w, cmd.target)
		case commandSpawn:
			e, err := cmd.spawn(w)
			if err != nil {
				res.Errors = append(res.Errors, fmt.Errorf("spawn %s: %w", cmd.label, err))
				continue
			}
			res.Spawned = append(res.Spawned, e)
		}
	}
	w.commands.queue = nil
	return res
}
