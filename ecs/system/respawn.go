package system

import (
	"log"

	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// RespawnSystem replaces the floating character when its Input reports a
// respawn edge. The old entity tree and the new one are swapped in the same
// command flush: destroy first, then spawn.
type RespawnSystem struct {
	spawn ecs.SpawnFunc
	label string
}

func NewRespawnSystem(label string, spawn ecs.SpawnFunc) *RespawnSystem {
	return &RespawnSystem{spawn: spawn, label: label}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.spawn == nil {
		return
	}

	// No controller means no respawn, whatever the input says.
	player, ok := w.First(component.FloatingCharacterComponent.Kind())
	if !ok {
		return
	}

	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !input.RespawnPressed {
		return
	}
	input.RespawnPressed = false

	spawnID := ""
	if info, ok := ecs.Get(w, player, component.SpawnInfoComponent.Kind()); ok {
		spawnID = info.ID.String()
	}
	log.Printf("Respawn: replacing %s (spawn %s)", player, spawnID)

	w.Events().Push(ecs.Event{
		Type: ecs.EventControllerDestroyed,
		Data: ecs.ControllerEvent{Entity: player, SpawnID: spawnID},
	})
	w.Commands().DestroyRecursive(player)
	w.Commands().Spawn(s.label, s.spawn)
}
