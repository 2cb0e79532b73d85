package entity

import (
	"fmt"

	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/prefabs"
)

const (
	PlayerPrefab        = "player.yaml"
	RespawnPlayerPrefab = "player_respawn.yaml"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

// NewRespawnedPlayer builds the replacement controller. Its values come from
// its own prefab, never from the entity it replaces.
func NewRespawnedPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, RespawnPlayerPrefab)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := NewPlayer(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// SpawnScene builds every prefab the scene lists, in order. The first failure
// aborts; entities built before it stay in the world.
func SpawnScene(w *ecs.World, scene *prefabs.SceneSpec) ([]ecs.Entity, error) {
	if scene == nil {
		return nil, fmt.Errorf("spawn scene: scene is nil")
	}
	out := make([]ecs.Entity, 0, len(scene.Spawn))
	for _, path := range scene.Spawn {
		e, err := BuildEntity(w, path)
		if err != nil {
			return out, fmt.Errorf("spawn scene: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
