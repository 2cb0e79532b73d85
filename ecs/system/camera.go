package system

import (
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward the player. The target is looked up again
// whenever it dies, so a respawned player is picked up.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || !camComp.Follow {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		target, ok := w.First(component.PlayerTagComponent.Kind())
		if !ok {
			return
		}
		cs.targetEntity = target
	}

	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	k := camComp.Smoothing
	if k <= 0 || k > 1 {
		k = 1
	}
	camTransform.X += (targetTransform.X - camTransform.X) * k
	camTransform.Y += (targetTransform.Y - camTransform.Y) * k
}
