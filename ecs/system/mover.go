package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// MoverSystem turns a kinematic body around once it has travelled Range from
// where it started. The physics system pushes LinearVelocity into the body.
type MoverSystem struct{}

func NewMoverSystem() *MoverSystem { return &MoverSystem{} }

func (s *MoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), component.LinearVelocityComponent.Kind(), func(e ecs.Entity, mover *component.Mover, transform *component.Transform, vel *component.LinearVelocity) {
		pos := cp.Vector{X: transform.X, Y: transform.Y}
		if !mover.Started {
			mover.Origin = pos
			mover.Started = true
			vel.Value = mover.Velocity
			return
		}

		offset := pos.Sub(mover.Origin)
		if mover.Range > 0 && offset.Length() >= mover.Range && offset.Dot(mover.Velocity) > 0 {
			mover.Velocity = mover.Velocity.Neg()
		}
		vel.Value = mover.Velocity
	})
}
