package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

func TestMoverOscillates(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 7, Y: -1}))
	mustAdd(t, ecs.Add(w, e, component.LinearVelocityComponent.Kind(), &component.LinearVelocity{}))
	mustAdd(t, ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Velocity: cp.Vector{X: 0, Y: 1}, Range: 1}))

	sys := NewMoverSystem()
	steps := []struct {
		y     float64
		wantY float64
	}{
		{y: -1, wantY: 1},
		{y: -0.5, wantY: 1},
		{y: 0, wantY: -1},
		{y: -0.5, wantY: -1},
		{y: -2, wantY: 1},
	}

	for i, step := range steps {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		tr.Y = step.y
		sys.Update(w)
		vel, _ := ecs.Get(w, e, component.LinearVelocityComponent.Kind())
		if vel.Value.Y != step.wantY {
			t.Fatalf("step %d at y=%v: expected vy %v, got %v", i, step.y, step.wantY, vel.Value.Y)
		}
	}
}
