package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

func addBody(t *testing.T, w *ecs.World, x, y float64, rb component.RigidBody) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.RigidBodyComponent.Kind(), &rb))
	mustAdd(t, ecs.Add(w, e, component.LinearVelocityComponent.Kind(), &component.LinearVelocity{}))
	return e
}

func capsuleBody() component.RigidBody {
	return component.RigidBody{
		Kind:         component.BodyDynamic,
		LockRotation: true,
		Mass:         1,
		Collider:     component.Collider{Shape: component.ColliderCapsule, Height: 1, Radius: 0.5},
	}
}

func groundBody() component.RigidBody {
	return component.RigidBody{
		Kind:     component.BodyStatic,
		Collider: component.Collider{Shape: component.ColliderBox, Width: 5, Height: 0.5},
	}
}

func TestPhysicsForceSlot(t *testing.T) {
	tests := []struct {
		name       string
		persistent bool
		wantForce  cp.Vector
	}{
		{name: "transient_cleared", persistent: false, wantForce: cp.Vector{}},
		{name: "persistent_kept", persistent: true, wantForce: cp.Vector{X: 0, Y: 20}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(DefaultPhysicsConfig())
			e := addBody(t, w, 0, 10, capsuleBody())
			mustAdd(t, ecs.Add(w, e, component.ExternalForceComponent.Kind(), &component.ExternalForce{Force: cp.Vector{X: 0, Y: 20}, Persistent: tc.persistent}))

			ps.Update(w)

			force, _ := ecs.Get(w, e, component.ExternalForceComponent.Kind())
			if force.Force != tc.wantForce {
				t.Fatalf("expected force %v after step, got %v", tc.wantForce, force.Force)
			}
			vel, _ := ecs.Get(w, e, component.LinearVelocityComponent.Kind())
			want := (DefaultGravityY + 20) * ps.TimeStep()
			if math.Abs(vel.Value.Y-want) > 1e-9 {
				t.Fatalf("expected vy %v, got %v", want, vel.Value.Y)
			}
		})
	}
}

func TestPhysicsRestingContactDepth(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	addBody(t, w, 0, -2, groundBody())
	// Ground top is -1.75; the capsule bottom is 1.0 below its center.
	e := addBody(t, w, 0, -0.7, capsuleBody())

	for i := 0; i < 240; i++ {
		ps.Update(w)
	}

	transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if transform.Y < -0.78 || transform.Y > -0.74 {
		t.Fatalf("expected capsule resting at about -0.75, got %.4f", transform.Y)
	}
}

func TestPhysicsBodyKinds(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultPhysicsConfig())

	ground := addBody(t, w, 0, -2, groundBody())
	platform := addBody(t, w, 7, -1, component.RigidBody{
		Kind:     component.BodyKinematic,
		Collider: component.Collider{Shape: component.ColliderBox, Width: 3, Height: 0.25},
	})
	vel, _ := ecs.Get(w, platform, component.LinearVelocityComponent.Kind())
	vel.Value = cp.Vector{X: 0, Y: 0.6}

	for i := 0; i < 60; i++ {
		ps.Update(w)
	}

	gt, _ := ecs.Get(w, ground, component.TransformComponent.Kind())
	if gt.X != 0 || gt.Y != -2 {
		t.Fatalf("static body moved to %v", gt)
	}
	pt, _ := ecs.Get(w, platform, component.TransformComponent.Kind())
	if math.Abs(pt.Y-(-1+0.6)) > 1e-6 {
		t.Fatalf("expected kinematic body near y=-0.4 after 1s, got %v", pt.Y)
	}
	if v, _ := ecs.Get(w, platform, component.LinearVelocityComponent.Kind()); v.Value.Y != 0.6 {
		t.Fatalf("kinematic velocity should be kept, got %v", v.Value)
	}
}

func TestPhysicsLockRotation(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	addBody(t, w, 0, -2, groundBody())
	player := addBody(t, w, 2.4, 0, capsuleBody())

	for i := 0; i < 120; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Rotation != 0 {
		t.Fatalf("locked body rotated to %v", tr.Rotation)
	}
	if tr.Y > 0 || tr.Y < -1.5 {
		t.Fatalf("expected the capsule to settle on the ground edge, got y=%v", tr.Y)
	}
}

func TestPhysicsRemovesDeadBodies(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	e := addBody(t, w, 0, 0, capsuleBody())
	addBody(t, w, 0, -2, groundBody())

	ps.Update(w)
	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	shape := rb.Shapes[0]
	if _, ok := ps.Owner(shape); !ok {
		t.Fatalf("shape should map back to its entity")
	}

	ecs.DestroyEntity(w, e)
	ps.Update(w)

	if len(ps.entities) != 1 {
		t.Fatalf("expected only the ground to remain, got %d bodies", len(ps.entities))
	}
	if _, ok := ps.Owner(shape); ok {
		t.Fatalf("dead shape still mapped")
	}
	if shape.Space() != nil {
		t.Fatalf("dead shape still in the space")
	}
}

func TestPhysicsUniqueFilterGroups(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	a := addBody(t, w, 0, 0, capsuleBody())
	b := addBody(t, w, 3, 0, capsuleBody())
	g := addBody(t, w, 0, -2, groundBody())
	ps.Sync(w)

	group := func(e ecs.Entity) uint {
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		return rb.Shapes[0].Filter.Group
	}
	if group(a) == cp.NO_GROUP || group(a) == group(b) {
		t.Fatalf("dynamic bodies need distinct groups, got %d and %d", group(a), group(b))
	}
	if group(g) != cp.NO_GROUP {
		t.Fatalf("static bodies should not be grouped, got %d", group(g))
	}
}
