package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// Up is the world up axis.
var Up = cp.Vector{X: 0, Y: 1}

// GroundVelocityFunc looks up the linear velocity of a struck entity.
type GroundVelocityFunc func(entity uint64) (cp.Vector, bool)

// SpringDamperForce computes the hover force for one character from its probe
// hits. Only the first hit counts. With no hits it returns false and the
// caller must not touch the force.
//
// The spring term is distance + RideHeight, as tuned; it is not a
// displacement from a rest length.
func SpringDamperForce(up, vSelf cp.Vector, hits []component.ShapeHit, groundVelocity GroundVelocityFunc, tuning component.FloatingCharacter) (cp.Vector, bool) {
	if len(hits) == 0 {
		return cp.Vector{}, false
	}
	hit := hits[0]
	distance := hit.Point1.Distance(hit.Point2)

	var vGround cp.Vector
	if groundVelocity != nil {
		if v, ok := groundVelocity(hit.Entity); ok {
			vGround = v
		}
	}

	relativeSpeed := up.Dot(vSelf) - up.Dot(vGround)
	x := distance + tuning.RideHeight
	force := x*tuning.SpringStrength - relativeSpeed*tuning.SpringDamper
	return up.Mult(force), true
}

// FloatingSystem writes the hover force of every floating character from the
// hits of its child probe.
type FloatingSystem struct {
	up cp.Vector
}

func NewFloatingSystem() *FloatingSystem {
	return &FloatingSystem{up: Up}
}

func (s *FloatingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	groundVelocity := func(entity uint64) (cp.Vector, bool) {
		v, ok := ecs.Get(w, ecs.Entity(entity), component.LinearVelocityComponent.Kind())
		if !ok {
			return cp.Vector{}, false
		}
		return v.Value, true
	}

	ecs.ForEach3(w, component.FloatingCharacterComponent.Kind(), component.LinearVelocityComponent.Kind(), component.ExternalForceComponent.Kind(), func(e ecs.Entity, tuning *component.FloatingCharacter, vel *component.LinearVelocity, force *component.ExternalForce) {
		hits, ok := probeHits(w, e)
		if !ok {
			return
		}
		f, ok := SpringDamperForce(s.up, vel.Value, hits.Hits, groundVelocity, *tuning)
		if !ok {
			return
		}
		force.Force = force.Force.Add(f)
	})
}

// probeHits finds the ShapeHits on e or on its first child that has them.
func probeHits(w *ecs.World, e ecs.Entity) (*component.ShapeHits, bool) {
	if hits, ok := ecs.Get(w, e, component.ShapeHitsComponent.Kind()); ok {
		return hits, true
	}
	children, ok := ecs.Get(w, e, component.ChildrenComponent.Kind())
	if !ok {
		return nil, false
	}
	for _, child := range children.Entities {
		if hits, ok := ecs.Get(w, ecs.Entity(child), component.ShapeHitsComponent.Kind()); ok {
			return hits, true
		}
	}
	return nil, false
}
