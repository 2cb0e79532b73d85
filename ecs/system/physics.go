package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	DefaultGravityY   = -9.81
	DefaultIterations = 20
	DefaultTPS        = 60

	// DefaultCollisionSlop is the overlap cp tolerates at rest, in meters.
	DefaultCollisionSlop = 0.01
)

// PhysicsConfig sets up the cp space.
type PhysicsConfig struct {
	Gravity    cp.Vector
	Iterations    uint
	TPS           int
	CollisionSlop float64
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:    cp.Vector{X: 0, Y: DefaultGravityY},
		Iterations:    DefaultIterations,
		TPS:           DefaultTPS,
		CollisionSlop: DefaultCollisionSlop,
	}
}

type PhysicsSystem struct {
	space         *cp.Space
	cfg           PhysicsConfig
	handlersReady bool

	entities    map[ecs.Entity]*bodyInfo
	shapeOwners map[*cp.Shape]ecs.Entity
	nextGroup   uint

	warnedPairs map[shapePair]struct{}
}

type bodyInfo struct {
	body        *cp.Body
	shapes      []*cp.Shape
	static      bool
	group       uint
	restitution component.Restitution
}

type shapePair struct {
	a, b *cp.Shape
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.TPS <= 0 {
		cfg.TPS = DefaultTPS
	}
	if cfg.CollisionSlop <= 0 {
		cfg.CollisionSlop = DefaultCollisionSlop
	}
	space := cp.NewSpace()
	space.Iterations = cfg.Iterations
	space.SetCollisionSlop(cfg.CollisionSlop)
	space.SetGravity(cfg.Gravity)
	return &PhysicsSystem{
		space:       space,
		cfg:         cfg,
		entities:    make(map[ecs.Entity]*bodyInfo),
		shapeOwners: make(map[*cp.Shape]ecs.Entity),
		warnedPairs: make(map[shapePair]struct{}),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// TimeStep is the fixed step handed to cp.Space.Step.
func (ps *PhysicsSystem) TimeStep() float64 {
	return 1.0 / float64(ps.cfg.TPS)
}

// Owner returns the entity a shape belongs to.
func (ps *PhysicsSystem) Owner(shape *cp.Shape) (ecs.Entity, bool) {
	if ps == nil || shape == nil {
		return 0, false
	}
	e, ok := ps.shapeOwners[shape]
	return e, ok
}

// Sync creates cp bodies for new entities and removes those of dead ones
// without stepping. Update calls it; probes call it so a body built this tick
// is queryable.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncEntities(w)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)
	ps.applyForces(w)

	ps.space.Step(ps.TimeStep())

	ps.syncTransforms(w)
	ps.clearForces(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewWildcardCollisionHandler(collisionTypeCharacter)
	handler.UserData = ps
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		sys.checkRestitution(arb)
		return true
	}

	ps.handlersReady = true
}

// checkRestitution logs once per shape pair when cp's product of
// elasticities differs from the combine rule configured on the bodies.
func (ps *PhysicsSystem) checkRestitution(arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	pair := shapePair{a: shapeA, b: shapeB}
	if _, seen := ps.warnedPairs[pair]; seen {
		return
	}
	a := ps.restitutionOf(shapeA)
	b := ps.restitutionOf(shapeB)
	want := component.ResolveCombine(a.Combine, b.Combine).Apply(a.Coefficient, b.Coefficient)
	got := shapeA.Elasticity() * shapeB.Elasticity()
	if math.Abs(want-got) < 1e-9 {
		return
	}
	ps.warnedPairs[pair] = struct{}{}
	log.Printf("Physics: restitution rule gives %.3f but cp applies %.3f", want, got)
}

func (ps *PhysicsSystem) restitutionOf(shape *cp.Shape) component.Restitution {
	e, ok := ps.shapeOwners[shape]
	if !ok {
		return component.Restitution{Coefficient: shape.Elasticity()}
	}
	if info := ps.entities[e]; info != nil {
		return info.restitution
	}
	return component.Restitution{}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.RigidBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.createBodyInfo(*transform, rb, ecs.Has(w, e, component.FloatingCharacterComponent.Kind()))
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapeOwners[shape] = e
		}
		rb.Body = info.body
		rb.Shapes = info.shapes
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, rb *component.RigidBody, character bool) *bodyInfo {
	pos := cp.Vector{X: transform.X, Y: transform.Y}
	col := rb.Collider
	info := &bodyInfo{restitution: rb.Restitution}

	var body *cp.Body
	switch rb.Kind {
	case component.BodyStatic:
		body = cp.NewStaticBody()
		info.static = true
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		mass := rb.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := math.Inf(1)
		if !rb.LockRotation {
			if col.Shape == component.ColliderBox {
				moment = cp.MomentForBox(mass, col.Width, col.Height)
			} else {
				a, b := capsuleEnds(col)
				moment = cp.MomentForSegment(mass, a, b, col.Radius)
			}
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(pos)
	body.SetAngle(transform.Rotation)
	ps.space.AddBody(body)

	var shape *cp.Shape
	if col.Shape == component.ColliderBox {
		shape = cp.NewBox(body, col.Width, col.Height, 0)
	} else {
		a, b := capsuleEnds(col)
		shape = cp.NewSegment(body, a, b, col.Radius)
	}
	shape.SetFriction(rb.Friction)
	shape.SetElasticity(rb.Restitution.Coefficient)
	shape.SetCollisionType(collisionTypeSolid)
	if character {
		shape.SetCollisionType(collisionTypeCharacter)
	}
	if !info.static {
		ps.nextGroup++
		info.group = ps.nextGroup
		shape.SetFilter(cp.NewShapeFilter(info.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	}
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

// capsuleEnds returns the local segment of a vertical capsule.
func capsuleEnds(col component.Collider) (cp.Vector, cp.Vector) {
	half := col.Height / 2
	return cp.Vector{X: 0, Y: -half}, cp.Vector{X: 0, Y: half}
}

func (ps *PhysicsSystem) applyForces(w *ecs.World) {
	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.ExternalForceComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, force *component.ExternalForce) {
		if rb.Body == nil || rb.Kind != component.BodyDynamic {
			return
		}
		rb.Body.SetForce(force.Force)
	})

	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.LinearVelocityComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, vel *component.LinearVelocity) {
		if rb.Body == nil || rb.Kind != component.BodyKinematic {
			return
		}
		rb.Body.SetVelocityVector(vel.Value)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rb *component.RigidBody, transform *component.Transform) {
		if rb.Body == nil || rb.Kind == component.BodyStatic {
			return
		}
		pos := rb.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = rb.Body.Angle()

		if vel, ok := ecs.Get(w, e, component.LinearVelocityComponent.Kind()); ok {
			vel.Value = rb.Body.Velocity()
		}
	})
}

func (ps *PhysicsSystem) clearForces(w *ecs.World) {
	ecs.ForEach(w, component.ExternalForceComponent.Kind(), func(e ecs.Entity, force *component.ExternalForce) {
		if !force.Persistent {
			force.Force = cp.Vector{}
		}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.Has(w, e, component.RigidBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.shapeOwners, shape)
			for pair := range ps.warnedPairs {
				if pair.a == shape || pair.b == shape {
					delete(ps.warnedPairs, pair)
				}
			}
		}
		if info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
