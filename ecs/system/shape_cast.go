package system

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// ShapeCastSystem refreshes the ShapeHits of every ShapeCaster. A caster
// casts from its own body, or from its parent's when it has none.
type ShapeCastSystem struct {
	physics *PhysicsSystem
}

func NewShapeCastSystem(physics *PhysicsSystem) *ShapeCastSystem {
	return &ShapeCastSystem{physics: physics}
}

func (s *ShapeCastSystem) Update(w *ecs.World) {
	if s == nil || s.physics == nil || w == nil {
		return
	}

	s.physics.Sync(w)

	ecs.ForEach2(w, component.ShapeCasterComponent.Kind(), component.ShapeHitsComponent.Kind(), func(e ecs.Entity, caster *component.ShapeCaster, hits *component.ShapeHits) {
		hits.Hits = nil

		rb, ok := castBody(w, e)
		if !ok {
			return
		}

		filter := cp.SHAPE_FILTER_ALL
		if caster.IgnoreSelf && len(rb.Shapes) > 0 {
			filter.Group = rb.Shapes[0].Filter.Group
		}

		origin := rb.Body.Position().Add(caster.Offset)
		hits.Hits = CastShape(s.physics.Space(), origin, *caster, filter, s.physics.Owner)
	})
}

func castBody(w *ecs.World, e ecs.Entity) (*component.RigidBody, bool) {
	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok && rb.Body != nil {
		return rb, true
	}
	parent, ok := ecs.Get(w, e, component.ParentComponent.Kind())
	if !ok {
		return nil, false
	}
	rb, ok := ecs.Get(w, ecs.Entity(parent.Entity), component.RigidBodyComponent.Kind())
	if !ok || rb.Body == nil {
		return nil, false
	}
	return rb, true
}

// CastShape sweeps the caster's leading cap circle from origin along its
// direction for at most MaxTimeOfImpact meters. Hits are ordered by time of
// impact and capped at MaxHits; sensors never count. owner maps a struck shape to its entity and
// may be nil.
func CastShape(space *cp.Space, origin cp.Vector, caster component.ShapeCaster, filter cp.ShapeFilter, owner func(*cp.Shape) (ecs.Entity, bool)) []component.ShapeHit {
	if space == nil || caster.MaxTimeOfImpact <= 0 || caster.Direction.LengthSq() == 0 {
		return nil
	}

	dir := caster.Direction.Normalize()
	start := origin.Add(dir.Mult(caster.Height / 2))
	end := start.Add(dir.Mult(caster.MaxTimeOfImpact))

	var hits []component.ShapeHit
	space.SegmentQuery(start, end, caster.Radius, filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		if shape.Sensor() {
			return
		}
		if alpha <= 0 {
			// Started overlapping: report the nearest surface point.
			pq := shape.PointQuery(start)
			point = pq.Point
			normal = dir.Neg()
			if pq.Gradient.LengthSq() > 0 {
				normal = pq.Gradient.Normalize()
			}
			alpha = 0
		}

		hit := component.ShapeHit{
			Point1:       start.Sub(normal.Mult(caster.Radius)),
			Point2:       point,
			Normal:       normal,
			TimeOfImpact: alpha * caster.MaxTimeOfImpact,
		}
		if owner != nil {
			if e, ok := owner(shape); ok {
				hit.Entity = uint64(e)
			}
		}
		hits = append(hits, hit)
	}, nil)

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].TimeOfImpact < hits[j].TimeOfImpact
	})

	maxHits := caster.MaxHits
	if maxHits <= 0 {
		maxHits = 1
	}
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits
}
