package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

func groundProbe(maxTOI float64) component.ShapeCaster {
	return component.ShapeCaster{
		Radius:          0.35,
		Height:          1.0,
		Offset:          cp.Vector{X: 0, Y: -0.05},
		Direction:       cp.Vector{X: 0, Y: -1},
		MaxTimeOfImpact: maxTOI,
		MaxHits:         1,
		IgnoreSelf:      true,
	}
}

// probeScene places the player capsule so that its probe circle starts
// 0.85 m above the ground top face.
func probeScene(t *testing.T, maxTOI float64) (*ecs.World, *PhysicsSystem, ecs.Entity, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	ground := addBody(t, w, 0, -2, groundBody())
	player := addBody(t, w, 0, 0, capsuleBody())

	probe := ecs.CreateEntity(w)
	caster := groundProbe(maxTOI)
	mustAdd(t, ecs.Add(w, probe, component.ShapeCasterComponent.Kind(), &caster))
	mustAdd(t, ecs.Add(w, probe, component.ShapeHitsComponent.Kind(), &component.ShapeHits{}))
	mustAdd(t, ecs.Add(w, probe, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(player)}))
	mustAdd(t, ecs.Add(w, player, component.ChildrenComponent.Kind(), &component.Children{Entities: []uint64{uint64(probe)}}))
	return w, ps, ground, player, probe
}

func TestShapeCastSystem(t *testing.T) {
	tests := []struct {
		name    string
		maxTOI  float64
		wantHit bool
	}{
		{name: "short_probe_misses", maxTOI: 0.5, wantHit: false},
		{name: "long_probe_hits", maxTOI: 5.0, wantHit: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, ps, ground, _, probe := probeScene(t, tc.maxTOI)
			NewShapeCastSystem(ps).Update(w)

			hits, _ := ecs.Get(w, probe, component.ShapeHitsComponent.Kind())
			if hits.IsEmpty() == tc.wantHit {
				t.Fatalf("expected hit=%v, got %+v", tc.wantHit, hits.Hits)
			}
			if !tc.wantHit {
				return
			}

			hit := hits.Hits[0]
			if hit.Entity != uint64(ground) {
				t.Fatalf("expected ground %d, got %d", uint64(ground), hit.Entity)
			}
			if math.Abs(hit.TimeOfImpact-0.85) > 1e-6 {
				t.Fatalf("expected time of impact 0.85, got %v", hit.TimeOfImpact)
			}
			if math.Abs(hit.Point1.Distance(hit.Point2)-0.85) > 1e-6 {
				t.Fatalf("expected point distance 0.85, got %v", hit.Point1.Distance(hit.Point2))
			}
			if math.Abs(hit.Point2.Y-(-1.75)) > 1e-6 {
				t.Fatalf("expected Point2 on the ground top, got %v", hit.Point2)
			}
			if hit.Normal.Y < 0.99 {
				t.Fatalf("expected an upward normal, got %v", hit.Normal)
			}
		})
	}
}

func TestShapeCastRecomputesEachTick(t *testing.T) {
	w, ps, ground, _, probe := probeScene(t, 5.0)
	cast := NewShapeCastSystem(ps)
	cast.Update(w)

	ecs.DestroyEntity(w, ground)
	cast.Update(w)

	hits, _ := ecs.Get(w, probe, component.ShapeHitsComponent.Kind())
	if !hits.IsEmpty() {
		t.Fatalf("stale hits survived: %+v", hits.Hits)
	}
}

func TestShapeCastNoParentBody(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	probe := ecs.CreateEntity(w)
	caster := groundProbe(5)
	mustAdd(t, ecs.Add(w, probe, component.ShapeCasterComponent.Kind(), &caster))
	mustAdd(t, ecs.Add(w, probe, component.ShapeHitsComponent.Kind(), &component.ShapeHits{Hits: []component.ShapeHit{{Entity: 1}}}))

	NewShapeCastSystem(ps).Update(w)

	hits, _ := ecs.Get(w, probe, component.ShapeHitsComponent.Kind())
	if !hits.IsEmpty() {
		t.Fatalf("orphan probe should report nothing, got %+v", hits.Hits)
	}
}

func TestCastShapeOrdersAndCaps(t *testing.T) {
	space := cp.NewSpace()
	for _, y := range []float64{-3, -1, -2} {
		shape := cp.NewBox2(space.StaticBody, cp.BB{L: -1, B: y - 0.1, R: 1, T: y}, 0)
		space.AddShape(shape)
	}
	sensor := cp.NewBox2(space.StaticBody, cp.BB{L: -1, B: -0.6, R: 1, T: -0.5}, 0)
	sensor.SetSensor(true)
	space.AddShape(sensor)

	caster := component.ShapeCaster{
		Radius:          0.1,
		Direction:       cp.Vector{X: 0, Y: -1},
		MaxTimeOfImpact: 10,
		MaxHits:         2,
	}
	hits := CastShape(space, cp.Vector{}, caster, cp.SHAPE_FILTER_ALL, nil)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if math.Abs(hits[0].TimeOfImpact-0.9) > 1e-6 || math.Abs(hits[1].TimeOfImpact-1.9) > 1e-6 {
		t.Fatalf("expected hits ordered at 0.9 and 1.9, got %v and %v", hits[0].TimeOfImpact, hits[1].TimeOfImpact)
	}
	if hits[0].Entity != 0 {
		t.Fatalf("unowned shapes should report entity 0")
	}
}

func TestCastShapeSkipsSensors(t *testing.T) {
	space := cp.NewSpace()
	ground := cp.NewBox2(space.StaticBody, cp.BB{L: -1, B: -2.1, R: 1, T: -2}, 0)
	space.AddShape(ground)
	sensor := cp.NewBox2(space.StaticBody, cp.BB{L: -1, B: -1.1, R: 1, T: -1}, 0)
	sensor.SetSensor(true)
	space.AddShape(sensor)

	caster := component.ShapeCaster{
		Radius:          0.1,
		Direction:       cp.Vector{X: 0, Y: -1},
		MaxTimeOfImpact: 10,
		MaxHits:         4,
	}
	hits := CastShape(space, cp.Vector{}, caster, cp.SHAPE_FILTER_ALL, nil)
	if len(hits) != 1 {
		t.Fatalf("expected only the solid ground, got %d hits", len(hits))
	}
	if math.Abs(hits[0].TimeOfImpact-1.9) > 1e-6 {
		t.Fatalf("expected ground at 1.9, got %v", hits[0].TimeOfImpact)
	}
	if math.Abs(hits[0].Point2.Y+2) > 1e-6 {
		t.Fatalf("expected hit on the ground top, got %v", hits[0].Point2)
	}
}

func TestCastShapeDegenerate(t *testing.T) {
	space := cp.NewSpace()
	if hits := CastShape(space, cp.Vector{}, component.ShapeCaster{MaxTimeOfImpact: 1}, cp.SHAPE_FILTER_ALL, nil); hits != nil {
		t.Fatalf("zero direction should not cast")
	}
	if hits := CastShape(nil, cp.Vector{}, groundProbe(1), cp.SHAPE_FILTER_ALL, nil); hits != nil {
		t.Fatalf("nil space should not cast")
	}
}
