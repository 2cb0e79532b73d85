package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":         addPlayerTag,
	"camera_tag":         addCameraTag,
	"input":              addInput,
	"transform":          addTransform,
	"rigid_body":         addRigidBody,
	"external_force":     addExternalForce,
	"linear_velocity":    addLinearVelocity,
	"floating_character": addFloatingCharacter,
	"shape_caster":       addShapeCaster,
	"mover":              addMover,
	"camera":             addCamera,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"transform",
	"rigid_body",
	"external_force",
	"linear_velocity",
	"floating_character",
	"shape_caster",
	"mover",
	"camera",
}

// BuildEntity loads a prefab and builds it, children included.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

// BuildEntityFromSpec builds an already decoded prefab. On failure nothing
// of the tree is left in the world.
func BuildEntityFromSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	ctx := &buildContext{PrefabPath: prefabPath}

	root, err := buildTree(w, spec, ctx)
	if err != nil {
		return 0, err
	}

	info := &component.SpawnInfo{ID: uuid.New(), Prefab: prefabPath, Tick: w.Tick()}
	if err := ecs.Add(w, root, component.SpawnInfoComponent.Kind(), info); err != nil {
		ecs.DestroyRecursive(w, root)
		return 0, fmt.Errorf("build entity: %q: add spawn info: %w", prefabPath, err)
	}

	if ecs.Has(w, root, component.FloatingCharacterComponent.Kind()) {
		w.Events().Push(ecs.Event{
			Type: ecs.EventControllerSpawned,
			Data: ecs.ControllerEvent{Entity: root, SpawnID: info.ID.String(), Prefab: prefabPath},
		})
	}
	return root, nil
}

func buildTree(w *ecs.World, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	if len(spec.Components) == 0 && len(spec.Children) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", ctx.PrefabPath)
	}

	e := ecs.CreateEntity(w)
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", ctx.PrefabPath, err)
		}
	}

	if err := applyComponents(w, e, spec.Components, ctx); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	for i, childSpec := range spec.Children {
		child, err := buildTree(w, childSpec, ctx)
		if err == nil {
			err = attachChild(w, e, child)
		}
		if err != nil {
			ecs.DestroyRecursive(w, e)
			return 0, fmt.Errorf("build entity: %q: child %d: %w", ctx.PrefabPath, i, err)
		}
	}

	return e, nil
}

func applyComponents(w *ecs.World, e ecs.Entity, components map[string]any, ctx *buildContext) error {
	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, names[0])
	}
	return nil
}

// attachChild links child under parent through Parent/Children.
func attachChild(w *ecs.World, parent, child ecs.Entity) error {
	if err := ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)}); err != nil {
		ecs.DestroyRecursive(w, child)
		return err
	}
	children, ok := ecs.Get(w, parent, component.ChildrenComponent.Kind())
	if !ok {
		children = &component.Children{}
	}
	children.Entities = append(children.Entities, uint64(child))
	if err := ecs.Add(w, parent, component.ChildrenComponent.Kind(), children); err != nil {
		ecs.DestroyRecursive(w, child)
		return err
	}
	return nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}
	kind, err := component.ParseBodyKind(spec.Kind)
	if err != nil {
		return err
	}
	shape, err := component.ParseColliderShape(spec.Collider.Shape)
	if err != nil {
		return err
	}
	collider := component.Collider{
		Shape:  shape,
		Radius: spec.Collider.Radius,
		Height: spec.Collider.Height,
		Width:  spec.Collider.Width,
	}
	if shape == component.ColliderCapsule && collider.Radius <= 0 {
		return errors.New("capsule collider needs a positive radius")
	}
	if shape == component.ColliderBox && (collider.Width <= 0 || collider.Height <= 0) {
		return errors.New("box collider needs a positive width and height")
	}

	var restitution component.Restitution
	if spec.Restitution != nil {
		combine, err := component.ParseCoefficientCombine(spec.Restitution.Combine)
		if err != nil {
			return err
		}
		restitution = component.Restitution{Coefficient: spec.Restitution.Coefficient, Combine: combine}
	}

	mass := spec.Mass
	if kind == component.BodyDynamic && mass <= 0 {
		mass = 1
	}

	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Kind:         kind,
		LockRotation: spec.LockRotation,
		Mass:         mass,
		Friction:     spec.Friction,
		Collider:     collider,
		Restitution:  restitution,
	})
}

func addExternalForce(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ExternalForceComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode external_force spec: %w", err)
	}
	return ecs.Add(w, e, component.ExternalForceComponent.Kind(), &component.ExternalForce{Persistent: spec.Persistent})
}

func addLinearVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.LinearVelocityComponent.Kind(), &component.LinearVelocity{})
}

func addFloatingCharacter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FloatingCharacterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode floating_character spec: %w", err)
	}
	if existing, ok := w.First(component.FloatingCharacterComponent.Kind()); ok && existing != e {
		return fmt.Errorf("entity %s: %w", existing, component.ErrDuplicateController)
	}
	return ecs.Add(w, e, component.FloatingCharacterComponent.Kind(), &component.FloatingCharacter{
		RideHeight:     spec.RideHeight,
		SpringStrength: spec.SpringStrength,
		SpringDamper:   spec.SpringDamper,
	})
}

func addShapeCaster(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShapeCasterComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shape_caster spec: %w", err)
	}
	dx, dy, err := spec.DirectionVector()
	if err != nil {
		return err
	}
	if spec.MaxTimeOfImpact <= 0 {
		return errors.New("shape_caster needs a positive max_time_of_impact")
	}
	maxHits := spec.MaxHits
	if maxHits <= 0 {
		maxHits = 1
	}
	if err := ecs.Add(w, e, component.ShapeCasterComponent.Kind(), &component.ShapeCaster{
		Radius:          spec.Radius,
		Height:          spec.Height,
		Offset:          cp.Vector{X: spec.OffsetX, Y: spec.OffsetY},
		Direction:       cp.Vector{X: dx, Y: dy},
		MaxTimeOfImpact: spec.MaxTimeOfImpact,
		MaxHits:         maxHits,
		IgnoreSelf:      spec.IgnoreSelf,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ShapeHitsComponent.Kind(), &component.ShapeHits{})
}

func addMover(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MoverComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mover spec: %w", err)
	}
	return ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{
		Velocity: cp.Vector{X: spec.VelocityX, Y: spec.VelocityY},
		Range:    spec.Range,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	scale := spec.Scale
	if scale <= 0 {
		scale = 50
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Scale:     scale,
		Follow:    spec.Follow,
		Smoothing: spec.Smoothing,
	})
}
