package prefabs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is one entity and the entities attached under it.
type EntityBuildSpec struct {
	Name       string            `yaml:"name"`
	Components map[string]any    `yaml:"components"`
	Children   []EntityBuildSpec `yaml:"children"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderComponentSpec struct {
	Shape  string  `yaml:"shape"`
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
}

type RestitutionComponentSpec struct {
	Coefficient float64 `yaml:"coefficient"`
	Combine     string  `yaml:"combine"`
}

type RigidBodyComponentSpec struct {
	Kind         string                    `yaml:"kind"`
	LockRotation bool                      `yaml:"lock_rotation"`
	Mass         float64                   `yaml:"mass"`
	Friction     float64                   `yaml:"friction"`
	Collider     ColliderComponentSpec     `yaml:"collider"`
	Restitution  *RestitutionComponentSpec `yaml:"restitution"`
}

type ExternalForceComponentSpec struct {
	Persistent bool `yaml:"persistent"`
}

// FloatingCharacterComponentSpec is also what the tuning inspector copies to
// the clipboard, so it marshals back into a valid prefab fragment.
type FloatingCharacterComponentSpec struct {
	RideHeight     float64 `yaml:"ride_height"`
	SpringStrength float64 `yaml:"spring_strength"`
	SpringDamper   float64 `yaml:"spring_damper"`
}

type ShapeCasterComponentSpec struct {
	Radius          float64 `yaml:"radius"`
	Height          float64 `yaml:"height"`
	OffsetX         float64 `yaml:"offset_x"`
	OffsetY         float64 `yaml:"offset_y"`
	Direction       string  `yaml:"direction"`
	MaxTimeOfImpact float64 `yaml:"max_time_of_impact"`
	MaxHits         int     `yaml:"max_hits"`
	IgnoreSelf      bool    `yaml:"ignore_self"`
}

// DirectionVector maps a named axis direction to a unit vector, +Y up.
func (s ShapeCasterComponentSpec) DirectionVector() (float64, float64, error) {
	switch strings.ToLower(strings.TrimSpace(s.Direction)) {
	case "", "down", "neg_y":
		return 0, -1, nil
	case "up", "y":
		return 0, 1, nil
	case "left", "neg_x":
		return -1, 0, nil
	case "right", "x":
		return 1, 0, nil
	default:
		return 0, 0, fmt.Errorf("unknown direction %q", s.Direction)
	}
}

type MoverComponentSpec struct {
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
	Range     float64 `yaml:"range"`
}

type CameraComponentSpec struct {
	Scale     float64 `yaml:"scale"`
	Follow    bool    `yaml:"follow"`
	Smoothing float64 `yaml:"smoothing"`
}
