package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec is the startup configuration: window, physics, and the prefabs
// spawned before the first tick.
type SceneSpec struct {
	Title         string      `yaml:"title"`
	Width         int         `yaml:"width"`
	Height        int         `yaml:"height"`
	Physics       PhysicsSpec `yaml:"physics"`
	Spawn         []string    `yaml:"spawn"`
	RespawnPrefab string      `yaml:"respawn_prefab"`
}

type PhysicsSpec struct {
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	Iterations    uint    `yaml:"iterations"`
	TPS           int     `yaml:"tps"`
	CollisionSlop float64 `yaml:"collision_slop"`
}

const (
	defaultTitle      = "floater"
	defaultWidth      = 1280
	defaultHeight     = 720
	defaultIterations = 20
	defaultTPS        = 60
)

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Title == "" {
		spec.Title = defaultTitle
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		spec.Width, spec.Height = defaultWidth, defaultHeight
	}
	if spec.Physics.Iterations == 0 {
		spec.Physics.Iterations = defaultIterations
	}
	if spec.Physics.TPS <= 0 {
		spec.Physics.TPS = defaultTPS
	}
	if len(spec.Spawn) == 0 {
		return nil, fmt.Errorf("prefabs: scene %s spawns nothing", filename)
	}
	return &spec, nil
}
