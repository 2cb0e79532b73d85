package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
)

type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyStatic
	BodyKinematic
)

func ParseBodyKind(s string) (BodyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dynamic":
		return BodyDynamic, nil
	case "static":
		return BodyStatic, nil
	case "kinematic":
		return BodyKinematic, nil
	default:
		return BodyDynamic, fmt.Errorf("unknown body kind %q", s)
	}
}

type ColliderShape int

const (
	ColliderCapsule ColliderShape = iota
	ColliderBox
)

func ParseColliderShape(s string) (ColliderShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "capsule":
		return ColliderCapsule, nil
	case "box", "cuboid":
		return ColliderBox, nil
	default:
		return ColliderCapsule, fmt.Errorf("unknown collider shape %q", s)
	}
}

// Collider describes a collision volume centered on the body. A capsule is a
// vertical segment of length Height swept by Radius; a box is Width x Height.
type Collider struct {
	Shape  ColliderShape
	Radius float64
	Height float64
	Width  float64
}

// CoefficientCombine resolves two bodies' coefficients at a contact.
type CoefficientCombine int

const (
	CombineAverage CoefficientCombine = iota
	CombineMin
	CombineMultiply
	CombineMax
)

func ParseCoefficientCombine(s string) (CoefficientCombine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average":
		return CombineAverage, nil
	case "min":
		return CombineMin, nil
	case "multiply":
		return CombineMultiply, nil
	case "max":
		return CombineMax, nil
	default:
		return CombineAverage, fmt.Errorf("unknown combine rule %q", s)
	}
}

// Apply combines a and b under the rule.
func (c CoefficientCombine) Apply(a, b float64) float64 {
	switch c {
	case CombineMin:
		return math.Min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMax:
		return math.Max(a, b)
	default:
		return (a + b) / 2
	}
}

// ResolveCombine picks the rule for a contact between two bodies. The higher
// priority rule wins: max > multiply > min > average.
func ResolveCombine(a, b CoefficientCombine) CoefficientCombine {
	if a > b {
		return a
	}
	return b
}

type Restitution struct {
	Coefficient float64
	Combine     CoefficientCombine
}

// RigidBody configures the cp body created for an entity. Body and Shapes are
// filled in by the physics system.
type RigidBody struct {
	Kind         BodyKind
	LockRotation bool
	Mass         float64
	Friction     float64
	Collider     Collider
	Restitution  Restitution

	Body   *cp.Body
	Shapes []*cp.Shape
}

var RigidBodyComponent = NewComponent[RigidBody]()

// LinearVelocity mirrors the cp body velocity after the latest step.
type LinearVelocity struct {
	Value cp.Vector
}

var LinearVelocityComponent = NewComponent[LinearVelocity]()

// ExternalForce is written into the body before each step. A non-persistent
// force is cleared after the step it was applied in.
type ExternalForce struct {
	Force      cp.Vector
	Persistent bool
}

var ExternalForceComponent = NewComponent[ExternalForce]()
