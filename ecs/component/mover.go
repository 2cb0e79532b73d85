package component

import "github.com/jakecoffman/cp"

// Mover drives a kinematic body back and forth along Velocity, reversing once
// it has travelled Range from Origin.
type Mover struct {
	Velocity cp.Vector
	Range    float64
	Origin   cp.Vector
	Started  bool
}

var MoverComponent = NewComponent[Mover]()
