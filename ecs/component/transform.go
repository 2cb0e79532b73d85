package component

// Transform is a world-space pose in meters, +Y up.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
