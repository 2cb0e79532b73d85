package component

// Camera maps world meters to screen pixels. The camera looks at its
// Transform; Scale is pixels per meter. With Follow set it tracks the player,
// moving Smoothing of the remaining distance each tick (1 snaps).
type Camera struct {
	Scale     float64
	Follow    bool
	Smoothing float64
}

var CameraComponent = NewComponent[Camera]()
