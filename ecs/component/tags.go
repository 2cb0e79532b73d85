package component

// Name is a display label. Several entities over time may share one.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
