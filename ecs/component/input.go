package component

// Input stores per-tick input state for an entity.
type Input struct {
	RespawnDown    bool
	RespawnPressed bool
}

var InputComponent = NewComponent[Input]()
