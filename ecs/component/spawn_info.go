package component

import "github.com/google/uuid"

// SpawnInfo identifies one lifetime of an entity built from a prefab.
type SpawnInfo struct {
	ID     uuid.UUID
	Prefab string
	Tick   uint64
}

var SpawnInfoComponent = NewComponent[SpawnInfo]()
