package component

import "github.com/jakecoffman/cp"

// ShapeCaster sweeps a capsule probe from its parent body along Direction
// every tick.
type ShapeCaster struct {
	Radius          float64
	Height          float64
	Offset          cp.Vector
	Direction       cp.Vector
	MaxTimeOfImpact float64
	MaxHits         int
	IgnoreSelf      bool
}

var ShapeCasterComponent = NewComponent[ShapeCaster]()

// ShapeHit is one probe result. Point1 lies on the probe at its cast origin,
// Point2 on the struck surface.
type ShapeHit struct {
	Entity       uint64
	Point1       cp.Vector
	Point2       cp.Vector
	Normal       cp.Vector
	TimeOfImpact float64
}

// ShapeHits is the ordered, capped result of the latest cast.
type ShapeHits struct {
	Hits []ShapeHit
}

func (h *ShapeHits) IsEmpty() bool {
	return h == nil || len(h.Hits) == 0
}

var ShapeHitsComponent = NewComponent[ShapeHits]()
