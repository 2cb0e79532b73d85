package system

import (
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// TuningAccessor reads and writes the coefficients of the live floating
// character. Both report false when there is none.
type TuningAccessor interface {
	Tuning() (component.FloatingCharacter, bool)
	SetTuning(component.FloatingCharacter) bool
}

// WorldTuning is a TuningAccessor over a world. Values are not validated.
type WorldTuning struct {
	World *ecs.World
}

func (t WorldTuning) live() (*component.FloatingCharacter, bool) {
	e, ok := t.World.First(component.FloatingCharacterComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(t.World, e, component.FloatingCharacterComponent.Kind())
}

func (t WorldTuning) Tuning() (component.FloatingCharacter, bool) {
	fc, ok := t.live()
	if !ok {
		return component.FloatingCharacter{}, false
	}
	return *fc, true
}

func (t WorldTuning) SetTuning(v component.FloatingCharacter) bool {
	fc, ok := t.live()
	if !ok {
		return false
	}
	*fc = v
	return true
}
