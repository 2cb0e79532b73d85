package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// KeySource reports whether a key is held right now.
type KeySource func() bool

// InputSystem samples the respawn key once per tick and derives the
// rising edge itself, so a held key fires once.
type InputSystem struct {
	respawn  KeySource
	prevDown bool
	pressed  bool
}

func NewInputSystem() *InputSystem {
	return NewInputSystemWithSource(func() bool {
		return ebiten.IsKeyPressed(ebiten.KeyR)
	})
}

func NewInputSystemWithSource(respawn KeySource) *InputSystem {
	return &InputSystem{respawn: respawn}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	down := i.respawn != nil && i.respawn()
	pressed := down && !i.prevDown
	i.prevDown = down
	i.pressed = pressed

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.RespawnDown = down
		input.RespawnPressed = pressed
	})
}

// RespawnPressed reports the edge seen by the latest Update.
func (i *InputSystem) RespawnPressed() bool {
	return i != nil && i.pressed
}
