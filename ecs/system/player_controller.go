package system

import (
	"github.com/milk9111/gravityfps/character"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
)

// PlayerControllerSystem hands the tick's input to the character. It runs
// after InputSystem and before CharacterMovementSystem, so movement input
// is integrated on the same tick it arrives.
type PlayerControllerSystem struct {
	character *character.Character
}

func NewPlayerControllerSystem(c *character.Character) *PlayerControllerSystem {
	return &PlayerControllerSystem{character: c}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil || p.character == nil {
		return
	}

	input, ok := ecs.Get(w, p.character.Self(), component.InputComponent.Kind())
	if !ok {
		return
	}
	c := p.character

	if input.Look.Len() > 0 {
		c.Look(input.Look)
	}
	if input.SwapArmour {
		c.SwapArmour()
	}
	if input.Scroll != 0 {
		c.Cycle(input.Scroll)
	}

	if input.MoveHeld {
		c.Move(input.Move)
	}
	if input.MoveReleased {
		c.MoveReleased()
	}
	if input.CrouchStart {
		c.Crouch(true)
	}
	if input.CrouchStop {
		c.Crouch(false)
	}

	if input.JumpPressed {
		c.JumpPressed()
	}
	if input.JumpReleased {
		c.JumpReleased()
	}
	if input.ThrustStart {
		c.StartThrusters()
	}
	if input.ThrustStop {
		c.EndThrusters()
	}

	if input.PrimaryPressed {
		c.PrimaryPressed()
	}
	if input.PrimaryHeld {
		c.PrimaryHeld()
	}
	if input.PrimaryReleased {
		c.PrimaryReleased()
	}
	if input.SecondaryPressed {
		c.SecondaryPressed()
	}
	if input.SecondaryReleased {
		c.SecondaryReleased()
	}
	if input.MiddlePressed {
		c.ToggleBiopadDisplay()
	}
	if input.ToggleInvisible {
		c.ToggleInvisibility()
	}
	if input.BiopadRemove {
		c.RemoveLastSelected()
	}
	if input.Interact {
		c.Interact()
	}
}

// CharacterSystem advances the character's per-tick motion logic after the
// body has been integrated.
type CharacterSystem struct {
	character *character.Character
}

func NewCharacterSystem(c *character.Character) *CharacterSystem {
	return &CharacterSystem{character: c}
}

func (s *CharacterSystem) Update(w *ecs.World) {
	if w == nil || s.character == nil {
		return
	}

	s.character.Tick(w.Delta())
}
