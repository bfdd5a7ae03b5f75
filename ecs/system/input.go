package system

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"go.uber.org/zap"
)

// Input actions understood by InputSystem.
const (
	ActionMove               = "move"
	ActionLook               = "look"
	ActionJumpPressed        = "jump_pressed"
	ActionJumpReleased       = "jump_released"
	ActionThrustStart        = "thrust_start"
	ActionThrustStop         = "thrust_stop"
	ActionCrouchStart        = "crouch_start"
	ActionCrouchStop         = "crouch_stop"
	ActionSwapArmour         = "swap_armour"
	ActionCycle              = "cycle"
	ActionFirePressed        = "fire_pressed"
	ActionFireReleased       = "fire_released"
	ActionAltFire            = "alt_fire"
	ActionAltFirePressed     = "alt_fire_pressed"
	ActionAltFireReleased    = "alt_fire_released"
	ActionBiopadDisplay      = "biopad_display"
	ActionToggleInvisibility = "toggle_invisibility"
	ActionInteract           = "interact"
	ActionBiopadRemove       = "biopad_remove"
)

// InputEvent is one recorded input action. At is in simulated seconds.
type InputEvent struct {
	At     float64
	Action string
	Value  mgl64.Vec2
}

// InputSystem replays a recorded input timeline into the player's Input
// component. Events whose time has come are applied at the start of the
// tick, in timeline order.
type InputSystem struct {
	events []InputEvent
	next   int
	logger *zap.Logger
}

func NewInputSystem(events []InputEvent, logger *zap.Logger) *InputSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	sorted := append([]InputEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &InputSystem{events: sorted, logger: logger}
}

// Remaining returns the number of events not yet applied.
func (s *InputSystem) Remaining() int {
	return len(s.events) - s.next
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		input = &component.Input{}
		ecs.MustAdd(w, player, component.InputComponent.Kind(), input)
	}
	input.ClearEdges()

	now := w.Time()
	for s.next < len(s.events) && s.events[s.next].At <= now+1e-9 {
		s.apply(input, s.events[s.next])
		s.next++
	}
}

func (s *InputSystem) apply(in *component.Input, evt InputEvent) {
	switch evt.Action {
	case ActionMove:
		if evt.Value.Len() == 0 {
			in.Move = mgl64.Vec2{}
			in.MoveHeld = false
			in.MoveReleased = true
			return
		}
		in.Move = evt.Value
		in.MoveHeld = true
	case ActionLook:
		in.Look = in.Look.Add(evt.Value)
	case ActionJumpPressed:
		in.JumpPressed = true
	case ActionJumpReleased:
		in.JumpReleased = true
	case ActionThrustStart:
		in.ThrustStart = true
	case ActionThrustStop:
		in.ThrustStop = true
	case ActionCrouchStart:
		in.CrouchStart = true
	case ActionCrouchStop:
		in.CrouchStop = true
	case ActionSwapArmour:
		in.SwapArmour = true
	case ActionCycle:
		in.Scroll += evt.Value.X()
	case ActionFirePressed:
		in.PrimaryPressed = true
		in.PrimaryHeld = true
	case ActionFireReleased:
		in.PrimaryReleased = true
		in.PrimaryHeld = false
	case ActionAltFire:
		in.SecondaryPressed = true
		in.SecondaryReleased = true
	case ActionAltFirePressed:
		in.SecondaryPressed = true
		in.SecondaryHeld = true
	case ActionAltFireReleased:
		in.SecondaryReleased = true
		in.SecondaryHeld = false
	case ActionBiopadDisplay:
		in.MiddlePressed = true
	case ActionToggleInvisibility:
		in.ToggleInvisible = true
	case ActionInteract:
		in.Interact = true
	case ActionBiopadRemove:
		in.BiopadRemove = true
	default:
		s.logger.Warn("unknown input action", zap.String("action", evt.Action), zap.Float64("at", evt.At))
	}
}
