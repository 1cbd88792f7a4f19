package core

import "strings"

// Action is a semantic input, decoupled from the key that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // thrust
	ActionDown           // menu navigation
	ActionLeft           // rotate counter-clockwise
	ActionRight          // rotate clockwise
	ActionFire           // one shot per press
	ActionConfirm        // menu select
	ActionBack           // pause in game, leave at game over
	ActionRestart        // new session after game over
	ActionQuit           // leave immediately
	ActionPause          // toggle explicit pause

	numActions
)

var actionNames = [numActions]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionFire:    "Fire",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions active during one tick. The zero value
// is an empty frame and frames compare with ==.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as active. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= numActions {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a is active.
func (f InputFrame) Has(a Action) bool {
	return a < numActions && f.bits&(1<<a) != 0
}

// Clear empties the frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Empty reports whether no action is active.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

func (f InputFrame) String() string {
	var names []string
	for a := ActionNone + 1; a < numActions; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Stick folds the directional actions into a joystick vector with each
// component in [-1, 1]. Up is negative Y, matching screen coordinates.
func (f InputFrame) Stick() Vec2 {
	var v Vec2
	if f.Has(ActionLeft) {
		v.X--
	}
	if f.Has(ActionRight) {
		v.X++
	}
	if f.Has(ActionUp) {
		v.Y--
	}
	if f.Has(ActionDown) {
		v.Y++
	}
	return v
}
