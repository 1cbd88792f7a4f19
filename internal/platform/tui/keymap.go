package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-roids/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "space", "f":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// DefaultHoldTime is how long a steering key counts as held after a press.
// It bridges the gap between terminal key repeats.
const DefaultHoldTime = 180 * time.Millisecond

// heldKeys turns discrete terminal key presses into held steering input.
// Terminals report no key releases, so a press holds its action for a
// few ticks and every repeat refreshes it.
type heldKeys struct {
	hold int
	ttl  map[core.Action]int
}

func newHeldKeys(tickRate int, holdTime time.Duration) *heldKeys {
	if tickRate <= 0 {
		tickRate = 60
	}
	hold := int(holdTime * time.Duration(tickRate) / time.Second)
	return &heldKeys{hold: max(hold, 1), ttl: make(map[core.Action]int)}
}

func steering(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// press records a steering key. Pressing the opposite direction releases
// the current one at once.
func (h *heldKeys) press(a core.Action) {
	if !steering(a) {
		return
	}
	delete(h.ttl, opposite(a))
	h.ttl[a] = h.hold
}

// apply sets the held actions on frame and ages them by one tick.
func (h *heldKeys) apply(frame *core.InputFrame) {
	for a, n := range h.ttl {
		frame.Set(a)
		if n <= 1 {
			delete(h.ttl, a)
		} else {
			h.ttl[a] = n - 1
		}
	}
}

func (h *heldKeys) release() { clear(h.ttl) }
