package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// holdWindow is how long a movement or fire key counts as held after its
// last press. Terminals send repeats rather than key-up events, so a key
// stays down as long as repeats keep arriving within this window.
const holdWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a request to
// leave the program.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionNone, true
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "esc":
		return core.ActionQuit, false // ends the run, score is kept
	case "b":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// isHeld reports whether an action is continuous rather than one-shot.
func isHeld(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionFire:
		return true
	}
	return false
}

// InputTracker accumulates key presses between ticks and keeps continuous
// actions alive while their keys auto-repeat.
type InputTracker struct {
	held    map[core.Action]time.Time
	pending core.InputFrame
	window  time.Duration
}

// NewInputTracker creates a tracker with the default hold window.
func NewInputTracker() *InputTracker {
	return &InputTracker{
		held:    make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
		window:  holdWindow,
	}
}

// Press records an action at time now.
func (t *InputTracker) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	t.pending.Set(a)
	if isHeld(a) {
		t.held[a] = now
		// opposite directions cancel each other's hold
		if opp, ok := opposite(a); ok {
			delete(t.held, opp)
		}
	}
}

// Frame returns the actions active at now and clears one-shot presses.
func (t *InputTracker) Frame(now time.Time) core.InputFrame {
	frame := t.pending.Clone()
	for a, at := range t.held {
		if now.Sub(at) <= t.window {
			frame.Set(a)
		} else {
			delete(t.held, a)
		}
	}
	t.pending.Clear()
	return frame
}

// Reset forgets all presses.
func (t *InputTracker) Reset() {
	clear(t.held)
	t.pending.Clear()
}

func opposite(a core.Action) (core.Action, bool) {
	switch a {
	case core.ActionLeft:
		return core.ActionRight, true
	case core.ActionRight:
		return core.ActionLeft, true
	case core.ActionUp:
		return core.ActionDown, true
	case core.ActionDown:
		return core.ActionUp, true
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
