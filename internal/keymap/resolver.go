// Package keymap resolves raw key events into actions via a mode-scoped,
// possibly-nested, possibly-repeated binding tree (SPEC_FULL.md §4.5).
//
// Grounded on internal/input/keymap (the teacher's flat string-action
// Keymap/Binding type) and internal/input/key (Event/Sequence), generalized
// here to dispatch through action.KeyAction trees instead of a flat
// string-to-string binding list, since the spec requires nested prefix
// maps (g, d, z...) and numeric repeat accumulation that a flat map alone
// cannot express.
package keymap

import (
	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/input/key"
)

// Mode keys the mode->bindings table. It is an alias of action.Mode, so
// editor code passes action.Mode values directly.
type Mode = action.Mode

// ModeBindings is the top-level key → KeyAction table for one mode.
type ModeBindings map[string]action.KeyAction

// Keymap holds the full set of mode-scoped bindings.
type Keymap struct {
	Bindings map[Mode]ModeBindings
}

// New creates an empty Keymap.
func New() *Keymap {
	return &Keymap{Bindings: make(map[Mode]ModeBindings)}
}

// Bind registers a binding for the given mode and key-string.
func (km *Keymap) Bind(mode Mode, keyString string, ka action.KeyAction) {
	if km.Bindings[mode] == nil {
		km.Bindings[mode] = make(ModeBindings)
	}
	km.Bindings[mode][keyString] = ka
}

// Resolver tracks pending dispatch state (numeric repeat prefix, partial
// nested sequences) across successive key events, per SPEC_FULL.md §4.5.
type Resolver struct {
	km *Keymap

	pendingNested  map[string]action.KeyAction
	pendingLabel   string
	repeater       int
	repeaterActive bool
}

// NewResolver creates a Resolver bound to the given Keymap.
func NewResolver(km *Keymap) *Resolver {
	return &Resolver{km: km}
}

// Pending reports whether a nested sequence or repeat count is
// accumulating (drives the commandline's waiting-command display and the
// underscore cursor shape).
func (r *Resolver) Pending() (label string, repeater int, active bool) {
	return r.pendingLabel, r.repeater, r.pendingNested != nil || r.repeaterActive
}

// Cancel clears any pending nested sequence or repeat count (Esc).
func (r *Resolver) Cancel() {
	r.pendingNested = nil
	r.pendingLabel = ""
	r.repeater = 0
	r.repeaterActive = false
}

// Result is what Resolve produces for one key event: either a resolved
// action.KeyAction ready to flatten and execute, or nothing (event
// consumed into pending state, or unmapped).
type Result struct {
	Resolved bool
	KeyAction action.KeyAction
}

// Resolve feeds one key event through the resolver for the given mode and
// returns the action to execute, if any. Digit-accumulation and nested
// dispatch follow SPEC_FULL.md §4.5's numbered behavior list.
func (r *Resolver) Resolve(mode Mode, ev key.Event) Result {
	// 1. Repeater accumulation (not in Insert mode, where digits are text).
	if mode != action.Insert && ev.IsRune() && !ev.IsModified() && ev.Rune >= '0' && ev.Rune <= '9' {
		// A leading zero is not a repeat count start (it's MoveLineStart
		// in most vim-likes); only accumulate once a nonzero digit or an
		// existing repeater has started.
		if r.repeaterActive || ev.Rune != '0' {
			r.repeater = r.repeater*10 + int(ev.Rune-'0')
			if r.repeater > 9999 {
				r.repeater = 9999
			}
			r.repeaterActive = true
			return Result{}
		}
	}

	// 2. Pending nested map takes the event next.
	if r.pendingNested != nil {
		nested := r.pendingNested
		r.pendingNested = nil
		r.pendingLabel = ""

		if ev.IsEscape() {
			r.repeater = 0
			r.repeaterActive = false
			return Result{}
		}

		ka, ok := nested[dispatchKey(ev)]
		if !ok {
			r.repeater = 0
			r.repeaterActive = false
			return Result{}
		}
		return r.finish(ka)
	}

	// 3. Look up in the active mode's mapping.
	bindings := r.km.Bindings[mode]
	ka, ok := bindings[dispatchKey(ev)]
	if !ok {
		// 7. Insert mode falls back to InsertCharAtCursorPos for any
		// unmapped printable key.
		if mode == action.Insert && ev.IsRune() && !ev.IsModified() {
			return r.finish(action.Single(action.NewInsertCharAtCursorPos(ev.Rune)))
		}
		r.repeater = 0
		r.repeaterActive = false
		return Result{}
	}

	// 6. Nested entries set pending state and produce no action yet.
	if ka.Variant == action.VariantNested {
		r.pendingNested = ka.Nested
		r.pendingLabel = dispatchKey(ev)
		return Result{}
	}

	return r.finish(ka)
}

// finish applies a pending repeat count (if any) to a resolved KeyAction
// and clears repeat state, implementing behavior 5 of §4.5.
func (r *Resolver) finish(ka action.KeyAction) Result {
	if r.repeaterActive {
		n := r.repeater
		r.repeater = 0
		r.repeaterActive = false
		return Result{Resolved: true, KeyAction: action.Repeating(n, ka)}
	}
	return Result{Resolved: true, KeyAction: ka}
}

// dispatchKey returns the canonical binding-table key for an event. The
// Vim-style compact form ("gg", "<C-s>") is reused as the dispatch key
// since it is already unique per (key, modifiers) combination and is what
// config files serialize bindings as (SPEC_FULL.md §4.12).
func dispatchKey(ev key.Event) string {
	if ev.IsRune() && !ev.IsModified() {
		return string(ev.Rune)
	}
	return ev.VimString()
}

// MouseAction synthesizes the action for a mouse event per §4.5 behavior 4:
// primary-button press becomes MoveTo(column, vtop+row+1); wheel events
// become ScrollUp/ScrollDown.
func MouseAction(column, row, vtop int, wheelUp, wheelDown bool) action.Action {
	switch {
	case wheelUp:
		return action.NewScrollUp(1)
	case wheelDown:
		return action.NewScrollDown(1)
	default:
		return action.NewMoveTo(column, vtop+row+1)
	}
}
