package action

// EffectKind ranks redraw effects from cheapest to most expensive, mirroring
// the rank()-based Ord impl on ActionEffect in
// original_source/src/editor/action.rs: when a sequence of actions produces
// more than one candidate effect, the executor keeps the highest-ranked one
// rather than redrawing once per atom.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectRedrawCursor
	EffectRedrawLine
	EffectRedrawWindow
	EffectRedrawAll
	EffectNewBuffer
	EffectActions
	EffectError
	EffectMessage
	EffectQuit
)

// Rank returns the effect's priority; higher wins when effects from a
// sequence of actions are folded together.
func (k EffectKind) Rank() int {
	return int(k)
}

// Effect is the RedrawEffect returned by action execution. Only the field
// matching Kind is meaningful: Message for Error/Message, Buffer for
// NewBuffer, Actions for Actions, Force for Quit.
type Effect struct {
	Kind    EffectKind
	Message string
	Buffer  int
	Actions []Action
	Force   bool
}

// Combine folds two effects, keeping the higher-ranked one. Used when a
// KeyAction.Multiple or a parsed command expands to several actions whose
// individual effects must collapse to one redraw decision per event.
func Combine(a, b Effect) Effect {
	if b.Kind.Rank() > a.Kind.Rank() {
		return b
	}
	return a
}
