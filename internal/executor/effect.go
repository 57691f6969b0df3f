package executor

import "github.com/vellum-editor/vellum/internal/action"

// EffectKind is the kind of redraw (or non-redraw) work the Render
// Pipeline or event loop must perform after an action applies.
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

// Rank orders effects so Combine can keep the more consequential one; a
// sequence of Multiple actions folds its individual effects together and
// the caller only needs to act on the strongest result.
func (k EffectKind) Rank() int { return int(k) }

// Effect is what the executor hands back after applying one Action.
type Effect struct {
	Kind    EffectKind
	Message string
	Buffer  int // opaque state.BufferID, carried as int to avoid an import cycle
	Actions []action.Action
	Force   bool
}

// Combine folds two effects, keeping whichever ranks higher.
func Combine(a, b Effect) Effect {
	if b.Kind.Rank() > a.Kind.Rank() {
		return b
	}
	return a
}

func none() Effect                { return Effect{Kind: EffectNone} }
func redrawCursor() Effect        { return Effect{Kind: EffectRedrawCursor} }
func redrawLine() Effect          { return Effect{Kind: EffectRedrawLine} }
func redrawWindow() Effect        { return Effect{Kind: EffectRedrawWindow} }
func redrawAll() Effect           { return Effect{Kind: EffectRedrawAll} }
func errEffect(msg string) Effect { return Effect{Kind: EffectError, Message: msg} }
func message(msg string) Effect   { return Effect{Kind: EffectMessage, Message: msg} }
func quit(force bool) Effect      { return Effect{Kind: EffectQuit, Force: force} }
