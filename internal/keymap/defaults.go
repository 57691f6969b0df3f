package keymap

import "github.com/vellum-editor/vellum/internal/action"

// Default returns the editor's built-in key bindings, overridable per
// SPEC_FULL.md §4.12's config `keys` table. Grounded on the binding shapes
// demonstrated in internal/input/keymap's test fixtures and vim-likeness
// implied throughout the spec (g-prefix navigation, d-prefix delete,
// Ctrl-prefixed commands).
func Default() *Keymap {
	km := New()

	n := func(k string, a action.Action) { km.Bind(action.Normal, k, action.Single(a)) }

	// Normal mode motions.
	n("h", action.NewMoveLeft())
	n("j", action.NewMoveDown())
	n("k", action.NewMoveUp())
	n("l", action.NewMoveRight())
	n("0", action.NewMoveLineStart())
	n("$", action.NewMoveLineEnd())
	n("w", action.NewMoveToNextWord())
	n("b", action.NewMoveToPrevWord())
	n("G", action.NewGoToLine(-1, action.PositionCenter))
	n("n", action.NewFindNext())
	n("N", action.NewFindPrev())

	// g-prefix nested map.
	km.Bind(action.Normal, "g", action.Nested(map[string]action.KeyAction{
		"g": action.Single(action.NewMoveToTop()),
		"d": action.Single(action.NewGoToDefinition()),
	}))

	// d-prefix nested map (delete operator); "dd" deletes the line.
	km.Bind(action.Normal, "d", action.Nested(map[string]action.KeyAction{
		"d": action.Single(action.NewDeleteCurrentLine()),
		"w": action.Single(action.NewDeleteWord()),
	}))

	// z-prefix nested map (view commands).
	km.Bind(action.Normal, "z", action.Nested(map[string]action.KeyAction{
		"z": action.Single(action.NewMoveLineToViewportCenter()),
	}))

	n("x", action.NewDeleteCharAt(-1, -1)) // resolved against the live cursor by the executor
	n("u", action.NewUndo())
	n("i", action.NewEnterMode(action.Insert))
	n("a", action.NewMoveRight())
	n("o", action.NewInsertLineBelowCursor())
	n("O", action.NewInsertLineAboveCursor())
	n("v", action.NewEnterMode(action.Visual))
	n("V", action.NewEnterMode(action.VisualLine))
	km.Bind(action.Normal, ":", action.Single(action.NewEnterMode(action.CommandMode)))
	km.Bind(action.Normal, "/", action.Single(action.NewEnterMode(action.Search)))
	km.Bind(action.Normal, "<C-f>", action.Single(action.NewPageDown()))
	km.Bind(action.Normal, "<C-b>", action.Single(action.NewPageUp()))
	km.Bind(action.Normal, "<Esc>", action.Single(action.NewEnterMode(action.Normal)))

	// Insert mode control keys (everything else falls back to
	// InsertCharAtCursorPos via the resolver's rule 7).
	km.Bind(action.Insert, "<Esc>", action.Single(action.NewEnterMode(action.Normal)))
	km.Bind(action.Insert, "<Enter>", action.Single(action.NewInsertNewLine()))
	km.Bind(action.Insert, "<Tab>", action.Single(action.NewInsertTab()))
	km.Bind(action.Insert, "<Backspace>", action.Single(action.NewDeletePreviousChar()))

	return km
}
