package executor

import (
	"testing"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/state"
)

func newTestExecutor(t *testing.T, text string) (*Executor, *state.EditorState) {
	t.Helper()
	st := state.New(10, 5)
	buf := buffer.NewBufferFromString(text)
	st.OpenBuffer(buf, "test.txt")
	return New(st, nil, nil, "."), st
}

func TestInsertCharAdvancesCursorAndMarksDirty(t *testing.T) {
	ex, st := newTestExecutor(t, "ab")
	ex.Apply(action.NewEnterMode(action.Insert))
	ex.Apply(action.NewInsertCharAtCursorPos('x'))

	buf, _ := st.CurrentBuffer()
	line, _ := buf.Get(0)
	if line != "xab" {
		t.Fatalf("line = %q, want %q", line, "xab")
	}
	if st.CursorX != 1 {
		t.Fatalf("CursorX = %d, want 1", st.CursorX)
	}
	if !buf.Dirty() {
		t.Fatalf("buffer should be dirty after insert")
	}
}

func TestInsertModeUndoGroupReversesOnUndo(t *testing.T) {
	ex, st := newTestExecutor(t, "")
	ex.Apply(action.NewEnterMode(action.Insert))
	ex.Apply(action.NewInsertCharAtCursorPos('a'))
	ex.Apply(action.NewInsertCharAtCursorPos('b'))
	ex.Apply(action.NewInsertCharAtCursorPos('c'))
	ex.Apply(action.NewEnterMode(action.Normal))

	buf, _ := st.CurrentBuffer()
	line, _ := buf.Get(0)
	if line != "abc" {
		t.Fatalf("line = %q, want %q", line, "abc")
	}
	if len(st.UndoStack) != 1 {
		t.Fatalf("UndoStack len = %d, want 1 (one grouped entry)", len(st.UndoStack))
	}

	ex.Apply(action.NewUndo())

	line, _ = buf.Get(0)
	if line != "" {
		t.Fatalf("after undo, line = %q, want empty", line)
	}
}

func TestDeleteCurrentLineUndoRestoresContent(t *testing.T) {
	ex, st := newTestExecutor(t, "one\ntwo\nthree")
	ex.Apply(action.NewMoveTo(0, 1))
	ex.Apply(action.NewDeleteCurrentLine())

	buf, _ := st.CurrentBuffer()
	if n := buf.NumLines(); n != 2 {
		t.Fatalf("NumLines() = %d, want 2", n)
	}

	ex.Apply(action.NewUndo())
	if n := buf.NumLines(); n != 3 {
		t.Fatalf("after undo, NumLines() = %d, want 3", n)
	}
	line, _ := buf.Get(1)
	if line != "two" {
		t.Fatalf("after undo, line 1 = %q, want %q", line, "two")
	}
}

func TestInsertNewLineSplitsWithAutoIndentAndUndoes(t *testing.T) {
	ex, st := newTestExecutor(t, "  hello")
	ex.Apply(action.NewEnterMode(action.Insert))
	ex.Apply(action.NewSetCursor(4, 0)) // after "  he"
	ex.Apply(action.NewInsertNewLine())

	buf, _ := st.CurrentBuffer()
	if n := buf.NumLines(); n != 2 {
		t.Fatalf("NumLines() = %d, want 2", n)
	}
	l0, _ := buf.Get(0)
	l1, _ := buf.Get(1)
	if l0 != "  he" || l1 != "  llo" {
		t.Fatalf("split = %q / %q, want %q / %q", l0, l1, "  he", "  llo")
	}
	if st.CursorY != 1 || st.CursorX != 2 {
		t.Fatalf("cursor = (%d,%d), want (2,1)", st.CursorX, st.CursorY)
	}

	ex.Apply(action.NewEnterMode(action.Normal)) // flush insert undo group
	ex.Apply(action.NewUndo())

	if n := buf.NumLines(); n != 1 {
		t.Fatalf("after undo, NumLines() = %d, want 1", n)
	}
	line, _ := buf.Get(0)
	if line != "  hello" {
		t.Fatalf("after undo, line = %q, want %q", line, "  hello")
	}
}

func TestQuitWithoutForceRefusesWhenDirty(t *testing.T) {
	ex, _ := newTestExecutor(t, "x")
	ex.Apply(action.NewEnterMode(action.Insert))
	ex.Apply(action.NewInsertCharAtCursorPos('y'))

	eff := ex.Apply(action.NewQuit(false))
	if eff.Kind != EffectError {
		t.Fatalf("Quit(false) on dirty buffer = %+v, want EffectError", eff)
	}

	eff = ex.Apply(action.NewQuit(true))
	if eff.Kind != EffectQuit {
		t.Fatalf("Quit(true) = %+v, want EffectQuit", eff)
	}
}

func TestGoToLineCentersViewportWhenFarAway(t *testing.T) {
	lines := ""
	for i := 0; i < 100; i++ {
		lines += "line\n"
	}
	ex, st := newTestExecutor(t, lines)
	st.Height = 10

	ex.Apply(action.NewGoToLine(50, action.PositionCenter))

	if st.CursorY != 49 {
		t.Fatalf("CursorY = %d, want 49", st.CursorY)
	}
	if st.ViewportTop != 44 {
		t.Fatalf("ViewportTop = %d, want 44", st.ViewportTop)
	}
}

func TestRunCommandWriteQuitForce(t *testing.T) {
	ex, _ := newTestExecutor(t, "x")
	eff := ex.Apply(action.NewCommand("q!"))
	if eff.Kind != EffectQuit || !eff.Force {
		t.Fatalf("Command(q!) = %+v, want forced EffectQuit", eff)
	}
}

func TestRunCommandDigitsGoesToLine(t *testing.T) {
	lines := "a\nb\nc\nd\ne"
	ex, st := newTestExecutor(t, lines)
	ex.Apply(action.NewCommand("3"))
	if st.CursorY != 2 {
		t.Fatalf("CursorY = %d, want 2", st.CursorY)
	}
}

func TestDeleteWordRemovesToWordEndAndUndoes(t *testing.T) {
	ex, st := newTestExecutor(t, "hello world")
	ex.Apply(action.NewDeleteWord())

	buf, _ := st.CurrentBuffer()
	line, _ := buf.Get(0)
	if line != " world" {
		t.Fatalf("line = %q, want %q", line, " world")
	}

	ex.Apply(action.NewUndo())
	line, _ = buf.Get(0)
	if line != "hello world" {
		t.Fatalf("after undo, line = %q, want %q", line, "hello world")
	}
}
