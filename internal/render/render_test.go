package render

import (
	"strings"
	"testing"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/gutter"
	"github.com/vellum-editor/vellum/internal/renderer/backend"
	"github.com/vellum-editor/vellum/internal/state"
)

func newTestState(t *testing.T, text string) *state.EditorState {
	t.Helper()
	st := state.New(20, 6)
	buf := buffer.NewBufferFromString(text)
	st.OpenBuffer(buf, "test.go")
	return st
}

func TestDrawFillsStatusAndCommandLines(t *testing.T) {
	st := newTestState(t, "one\ntwo\nthree\n")
	grid := cellgrid.New(st.Width, st.Height, DefaultTheme().Default)
	gut := gutter.New(gutter.DefaultConfig())

	Draw(grid, st, gut, Frame{}, DefaultTheme())

	statusRow := rowText(grid, st.Height-2, st.Width)
	if !strings.Contains(statusRow, "NORMAL") {
		t.Fatalf("expected mode badge in status line, got %q", statusRow)
	}
	if !strings.Contains(statusRow, "test.go") {
		t.Fatalf("expected filename in status line, got %q", statusRow)
	}
}

func TestDrawMarksDirtyBufferInStatusLine(t *testing.T) {
	st := newTestState(t, "x")
	buf, _ := st.CurrentBuffer()
	buf.Insert(0, 0, 'y')
	grid := cellgrid.New(st.Width, st.Height, DefaultTheme().Default)
	gut := gutter.New(gutter.DefaultConfig())

	Draw(grid, st, gut, Frame{}, DefaultTheme())

	statusRow := rowText(grid, st.Height-2, st.Width)
	if !strings.Contains(statusRow, "[+]") {
		t.Fatalf("expected dirty marker [+] in status line, got %q", statusRow)
	}
}

func TestComputeCursorInsertModeIsBar(t *testing.T) {
	st := newTestState(t, "hello\n")
	st.Mode = action.Insert
	gut := gutter.New(gutter.DefaultConfig())

	cursor := computeCursor(st, gut, Frame{}, st.Height-2)
	if cursor.Style != backend.CursorBar {
		t.Fatalf("expected bar cursor in insert mode, got %v", cursor.Style)
	}
}

func TestComputeCursorPendingIsUnderline(t *testing.T) {
	st := newTestState(t, "hello\n")
	gut := gutter.New(gutter.DefaultConfig())

	cursor := computeCursor(st, gut, Frame{Pending: PendingInfo{Active: true, Label: "g"}}, st.Height-2)
	if cursor.Style != backend.CursorUnderline {
		t.Fatalf("expected underline cursor while a key-action is pending, got %v", cursor.Style)
	}
}

func TestDrawCommandLineShowsPendingRepeaterAndLabel(t *testing.T) {
	st := newTestState(t, "hello\n")
	grid := cellgrid.New(st.Width, st.Height, DefaultTheme().Default)

	drawCommandLine(grid, st.Height-1, st.Width, st, Frame{Pending: PendingInfo{Active: true, Repeater: 3, Label: "d"}}, DefaultTheme())

	row := rowText(grid, st.Height-1, st.Width)
	if len(row) != st.Width || !strings.HasPrefix(row[st.Width-10:], "3d") {
		t.Fatalf("expected pending '3d' in the rightmost 10 columns of the commandline, got %q", row)
	}
}

func TestDrawCommandLineShowsSearchPrompt(t *testing.T) {
	st := newTestState(t, "hello\n")
	st.Mode = action.Search
	st.SearchTerm = "foo"
	grid := cellgrid.New(st.Width, st.Height, DefaultTheme().Default)

	drawCommandLine(grid, st.Height-1, st.Width, st, Frame{}, DefaultTheme())

	row := rowText(grid, st.Height-1, st.Width)
	if !strings.HasPrefix(row, "/foo") {
		t.Fatalf("expected /foo search prompt, got %q", row)
	}
}

func rowText(grid *cellgrid.Grid, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := grid.At(x, y)
		if c.Glyph == 0 {
			continue
		}
		b.WriteRune(c.Glyph)
	}
	return b.String()
}
