package eventloop

import (
	"context"
	"testing"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/executor"
	"github.com/vellum-editor/vellum/internal/gutter"
	"github.com/vellum-editor/vellum/internal/keymap"
	"github.com/vellum-editor/vellum/internal/render"
	"github.com/vellum-editor/vellum/internal/renderer/backend"
	"github.com/vellum-editor/vellum/internal/state"
)

func newTestLoop(t *testing.T, text string) (*Loop, *backend.NullBackend) {
	t.Helper()
	be := backend.NewNullBackend(20, 6)
	if err := be.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	st := state.New(20, 6)
	buf := buffer.NewBufferFromString(text)
	st.OpenBuffer(buf, "test.go")

	km := keymap.New()
	km.Bind(action.Normal, "q", action.Single(action.NewQuit(true)))
	km.Bind(action.Normal, "i", action.Single(action.NewEnterMode(action.Insert)))
	resolver := keymap.NewResolver(km)

	ex := executor.New(st, nil, nil, ".")
	gut := gutter.New(gutter.DefaultConfig())

	return New(be, st, resolver, ex, gut, render.DefaultTheme(), nil, nil, nil), be
}

func TestHandleKeyEventQuits(t *testing.T) {
	loop, be := newTestLoop(t, "hello\n")
	ev := backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'}
	if stop := loop.handleBackendEvent(context.Background(), ev); !stop {
		t.Fatalf("expected the loop to report quitting after 'q'")
	}
	_ = be
}

func TestHandleKeyEventEntersInsertMode(t *testing.T) {
	loop, _ := newTestLoop(t, "hello\n")
	ev := backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'i'}
	if stop := loop.handleBackendEvent(context.Background(), ev); stop {
		t.Fatalf("did not expect quit")
	}
	if loop.State.Mode != action.Insert {
		t.Fatalf("expected Insert mode, got %v", loop.State.Mode)
	}
}

func TestHandleKeyEventInsertsUnmappedRuneInInsertMode(t *testing.T) {
	loop, _ := newTestLoop(t, "")
	loop.State.Mode = action.Insert
	ev := backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x'}
	loop.handleBackendEvent(context.Background(), ev)

	buf, _ := loop.State.CurrentBuffer()
	if got := buf.Contents(); got != "x" {
		t.Fatalf("expected buffer to contain inserted rune, got %q", got)
	}
}

func TestHandleResizeUpdatesState(t *testing.T) {
	loop, _ := newTestLoop(t, "hello\n")
	ev := backend.Event{Type: backend.EventResize, Width: 40, Height: 12}
	loop.handleBackendEvent(context.Background(), ev)
	if loop.State.Width != 40 || loop.State.Height != 12 {
		t.Fatalf("expected resized state, got %dx%d", loop.State.Width, loop.State.Height)
	}
}

func TestDrawWritesStatusLineToBackend(t *testing.T) {
	loop, be := newTestLoop(t, "hello\n")
	loop.draw()

	var row []rune
	for x := 0; x < loop.State.Width; x++ {
		row = append(row, be.GetCell(x, loop.State.Height-2).Rune)
	}
	if string(row) == "" {
		t.Fatalf("expected status line cells to be written to the backend")
	}
	found := false
	for _, r := range row {
		if r == 'N' {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected mode badge in the written status row, got %q", string(row))
	}
}

func TestRoutesHoverWithNoLSPClientIsNoop(t *testing.T) {
	loop, _ := newTestLoop(t, "hello\n")
	loop.dispatch(context.Background(), []action.Action{action.NewHover()})
	if loop.quitting {
		t.Fatalf("a Hover action with no LSP client must not quit the loop")
	}
}

func TestCommandModeAccumulatesRawText(t *testing.T) {
	loop, _ := newTestLoop(t, "hello\n")
	loop.State.Mode = action.CommandMode

	for _, r := range "w" {
		ev := backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
		loop.handleBackendEvent(context.Background(), ev)
	}
	if loop.State.CommandLine != "w" {
		t.Fatalf("expected CommandLine to accumulate typed runes, got %q", loop.State.CommandLine)
	}

	enter := backend.Event{Type: backend.EventKey, Key: backend.KeyEnter}
	loop.handleBackendEvent(context.Background(), enter)
	if loop.State.Mode != action.Normal {
		t.Fatalf("expected Enter to return to Normal mode, got %v", loop.State.Mode)
	}
	if loop.State.CommandLine != "" {
		t.Fatalf("expected CommandLine to clear after Enter, got %q", loop.State.CommandLine)
	}
}

func TestCommandModeEscapeCancels(t *testing.T) {
	loop, _ := newTestLoop(t, "hello\n")
	loop.State.Mode = action.CommandMode
	loop.State.CommandLine = "wq"

	esc := backend.Event{Type: backend.EventKey, Key: backend.KeyEscape}
	loop.handleBackendEvent(context.Background(), esc)
	if loop.State.Mode != action.Normal {
		t.Fatalf("expected Escape to return to Normal mode, got %v", loop.State.Mode)
	}
	if loop.State.CommandLine != "" {
		t.Fatalf("expected Escape to clear CommandLine, got %q", loop.State.CommandLine)
	}
}

func TestSearchModeAccumulatesIntoSearchTerm(t *testing.T) {
	loop, _ := newTestLoop(t, "hello world\nhello again\n")
	loop.State.Mode = action.Search

	for _, r := range "hello" {
		ev := backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
		loop.handleBackendEvent(context.Background(), ev)
	}
	if loop.State.SearchTerm != "hello" {
		t.Fatalf("expected SearchTerm to accumulate typed runes, got %q", loop.State.SearchTerm)
	}

	backspace := backend.Event{Type: backend.EventKey, Key: backend.KeyBackspace}
	loop.handleBackendEvent(context.Background(), backspace)
	if loop.State.SearchTerm != "hell" {
		t.Fatalf("expected Backspace to trim SearchTerm, got %q", loop.State.SearchTerm)
	}
}
