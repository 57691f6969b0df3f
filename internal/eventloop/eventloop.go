// Package eventloop drives the editor's single-threaded, per-event cycle:
// poll one backend.Event, resolve it to zero or more actions, apply each
// through the Action Executor, route the handful of action kinds the
// executor deliberately leaves untouched to the LSP client / plugin host /
// dialog layer, then redraw unconditionally (SPEC_FULL.md §4.11).
//
// Grounded on internal/app/eventloop.go's Application.handleBackendEvent /
// handleKeyEvent / handleMouseEvent / handlePasteEvent / convertToKeyEvent /
// mapBackendKey, adapted from that file's mode.Manager dispatch to this
// repo's keymap.Resolver / action.KeyAction / executor.Executor pipeline.
package eventloop

import (
	"context"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/executor"
	"github.com/vellum-editor/vellum/internal/gutter"
	"github.com/vellum-editor/vellum/internal/highlight"
	"github.com/vellum-editor/vellum/internal/input/key"
	"github.com/vellum-editor/vellum/internal/keymap"
	"github.com/vellum-editor/vellum/internal/lsp"
	"github.com/vellum-editor/vellum/internal/render"
	"github.com/vellum-editor/vellum/internal/renderer/backend"
	"github.com/vellum-editor/vellum/internal/renderer/core"
	"github.com/vellum-editor/vellum/internal/state"
)

// PluginHost is the subset of the plugin host's surface the loop needs to
// route action.PluginCommand to. Kept as an interface here (rather than an
// import of internal/pluginhost) so this package does not dictate the
// plugin host's construction.
type PluginHost interface {
	Dispatch(ctx context.Context, command string) error
}

// Loop owns one full pass through backend events for one EditorState. It is
// not safe for concurrent use; the editor runs exactly one Loop.
type Loop struct {
	Backend  backend.Backend
	State    *state.EditorState
	Resolver *keymap.Resolver
	Executor *executor.Executor
	Gutter   *gutter.Gutter
	Theme    render.Theme

	// Highlighter produces syntax spans for the current buffer's text; nil
	// disables highlighting (plain-text rendering still works).
	Highlighter *highlight.Session

	// LSP is optional; a nil client makes Hover/GoToDefinition/
	// RefreshDiagnostics no-ops instead of panicking.
	LSP *lsp.Client

	// Plugins is optional; a nil host makes PluginCommand a no-op.
	Plugins PluginHost

	// HoverFactory builds the state.Component a Hover action opens, given
	// the LSP response (possibly nil). Left nil, Hover falls back to
	// setting LastMessage instead of opening a popup. Kept as a factory
	// function (mirroring executor.DialogFactory) so this package never
	// imports a concrete dialog package.
	HoverFactory func(*lsp.Hover) state.Component

	prevGrid  *cellgrid.Grid
	lastError string
	quitting  bool
}

// New builds a Loop ready to Run. lsp and plugins may be nil.
func New(be backend.Backend, st *state.EditorState, resolver *keymap.Resolver, ex *executor.Executor, gut *gutter.Gutter, theme render.Theme, highlighter *highlight.Session, lspClient *lsp.Client, plugins PluginHost) *Loop {
	return &Loop{
		Backend:     be,
		State:       st,
		Resolver:    resolver,
		Executor:    ex,
		Gutter:      gut,
		Theme:       theme,
		Highlighter: highlighter,
		LSP:         lspClient,
		Plugins:     plugins,
	}
}

// Run polls and handles backend events until a Quit action (or ctx
// cancellation) ends the loop. It draws once before the first event so the
// initial screen is populated.
func (l *Loop) Run(ctx context.Context) error {
	l.draw()
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ev := l.Backend.PollEvent()
		if l.handleBackendEvent(ctx, ev) {
			return nil
		}
		l.draw()
	}
}

// handleBackendEvent processes one backend.Event and reports whether the
// loop should stop.
func (l *Loop) handleBackendEvent(ctx context.Context, ev backend.Event) bool {
	switch ev.Type {
	case backend.EventResize:
		l.State.Width, l.State.Height = ev.Width, ev.Height
	case backend.EventKey:
		l.handleKeyEvent(ctx, ev)
	case backend.EventMouse:
		l.handleMouseEvent(ctx, ev)
	case backend.EventPaste:
		l.handlePasteEvent(ctx, ev)
	case backend.EventFocus:
		// No editor-visible behavior hangs off focus changes yet.
	}
	return l.quitting
}

func (l *Loop) handleKeyEvent(ctx context.Context, ev backend.Event) {
	keyEv := convertToKeyEvent(ev)

	if l.State.CurrentDialog != nil {
		if keyEv.IsEscape() {
			l.State.CurrentDialog = nil
			return
		}
		a, open := l.State.CurrentDialog.HandleKey(keyEv.VimString())
		if !open {
			l.State.CurrentDialog = nil
		}
		l.dispatch(ctx, []action.Action{a})
		return
	}

	if l.State.Mode == action.CommandMode || l.State.Mode == action.Search {
		l.handleCommandLineKey(ctx, keyEv)
		return
	}

	result := l.Resolver.Resolve(l.State.Mode, keyEv)
	if !result.Resolved {
		return
	}
	l.dispatch(ctx, result.KeyAction.Flatten())
}

// handleCommandLineKey accumulates raw text for CommandMode/Search into
// St.CommandLine/St.SearchTerm, bypassing the KeyMap Resolver entirely:
// neither mode dispatches through bindings, since every printable
// character is data rather than a command. Grounded on
// original_source/src/editor/mod.rs's handle_command_event and
// handle_search_event, which likewise special-case these two modes ahead
// of the normal key-resolution path.
func (l *Loop) handleCommandLineKey(ctx context.Context, keyEv key.Event) {
	mode := l.State.Mode
	line := func() string {
		if mode == action.Search {
			return l.State.SearchTerm
		}
		return l.State.CommandLine
	}
	setLine := func(s string) {
		if mode == action.Search {
			l.State.SearchTerm = s
		} else {
			l.State.CommandLine = s
		}
	}

	switch {
	case keyEv.IsEscape():
		setLine("")
		l.State.Mode = action.Normal
		return

	case keyEv.Key == key.KeyEnter:
		text := line()
		setLine("")
		l.State.Mode = action.Normal
		if mode == action.Search {
			if text != "" {
				l.dispatch(ctx, []action.Action{action.NewFindNext()})
			}
			return
		}
		l.dispatch(ctx, []action.Action{action.NewCommand(text)})
		return

	case keyEv.Key == key.KeyBackspace:
		cur := []rune(line())
		if len(cur) > 0 {
			setLine(string(cur[:len(cur)-1]))
		}
		return

	case keyEv.IsRune() && !keyEv.IsModified():
		setLine(line() + string(keyEv.Rune))
		return
	}
}

func (l *Loop) handleMouseEvent(ctx context.Context, ev backend.Event) {
	a := keymap.MouseAction(ev.MouseX, ev.MouseY, l.State.ViewportTop,
		ev.MouseButton == backend.MouseWheelUp, ev.MouseButton == backend.MouseWheelDown)
	l.dispatch(ctx, []action.Action{a})
}

func (l *Loop) handlePasteEvent(ctx context.Context, ev backend.Event) {
	if ev.PasteText == "" {
		return
	}
	l.dispatch(ctx, []action.Action{action.NewInsertStrAt(l.State.CursorX, l.State.CursorY, ev.PasteText)})
}

// dispatch applies each action in order, routing the kinds the core
// Executor leaves untouched (Hover, GoToDefinition, RefreshDiagnostics,
// PluginCommand, Picked, SetWaitingKeyAction) to the LSP client, plugin
// host, or dialog layer instead.
func (l *Loop) dispatch(ctx context.Context, actions []action.Action) {
	for _, a := range actions {
		if l.routeExternal(ctx, a) {
			continue
		}
		eff := l.Executor.Apply(a)
		l.applyEffect(ctx, eff)
		if l.quitting {
			return
		}
	}
}

func (l *Loop) routeExternal(ctx context.Context, a action.Action) bool {
	switch a.Kind {
	case action.Hover:
		l.showHover(ctx)
		return true
	case action.GoToDefinition:
		l.goToDefinition(ctx)
		return true
	case action.RefreshDiagnostics:
		l.refreshDiagnostics(ctx)
		return true
	case action.PluginCommand:
		if l.Plugins != nil {
			if err := l.Plugins.Dispatch(ctx, a.Text); err != nil {
				l.lastError = err.Error()
			}
		}
		return true
	case action.SetWaitingKeyAction:
		// The Resolver already owns pending-sequence state; nothing
		// further to do here.
		return true
	case action.Picked:
		if l.State.CurrentDialog != nil {
			l.State.CurrentDialog = nil
		}
		return false
	default:
		return false
	}
}

// applyEffect reacts to the Effect an Apply call returned. EffectQuit stops
// the loop and EffectActions re-dispatches its actions; every other branch
// merely updates loop-local display state; the actual
// redraw happens unconditionally once per event in Run.
func (l *Loop) applyEffect(ctx context.Context, eff executor.Effect) {
	switch eff.Kind {
	case executor.EffectQuit:
		l.quitting = true
	case executor.EffectError:
		l.lastError = eff.Message
		l.State.LastMessage = eff.Message
	case executor.EffectMessage:
		l.lastError = ""
		l.State.LastMessage = eff.Message
	case executor.EffectActions:
		l.dispatch(ctx, eff.Actions)
	default:
		// Redraw kinds (cursor/line/window/all) and EffectNewBuffer need
		// no extra bookkeeping: the next draw() call always repaints from
		// current EditorState.
	}
}

func (l *Loop) currentPath() (string, bool) {
	buf, ok := l.State.CurrentBuffer()
	if !ok {
		return "", false
	}
	path := buf.FilePath()
	if path == "" {
		return "", false
	}
	return path, true
}

func (l *Loop) cursorPosition() lsp.Position {
	return lsp.Position{Line: l.State.CursorY, Character: l.State.CursorX}
}

func (l *Loop) showHover(ctx context.Context) {
	if l.LSP == nil {
		return
	}
	path, ok := l.currentPath()
	if !ok {
		return
	}
	hover, err := l.LSP.Hover(ctx, path, l.cursorPosition())
	if err != nil {
		l.lastError = err.Error()
		return
	}
	if hover == nil {
		return
	}
	if l.HoverFactory != nil {
		l.State.CurrentDialog = l.HoverFactory(hover)
		return
	}
	l.State.LastMessage = hover.Contents.Value
}

func (l *Loop) goToDefinition(ctx context.Context) {
	if l.LSP == nil {
		return
	}
	path, ok := l.currentPath()
	if !ok {
		return
	}
	result, err := l.LSP.GoToDefinition(ctx, path, l.cursorPosition())
	if err != nil {
		l.lastError = err.Error()
		return
	}
	if result == nil || result.Primary == nil {
		return
	}
	loc := result.Primary
	if string(loc.URI) == "file://"+path {
		l.State.CursorY = loc.Range.Start.Line
		l.State.CursorX = loc.Range.Start.Character
	}
}

func (l *Loop) refreshDiagnostics(ctx context.Context) {
	if l.LSP == nil {
		return
	}
	path, ok := l.currentPath()
	if !ok {
		return
	}
	buf, ok := l.State.CurrentBuffer()
	if !ok {
		return
	}
	diags := l.LSP.Diagnostics(path)
	buf.SetDiagnostics(toBufferDiagnostics(diags))
}

func toBufferDiagnostics(diags []lsp.Diagnostic) []buffer.Diagnostic {
	out := make([]buffer.Diagnostic, 0, len(diags))
	for _, d := range diags {
		code, _ := d.Code.(string)
		out = append(out, buffer.Diagnostic{
			StartLine: uint32(d.Range.Start.Line),
			StartChar: uint32(d.Range.Start.Character),
			EndLine:   uint32(d.Range.End.Line),
			EndChar:   uint32(d.Range.End.Character),
			Severity:  int(d.Severity),
			Code:      code,
			Message:   d.Message,
		})
	}
	return out
}

// draw renders the current state into a fresh grid, diffs it against the
// previous frame, and writes only the changed cells to the backend.
func (l *Loop) draw() {
	grid := cellgrid.New(l.State.Width, l.State.Height, l.Theme.Default)
	label, repeater, active := l.Resolver.Pending()
	frame := render.Frame{
		Highlighter: l.Highlighter,
		Pending:     render.PendingInfo{Label: label, Repeater: repeater, Active: active},
		LastError:   l.lastError,
	}
	cursor := render.Draw(grid, l.State, l.Gutter, frame, l.Theme)

	for _, ch := range grid.Diff(l.prevGrid) {
		l.Backend.SetCell(ch.X, ch.Y, core.NewCell(ch.Cell.Glyph).WithStyle(ch.Cell.Style))
	}
	l.prevGrid = grid

	if cursor.Style == backend.CursorHidden {
		l.Backend.HideCursor()
	} else {
		l.Backend.SetCursorStyle(cursor.Style)
		l.Backend.ShowCursor(cursor.X, cursor.Y)
	}
	l.Backend.Show()
}

// convertToKeyEvent converts a backend.Event to a key.Event, following the
// same modifier and special-key mapping as the teacher's Application.
func convertToKeyEvent(ev backend.Event) key.Event {
	k := mapBackendKey(ev.Key)

	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	return key.NewEvent(k, ev.Rune, mods)
}

// mapFunctionKey maps backend.KeyF1..KeyF12 onto key.KeyF1..KeyF12, relying
// on both enums keeping their function keys in contiguous, parallel order.
func mapFunctionKey(bk backend.Key) key.Key {
	return key.KeyF1 + key.Key(bk-backend.KeyF1)
}

func mapBackendKey(bk backend.Key) key.Key {
	switch bk {
	case backend.KeyRune:
		return key.KeyRune
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyBackspace:
		return key.KeyBackspace
	case backend.KeyDelete:
		return key.KeyDelete
	case backend.KeyInsert:
		return key.KeyInsert
	case backend.KeyHome:
		return key.KeyHome
	case backend.KeyEnd:
		return key.KeyEnd
	case backend.KeyPageUp:
		return key.KeyPageUp
	case backend.KeyPageDown:
		return key.KeyPageDown
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	case backend.KeyF1, backend.KeyF2, backend.KeyF3, backend.KeyF4, backend.KeyF5, backend.KeyF6,
		backend.KeyF7, backend.KeyF8, backend.KeyF9, backend.KeyF10, backend.KeyF11, backend.KeyF12:
		return mapFunctionKey(bk)
	case backend.KeyCtrlH:
		return key.KeyBackspace
	case backend.KeyCtrlI:
		return key.KeyTab
	case backend.KeyCtrlJ, backend.KeyCtrlM:
		return key.KeyEnter
	case backend.KeyCtrlA, backend.KeyCtrlB, backend.KeyCtrlC, backend.KeyCtrlD,
		backend.KeyCtrlE, backend.KeyCtrlF, backend.KeyCtrlG, backend.KeyCtrlK,
		backend.KeyCtrlL, backend.KeyCtrlN, backend.KeyCtrlO, backend.KeyCtrlP,
		backend.KeyCtrlQ, backend.KeyCtrlR, backend.KeyCtrlS, backend.KeyCtrlT,
		backend.KeyCtrlU, backend.KeyCtrlV, backend.KeyCtrlW, backend.KeyCtrlX,
		backend.KeyCtrlY, backend.KeyCtrlZ, backend.KeyCtrlSpace:
		return key.KeyRune
	default:
		return key.KeyNone
	}
}
