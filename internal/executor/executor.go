// Package executor applies atomic Actions to an EditorState, the single
// point where the editor's semantics (cursor movement, edits, undo,
// buffer lifecycle, command dispatch) are decided.
//
// Grounded on internal/dispatcher/handler.Handler's apply-and-report shape
// (Handle returns a result the caller redraws from) but built around the
// spec's closed Action/RedrawEffect sum types rather than the teacher's
// string-named-action/CombinedHandler system, which has no equivalent of
// a repeat-count-aware nested key dispatch or an insert-mode undo group.
package executor

import (
	"strings"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/command"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/state"
)

// ChangeNotifier is notified after a buffer mutation so the LSP Document
// Sync component can forward a didChange notification. Kept as a narrow
// interface here (rather than importing the lsp package directly) so the
// executor has no dependency on the transport/client wiring.
type ChangeNotifier interface {
	NotifyChange(id state.BufferID, buf *buffer.Buffer)
}

// DialogFactory constructs the concrete Component implementations for
// FilePicker/OpenPicker actions. The executor only ever sees the
// state.Component interface afterward; it never imports a concrete dialog
// package itself, preserving the one-way dependency SPEC_FULL.md §4.15
// requires.
type DialogFactory struct {
	FilePicker func(root string) state.Component
	ItemPicker func(title string, items []string, id string) state.Component
}

// Executor applies Actions to an EditorState.
type Executor struct {
	St       *state.EditorState
	Notifier ChangeNotifier
	Dialogs  *DialogFactory
	Root     string // working directory, used by FilePicker
}

// New creates an Executor over st.
func New(st *state.EditorState, notifier ChangeNotifier, dialogs *DialogFactory, root string) *Executor {
	return &Executor{St: st, Notifier: notifier, Dialogs: dialogs, Root: root}
}

// Apply applies a single Action and returns the resulting Effect.
func (ex *Executor) Apply(a action.Action) Effect {
	eff := ex.apply(a)
	ex.normalizeCursor()
	return eff
}

func (ex *Executor) apply(a action.Action) Effect {
	switch a.Kind {
	case action.MoveUp:
		return ex.moveVertical(-1)
	case action.MoveDown:
		return ex.moveVertical(1)
	case action.MoveLeft:
		if ex.St.CursorX > 0 {
			ex.St.CursorX--
		}
		return redrawCursor()
	case action.MoveRight:
		ex.St.CursorX++
		return redrawCursor()
	case action.MoveLineStart:
		ex.St.CursorX = 0
		return redrawCursor()
	case action.MoveLineEnd:
		if line, ok := ex.currentLine(); ok {
			ex.St.CursorX = maxInt(0, len([]rune(line)))
		}
		return redrawCursor()
	case action.MoveToTop:
		ex.St.CursorY = 0
		ex.St.ViewportTop = 0
		return redrawWindow()
	case action.MoveToBottom:
		buf, ok := ex.St.CurrentBuffer()
		if !ok {
			return none()
		}
		last := buf.NumLines() - 1
		ex.St.CursorY = last
		ex.scrollToShow(last)
		return redrawWindow()
	case action.MoveToNextWord:
		return ex.moveWord(true)
	case action.MoveToPrevWord:
		return ex.moveWord(false)
	case action.MoveToNextWordEnd:
		buf, ok := ex.St.CurrentBuffer()
		if !ok {
			return none()
		}
		ex.St.CursorX = buf.FindWordEnd(ex.St.CursorX, ex.St.CursorY)
		return redrawCursor()
	case action.MoveToPrevWordEnd:
		buf, ok := ex.St.CurrentBuffer()
		if !ok {
			return none()
		}
		ex.St.CursorX = buf.FindWordStart(ex.St.CursorX, ex.St.CursorY)
		return redrawCursor()

	case action.InsertCharAtCursorPos:
		return ex.insertChar(a.Rune)
	case action.DeleteCharAt:
		x, y := ex.resolveXY(a.X, a.Y)
		return ex.deleteCharAt(x, y)
	case action.DeletePreviousChar:
		return ex.deletePreviousChar()
	case action.DeleteWord:
		return ex.deleteWord()
	case action.DeleteCurrentLine:
		return ex.deleteLineAt(ex.St.CursorY)
	case action.DeleteLineAt:
		return ex.deleteLineAt(a.Y)
	case action.InsertLineAt:
		return ex.insertLineAt(a.Y, a.Text)
	case action.InsertLineBelowCursor:
		return ex.insertLineBelowOrAbove(true)
	case action.InsertLineAboveCursor:
		return ex.insertLineBelowOrAbove(false)
	case action.InsertLineAtCursor:
		return ex.insertLineAtCursor()
	case action.ReplaceLineAt:
		buf, ok := ex.St.CurrentBuffer()
		if !ok {
			return none()
		}
		buf.ReplaceLine(a.Y, a.Text)
		ex.notify()
		return redrawLine()

	case action.EnterMode:
		return ex.enterMode(a.Mode)

	case action.Quit:
		return ex.quit(a.Force)
	case action.Save:
		return ex.save()
	case action.SaveAs:
		return ex.saveAs(a.Path)

	case action.Undo:
		return ex.undo()
	case action.UndoMultiple:
		// Each member of the group was pushed in the order its forward
		// edit happened, already recorded as that edit's inverse; replay
		// them in reverse push order to fully undo the group.
		for i := len(a.Actions) - 1; i >= 0; i-- {
			ex.apply(a.Actions[i])
		}
		return redrawWindow()

	case action.GoToLine:
		return ex.goToLine(a.N, a.Pos)
	case action.MoveTo:
		ex.St.CursorX, ex.St.CursorY = a.X, a.Y
		ex.scrollToShow(ex.St.CursorY)
		return redrawWindow()
	case action.SetCursor:
		ex.St.CursorX, ex.St.CursorY = a.X, a.Y
		return redrawCursor()
	case action.MoveLineToViewportCenter:
		return ex.centerViewport()
	case action.PageUp:
		return ex.page(-1)
	case action.PageDown:
		return ex.page(1)
	case action.ScrollUp:
		return ex.scroll(-maxInt(1, a.N))
	case action.ScrollDown:
		return ex.scroll(maxInt(1, a.N))
	case action.FindNext:
		return ex.find(true)
	case action.FindPrev:
		return ex.find(false)

	case action.InsertStrAt:
		buf, ok := ex.St.CurrentBuffer()
		if !ok {
			return none()
		}
		buf.InsertStr(a.X, a.Y, a.Text)
		ex.notify()
		return redrawLine()

	case action.InsertTab:
		return ex.insertChar('\t')
	case action.InsertNewLine:
		return ex.insertNewLine()

	case action.OpenFile:
		return ex.openFile(a.Path)
	case action.OpenBuffer:
		return ex.openBufferByName(a.Text)
	case action.NextBuffer:
		return ex.cycleBuffer(1)
	case action.PrevBuffer:
		return ex.cycleBuffer(-1)
	case action.CloseBuffer:
		return ex.closeBuffer()

	case action.FilePicker:
		return ex.openFilePicker()
	case action.OpenPicker:
		return ex.openItemPicker(a.Title, a.Items, a.ID)
	case action.CloseDialog:
		ex.St.CurrentDialog = nil
		return redrawAll()
	case action.ShowDialog:
		return redrawAll()

	case action.Command:
		return ex.runCommand(a.Text)

	case action.ToggleWrap:
		ex.St.Wrap = !ex.St.Wrap
		return redrawAll()
	case action.IncreaseLeft:
		if !ex.St.Wrap {
			ex.St.ViewportLeft++
		}
		return redrawWindow()
	case action.DecreaseLeft:
		if !ex.St.Wrap && ex.St.ViewportLeft > 0 {
			ex.St.ViewportLeft--
		}
		return redrawWindow()
	case action.Click:
		ex.St.CursorX, ex.St.CursorY = a.X, a.Y
		return redrawCursor()
	case action.DumpBuffer:
		buf, ok := ex.St.CurrentBuffer()
		if !ok {
			return none()
		}
		return message(buf.Contents())

	case action.Print:
		return message(a.Text)
	case action.Suspend:
		return redrawAll()

	case action.RefreshDiagnostics, action.Hover, action.GoToDefinition,
		action.PluginCommand, action.Picked, action.SetWaitingKeyAction:
		// Handled by components outside the core executor (LSP client,
		// plugin host, dialog). A bare Action reaching here with no
		// listener attached is a no-op redraw.
		return none()

	default:
		return none()
	}
}

// --- movement ---------------------------------------------------------

func (ex *Executor) moveVertical(delta int) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	target := ex.St.CursorY + delta
	if target < 0 {
		target = 0
	}
	if last := buf.NumLines() - 1; target > last {
		target = last
	}
	ex.St.CursorY = target
	ex.scrollToShow(target)
	return redrawWindow()
}

func (ex *Executor) moveWord(forward bool) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	var x, y int
	var found bool
	if forward {
		x, y, found = buf.FindNextWord(ex.St.CursorX, ex.St.CursorY)
	} else {
		x, y, found = buf.FindPrevWord(ex.St.CursorX, ex.St.CursorY)
	}
	if !found {
		return none()
	}
	ex.St.CursorX, ex.St.CursorY = x, y
	ex.scrollToShow(y)
	return redrawWindow()
}

// resolveXY substitutes the live cursor position for a negative X or Y, so
// a static key binding can reference DeleteCharAt without knowing the
// cursor ahead of time.
func (ex *Executor) resolveXY(x, y int) (int, int) {
	if x < 0 {
		x = ex.St.CursorX
	}
	if y < 0 {
		y = ex.St.CursorY
	}
	return x, y
}

// --- editing ------------------------------------------------------------

func (ex *Executor) insertChar(r rune) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	ex.pushUndo(action.NewDeleteCharAt(ex.St.CursorX, ex.St.CursorY))
	buf.Insert(ex.St.CursorX, ex.St.CursorY, r)
	ex.St.CursorX++
	ex.notify()
	return redrawLine()
}

// deleteCharAt removes one character. Grounded on
// original_source/src/editor/mod.rs's Action::DeleteCharAt, which is not
// itself undo-tracked (only InsertCharAtCursorPos, DeleteCurrentLine and
// InsertNewLine push undo entries in the original).
func (ex *Executor) deleteCharAt(x, y int) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	buf.Remove(x, y)
	ex.notify()
	return redrawLine()
}

func (ex *Executor) deletePreviousChar() Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	if ex.St.CursorX == 0 && ex.St.CursorY == 0 {
		return none()
	}
	if ex.St.CursorX == 0 {
		// Join with the previous line, recording the inverse split as one
		// UndoMultiple (replayed in reverse: restore the previous line,
		// then re-insert the current one). The original implementation
		// doesn't attempt this join at all.
		prev, _ := buf.Get(ex.St.CursorY - 1)
		prevLen := len([]rune(prev))
		cur, _ := buf.Get(ex.St.CursorY)
		ex.pushUndo(action.NewUndoMultiple([]action.Action{
			action.NewInsertLineAt(ex.St.CursorY, cur),
			action.NewReplaceLineAt(ex.St.CursorY-1, prev),
		}))
		buf.RemoveLine(ex.St.CursorY)
		buf.InsertStr(prevLen, ex.St.CursorY-1, cur)
		ex.St.CursorY--
		ex.St.CursorX = prevLen
		ex.notify()
		return redrawWindow()
	}
	removed, _ := buf.Get(ex.St.CursorY)
	chars := []rune(removed)
	if ex.St.CursorX-1 < len(chars) {
		ex.pushUndo(action.NewInsertStrAt(ex.St.CursorX-1, ex.St.CursorY, string(chars[ex.St.CursorX-1])))
	}
	buf.Remove(ex.St.CursorX-1, ex.St.CursorY)
	ex.St.CursorX--
	ex.notify()
	return redrawLine()
}

func (ex *Executor) deleteWord() Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	end := buf.FindWordEnd(ex.St.CursorX, ex.St.CursorY)
	line, _ := buf.Get(ex.St.CursorY)
	chars := []rune(line)
	if end > len(chars) {
		end = len(chars)
	}
	if end > ex.St.CursorX {
		ex.pushUndo(action.NewInsertStrAt(ex.St.CursorX, ex.St.CursorY, string(chars[ex.St.CursorX:end])))
	}
	for i := ex.St.CursorX; i < end; i++ {
		buf.Remove(ex.St.CursorX, ex.St.CursorY)
	}
	ex.notify()
	return redrawLine()
}

func (ex *Executor) deleteLineAt(y int) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	content, removed := buf.RemoveLine(y)
	if !removed {
		return none()
	}
	ex.pushUndo(action.NewInsertLineAt(y, content))
	if ex.St.CursorY >= buf.NumLines() {
		ex.St.CursorY = buf.NumLines() - 1
	}
	ex.notify()
	return redrawWindow()
}

func (ex *Executor) insertLineAt(y int, text string) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	buf.InsertLine(y, text)
	ex.notify()
	return redrawWindow()
}

func (ex *Executor) insertLineBelowOrAbove(below bool) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	y := ex.St.CursorY
	if below {
		y++
	}
	buf.InsertLine(y, "")
	ex.pushUndo(action.NewDeleteLineAt(y))
	ex.St.CursorY = y
	ex.St.CursorX = 0
	ex.St.Mode = action.Insert
	ex.St.InsertUndoGroup = nil
	ex.notify()
	return redrawWindow()
}

func (ex *Executor) insertLineAtCursor() Effect {
	return ex.insertNewLine()
}

// insertNewLine implements insert-mode Enter: splits the current line at
// cx, carrying forward the leading-whitespace run as auto-indent, and
// records the fully-reversing undo triple.
func (ex *Executor) insertNewLine() Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	line, _ := buf.Get(ex.St.CursorY)
	chars := []rune(line)
	cx := ex.St.CursorX
	if cx > len(chars) {
		cx = len(chars)
	}
	indent := leadingWhitespace(chars)

	left := string(chars[:cx])
	right := string(chars[cx:])

	// Grounded on original_source/src/editor/mod.rs's InsertNewLine, which
	// extends insert_undo_actions with this same triple (MoveTo,
	// DeleteLineAt, ReplaceLineAt); UndoMultiple replays a group in
	// reverse, so pushing in this order undoes the split correctly:
	// restore the original line, drop the newly created line, then move
	// the cursor back.
	ex.pushUndo(action.NewMoveTo(cx, ex.St.CursorY+1))
	ex.pushUndo(action.NewDeleteLineAt(ex.St.CursorY + 1))
	ex.pushUndo(action.NewReplaceLineAt(ex.St.CursorY, line))

	buf.ReplaceLine(ex.St.CursorY, left)
	buf.InsertLine(ex.St.CursorY+1, indent+right)

	ex.St.CursorY++
	ex.St.CursorX = len([]rune(indent))
	ex.scrollToShow(ex.St.CursorY)
	ex.notify()
	return redrawWindow()
}

func leadingWhitespace(chars []rune) string {
	i := 0
	for i < len(chars) && (chars[i] == ' ' || chars[i] == '\t') {
		i++
	}
	return string(chars[:i])
}

// --- modes ----------------------------------------------------------------

func (ex *Executor) enterMode(m action.Mode) Effect {
	prev := ex.St.Mode
	if prev == action.Insert && m != action.Insert && len(ex.St.InsertUndoGroup) > 0 {
		group := ex.St.InsertUndoGroup
		ex.St.InsertUndoGroup = nil
		ex.St.UndoStack = append(ex.St.UndoStack, action.NewUndoMultiple(group))
	}
	if m == action.Insert && prev != action.Insert {
		ex.St.InsertUndoGroup = nil
	}
	ex.St.Mode = m
	return redrawAll()
}

// --- quit / save ------------------------------------------------------------

func (ex *Executor) quit(force bool) Effect {
	if force {
		return quit(true)
	}
	if dirty := ex.St.DirtyBufferNames(); len(dirty) > 0 {
		return errEffect("The following buffers have unwritten changes: " + strings.Join(dirty, ", "))
	}
	return quit(false)
}

func (ex *Executor) save() Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	if err := buf.Save(); err != nil {
		return errEffect(err.Error())
	}
	return message("written")
}

func (ex *Executor) saveAs(path string) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	buf.SetFilePath(path)
	if err := buf.Save(); err != nil {
		return errEffect(err.Error())
	}
	return message("written " + path)
}

// --- undo -----------------------------------------------------------------

func (ex *Executor) pushUndo(a action.Action) {
	if ex.St.Mode == action.Insert {
		ex.St.InsertUndoGroup = append(ex.St.InsertUndoGroup, a)
		return
	}
	ex.St.UndoStack = append(ex.St.UndoStack, a)
}

func (ex *Executor) undo() Effect {
	n := len(ex.St.UndoStack)
	if n == 0 {
		return none()
	}
	entry := ex.St.UndoStack[n-1]
	ex.St.UndoStack = ex.St.UndoStack[:n-1]
	return Combine(ex.apply(entry), redrawWindow())
}

// --- navigation --------------------------------------------------------

func (ex *Executor) goToLine(n int, pos action.GoToLinePosition) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	target := n - 1
	if n < 0 {
		target = buf.NumLines() - 1
	}
	if target < 0 {
		target = 0
	}
	if last := buf.NumLines() - 1; target > last {
		target = last
	}
	ex.St.CursorY = target

	h := maxInt(1, ex.St.Height)
	if target >= ex.St.ViewportTop && target < ex.St.ViewportTop+h {
		return redrawWindow() // already visible
	}
	last := buf.NumLines() - 1
	switch {
	case target < h: // first page: flush to the top edge
		ex.St.ViewportTop = 0
		return redrawWindow()
	case target > last-h: // last page: flush to the bottom edge
		ex.St.ViewportTop = maxInt(0, last-h+1)
		return redrawWindow()
	}

	switch pos {
	case action.PositionTop:
		ex.St.ViewportTop = target
	case action.PositionBottom:
		ex.St.ViewportTop = maxInt(0, target-h+1)
	default: // PositionCenter
		ex.St.ViewportTop = maxInt(0, target-h/2)
	}
	return redrawWindow()
}

func (ex *Executor) centerViewport() Effect {
	h := maxInt(1, ex.St.Height)
	target := maxInt(0, ex.St.CursorY-h/2)
	ex.St.ViewportTop = target
	return redrawWindow()
}

func (ex *Executor) page(dir int) Effect {
	h := maxInt(1, ex.St.Height)
	return ex.scroll(dir * h)
}

func (ex *Executor) scroll(delta int) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return none()
	}
	top := ex.St.ViewportTop + delta
	if top < 0 {
		top = 0
	}
	if last := buf.NumLines() - 1; top > last {
		top = last
	}
	ex.St.ViewportTop = top
	ex.St.CursorY = clamp(ex.St.CursorY, top, top+maxInt(0, ex.St.Height-1))
	if last := buf.NumLines() - 1; ex.St.CursorY > last {
		ex.St.CursorY = last
	}
	return redrawWindow()
}

func (ex *Executor) scrollToShow(line int) {
	h := maxInt(1, ex.St.Height)
	if line < ex.St.ViewportTop {
		ex.St.ViewportTop = line
	} else if line >= ex.St.ViewportTop+h {
		ex.St.ViewportTop = line - h + 1
	}
}

func (ex *Executor) find(forward bool) Effect {
	buf, ok := ex.St.CurrentBuffer()
	if !ok || ex.St.SearchTerm == "" {
		return none()
	}
	var x, y int
	var found bool
	if forward {
		x, y, found = buf.FindNext(ex.St.SearchTerm, ex.St.CursorX, ex.St.CursorY)
	} else {
		x, y, found = buf.FindPrev(ex.St.SearchTerm, ex.St.CursorX, ex.St.CursorY)
	}
	if !found {
		return message("pattern not found: " + ex.St.SearchTerm)
	}
	ex.St.CursorX, ex.St.CursorY = x, y
	ex.scrollToShow(y)
	return redrawWindow()
}

// --- buffers ---------------------------------------------------------------

func (ex *Executor) openFile(path string) Effect {
	if path == "" {
		return errEffect("open-file: no path given")
	}
	buf, err := buffer.NewFromFile(path)
	if err != nil {
		return errEffect(err.Error())
	}
	id := ex.St.OpenBuffer(buf, path)
	ex.St.CursorX, ex.St.CursorY = 0, 0
	ex.St.ViewportTop = 0
	return Effect{Kind: EffectNewBuffer, Buffer: int(id)}
}

func (ex *Executor) openBufferByName(name string) Effect {
	for i, id := range ex.St.Order {
		if ex.St.Arena.Name(id) == name {
			ex.St.Current = i
			return redrawAll()
		}
	}
	return errEffect("no such buffer: " + name)
}

func (ex *Executor) cycleBuffer(dir int) Effect {
	n := len(ex.St.Order)
	if n == 0 {
		return none()
	}
	ex.St.Current = ((ex.St.Current+dir)%n + n) % n
	return redrawAll()
}

func (ex *Executor) closeBuffer() Effect {
	id, ok := ex.St.CurrentBufferID()
	if !ok {
		return none()
	}
	ex.St.Arena.Remove(id)
	ex.St.Order = append(ex.St.Order[:ex.St.Current], ex.St.Order[ex.St.Current+1:]...)
	if ex.St.Current >= len(ex.St.Order) {
		ex.St.Current = len(ex.St.Order) - 1
	}
	return redrawAll()
}

// --- dialogs -------------------------------------------------------------

func (ex *Executor) openFilePicker() Effect {
	if ex.Dialogs == nil || ex.Dialogs.FilePicker == nil {
		return errEffect("file picker is not available")
	}
	ex.St.CurrentDialog = ex.Dialogs.FilePicker(ex.Root)
	return redrawAll()
}

func (ex *Executor) openItemPicker(title string, items []string, id string) Effect {
	if ex.Dialogs == nil || ex.Dialogs.ItemPicker == nil {
		return errEffect("item picker is not available")
	}
	ex.St.CurrentDialog = ex.Dialogs.ItemPicker(title, items, id)
	return redrawAll()
}

// --- command line ----------------------------------------------------------

func (ex *Executor) runCommand(text string) Effect {
	text = strings.TrimSpace(text)
	if text == "" {
		return none()
	}

	if n, ok := parseGoToLine(text); ok {
		return ex.goToLine(n, action.PositionCenter)
	}

	parsed, ok := command.Parse(commandSet, text)
	if !ok {
		return errEffect("unknown command \"" + text + "\"")
	}

	var eff Effect = none()
	for _, name := range parsed.Commands {
		for _, a := range actionsForCommand(name, parsed.IsForced()) {
			eff = Combine(eff, ex.apply(a))
			if eff.Kind == EffectQuit || eff.Kind == EffectError {
				return eff
			}
		}
	}
	return eff
}

func parseGoToLine(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n := 0
	for _, r := range text {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// --- helpers ---------------------------------------------------------------

func (ex *Executor) currentLine() (string, bool) {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return "", false
	}
	return buf.Get(ex.St.CursorY)
}

func (ex *Executor) notify() {
	if ex.Notifier == nil {
		return
	}
	id, ok := ex.St.CurrentBufferID()
	if !ok {
		return
	}
	buf, ok := ex.St.Arena.Get(id)
	if !ok {
		return
	}
	ex.Notifier.NotifyChange(id, buf)
}

// normalizeCursor enforces the bounds-check invariant required before
// every draw: cx fits the current line (or is <= line length in insert
// mode), and cy fits the viewport.
func (ex *Executor) normalizeCursor() {
	buf, ok := ex.St.CurrentBuffer()
	if !ok {
		return
	}
	if last := buf.NumLines() - 1; ex.St.CursorY > last {
		ex.St.CursorY = maxInt(0, last)
	}
	if ex.St.CursorY < 0 {
		ex.St.CursorY = 0
	}

	line, _ := buf.Get(ex.St.CursorY)
	length := len([]rune(line))
	maxX := length
	if ex.St.Mode != action.Insert && length > 0 {
		maxX = length - 1
	}
	if ex.St.CursorX > maxX {
		ex.St.CursorX = maxX
	}
	if ex.St.CursorX < 0 {
		ex.St.CursorX = 0
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
