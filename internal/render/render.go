// Package render composes the gutter, viewport, statusline, commandline,
// and diagnostics overlay into one frame and reports where the terminal
// cursor should land, for internal/eventloop to push through a
// internal/renderer/backend.Backend each redraw.
//
// Layout and draw order are grounded on
// original_source/src/editor/rendering.rs's render_main_content /
// render_ui_chrome / render_diagnostics / draw_statusline /
// draw_commandline / draw_cursor / set_cursor_style, re-expressed over
// this repository's internal/cellgrid, internal/gutter, and
// internal/viewport rather than that file's RenderBuffer/StyleInfo pair.
package render

import (
	"context"
	"strings"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/gutter"
	"github.com/vellum-editor/vellum/internal/highlight"
	"github.com/vellum-editor/vellum/internal/renderer/backend"
	"github.com/vellum-editor/vellum/internal/renderer/core"
	"github.com/vellum-editor/vellum/internal/state"
	"github.com/vellum-editor/vellum/internal/viewport"
)

// Theme collects every style the Render Pipeline needs, sourced from the
// Config/Theme Adapter's resolved palette (internal/config).
type Theme struct {
	ModeStyle      map[action.Mode]core.Style
	StatusOuter    core.Style // mode badge background/foreground
	StatusInner    core.Style // filename/position segment
	Separator      rune
	CommandLine    core.Style
	ErrorLine      core.Style
	LineHighlight  core.Style
	Selection      core.Style
	DiagnosticText core.Style
	Default        core.Style
	Gutter         viewport.GutterPalette
	Syntax         highlight.Theme
}

// DefaultTheme returns a usable theme when no Config/Theme Adapter palette
// has been resolved yet (e.g. in tests, or before config load completes).
func DefaultTheme() Theme {
	return Theme{
		ModeStyle: map[action.Mode]core.Style{
			action.Normal:      core.NewStyle(core.ColorBlue),
			action.Insert:      core.NewStyle(core.ColorGreen),
			action.CommandMode: core.NewStyle(core.ColorYellow),
			action.Search:      core.NewStyle(core.ColorYellow),
			action.Visual:      core.NewStyle(core.ColorMagenta),
			action.VisualLine:  core.NewStyle(core.ColorMagenta),
			action.VisualBlock: core.NewStyle(core.ColorMagenta),
		},
		StatusOuter:    core.NewStyle(core.ColorBlue).Reverse(),
		StatusInner:    core.DefaultStyle(),
		Separator:      '',
		CommandLine:    core.DefaultStyle(),
		ErrorLine:      core.NewStyle(core.ColorRed),
		LineHighlight:  core.DefaultStyle(),
		Selection:      core.NewStyle(core.ColorWhite).Reverse(),
		DiagnosticText: core.DefaultStyle().Dim(),
		Default:        core.DefaultStyle(),
	}
}

// PendingInfo mirrors keymap.Resolver.Pending()'s result, passed in rather
// than imported directly so this package doesn't need to depend on the
// resolver's internal sequence-accumulation state.
type PendingInfo struct {
	Label    string
	Repeater int
	Active   bool
}

// Frame is everything one redraw needs to know beyond the EditorState
// itself: the active highlighter session for the current buffer (nil if
// the file type is unsupported), and the key resolver's pending state
// (drives the waiting-command display and cursor style).
type Frame struct {
	Highlighter *highlight.Session
	Pending     PendingInfo
	LastError   string
}

// Cursor reports where the terminal cursor should be placed after a frame
// is drawn, and in what style.
type Cursor struct {
	X, Y  int
	Style backend.CursorStyle
}

// diagnosticSigns adapts a buffer's LSP diagnostics to gutter.SignProvider.
type diagnosticSigns struct {
	byLine map[uint32]gutter.Severity
}

func newDiagnosticSigns(diags []buffer.Diagnostic) *diagnosticSigns {
	ds := &diagnosticSigns{byLine: make(map[uint32]gutter.Severity)}
	for _, d := range diags {
		sev := severityFromLSP(d.Severity)
		if cur, ok := ds.byLine[d.StartLine]; !ok || sev > cur {
			ds.byLine[d.StartLine] = sev
		}
	}
	return ds
}

func (d *diagnosticSigns) SeverityForLine(line uint32) gutter.Severity {
	return d.byLine[line]
}

// severityFromLSP maps LSP's 1=Error..4=Hint numbering onto gutter's
// highest-wins ordering (SeverityError highest).
func severityFromLSP(sev int) gutter.Severity {
	switch sev {
	case 1:
		return gutter.SeverityError
	case 2:
		return gutter.SeverityWarning
	case 3:
		return gutter.SeverityInfo
	case 4:
		return gutter.SeverityHint
	default:
		return gutter.SeverityNone
	}
}

// Draw renders one full frame into grid and returns the resulting cursor
// position/style. grid must already be sized to st.Width x st.Height.
func Draw(grid *cellgrid.Grid, st *state.EditorState, gut *gutter.Gutter, frame Frame, theme Theme) Cursor {
	textHeight := st.Height - 2
	if textHeight < 0 {
		textHeight = 0
	}

	buf, hasBuffer := st.CurrentBuffer()

	var spans viewport.SpanLookup
	if hasBuffer && frame.Highlighter != nil {
		spans = buildSpanLookup(buf, frame.Highlighter, theme.Syntax)
	}

	if hasBuffer {
		gut.SetCurrentLine(uint32(st.CursorY))
		gut.SetSignProvider(newDiagnosticSigns(buf.Diagnostics()))

		cfg := viewport.Config{
			Width: st.Width - gut.Width(), Height: textHeight,
			Top: st.ViewportTop, Left: st.ViewportLeft, Wrap: st.Wrap,
		}
		viewport.Draw(grid, 0, 0, cfg, buf, gut, spans, theme.Gutter, theme.Default)
		highlightCurrentLine(grid, st, gut, textHeight, theme)
		drawDiagnosticsOverlay(grid, st, gut, buf, textHeight, theme)
	} else {
		fillRows(grid, 0, 0, st.Width, textHeight, theme.Default)
	}

	drawStatusLine(grid, st.Height-2, st.Width, st, theme)
	drawCommandLine(grid, st.Height-1, st.Width, st, frame, theme)

	if st.CurrentDialog != nil {
		st.CurrentDialog.Render(grid, 0, 0, st.Width, textHeight)
	}

	return computeCursor(st, gut, frame, textHeight)
}

// buildSpanLookup highlights the whole buffer once per frame (Session.
// Highlight reparses incrementally against its own retained tree, which
// only makes sense across whole-buffer calls, not per-line snippets) and
// returns a SpanLookup that slices the single byte-indexed result into
// each line's line-relative spans.
func buildSpanLookup(buf *buffer.Buffer, sess *highlight.Session, theme highlight.Theme) viewport.SpanLookup {
	all, err := sess.Highlight(context.Background(), []byte(buf.Text()), theme)
	if err != nil {
		return nil
	}
	return func(line int) []highlight.StyleInfo {
		start := uint32(buf.LineStartOffset(uint32(line)))
		end := uint32(buf.LineEndOffset(uint32(line)))
		var out []highlight.StyleInfo
		for _, span := range all {
			if span.EndByte <= start || span.StartByte >= end {
				continue
			}
			relStart := span.StartByte
			if relStart < start {
				relStart = start
			}
			relEnd := span.EndByte
			if relEnd > end {
				relEnd = end
			}
			out = append(out, highlight.StyleInfo{
				StartByte: relStart - start,
				EndByte:   relEnd - start,
				Style:     span.Style,
			})
		}
		return out
	}
}

func fillRows(grid *cellgrid.Grid, x, y, width, height int, style core.Style) {
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			grid.SetChar(x+col, y+row, ' ', style)
		}
	}
}

// highlightCurrentLine overlays the cursor's screen row with the
// line-highlight style, leaving glyphs intact (the original's
// render_dirty_overlays applies the same style-only overlay rather than
// redrawing text).
func highlightCurrentLine(grid *cellgrid.Grid, st *state.EditorState, gut *gutter.Gutter, textHeight int, theme Theme) {
	row := st.CursorY - st.ViewportTop
	if row < 0 || row >= textHeight {
		return
	}
	width, _ := grid.Size()
	for x := gut.Width(); x < width; x++ {
		c := grid.At(x, row)
		grid.SetChar(x, row, c.Glyph, c.Style.Merge(theme.LineHighlight))
	}
}

// drawDiagnosticsOverlay draws a per-line diagnostic-count indicator after
// the line's text, followed by the first diagnostic's message truncated to
// fit, matching render_line_diagnostics.
func drawDiagnosticsOverlay(grid *cellgrid.Grid, st *state.EditorState, gut *gutter.Gutter, buf *buffer.Buffer, textHeight int, theme Theme) {
	width, _ := grid.Size()
	byLine := map[int][]buffer.Diagnostic{}
	for _, d := range buf.Diagnostics() {
		byLine[int(d.StartLine)] = append(byLine[int(d.StartLine)], d)
	}

	for row := 0; row < textHeight; row++ {
		line := st.ViewportTop + row
		diags, ok := byLine[line]
		if !ok || len(diags) == 0 {
			continue
		}
		text, exists := buf.Get(line)
		if !exists {
			continue
		}
		indicatorX := gut.Width() + len(text) + 5
		if indicatorX >= width {
			continue
		}

		indicator := strings.Repeat("■", len(diags))
		style := theme.DiagnosticText
		if hasSeverity(diags, 1) {
			style = theme.ErrorLine
		}
		grid.SetText(indicatorX, row, indicator, style)

		msgX := indicatorX + len(indicator) + 1
		avail := width - msgX
		if avail <= 0 {
			continue
		}
		msg := strings.ReplaceAll(diags[0].Message, "\n", " ")
		if len(msg) > avail {
			if avail > 1 {
				msg = msg[:avail-1] + "…"
			} else {
				msg = msg[:avail]
			}
		}
		grid.SetText(msgX, row, msg, style)
	}
}

func hasSeverity(diags []buffer.Diagnostic, sev int) bool {
	for _, d := range diags {
		if d.Severity == sev {
			return true
		}
	}
	return false
}

// drawStatusLine renders " MODE  filename[+]            row:col " matching
// draw_statusline's three-segment layout (outer mode badge, inner filename
// segment, outer position badge), both separators using the active
// transition color.
func drawStatusLine(grid *cellgrid.Grid, y, width int, st *state.EditorState, theme Theme) {
	if width <= 0 {
		return
	}

	modeStyle, ok := theme.ModeStyle[st.Mode]
	if !ok {
		modeStyle = theme.StatusOuter
	}

	modeLabel := " " + st.Mode.String() + " "
	posLabel := indexPos(st)

	col := 0
	grid.SetText(col, y, modeLabel, modeStyle)
	col += len(modeLabel)
	grid.SetChar(col, y, theme.Separator, modeStyle)
	col++

	innerWidth := width - len(modeLabel) - len(posLabel) - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	name := currentBufferLabel(st)
	inner := padRight(" "+name, innerWidth)
	grid.SetText(col, y, inner, theme.StatusInner)
	col += innerWidth

	grid.SetChar(col, y, theme.Separator, modeStyle)
	col++
	grid.SetText(col, y, posLabel, modeStyle)
}

func indexPos(st *state.EditorState) string {
	return " " + itoa(st.CursorY+1) + ":" + itoa(st.CursorX+1) + " "
}

func currentBufferLabel(st *state.EditorState) string {
	id, ok := st.CurrentBufferID()
	if !ok {
		return "[no name]"
	}
	name := st.Arena.Name(id)
	if buf, ok := st.Arena.Get(id); ok && buf.Dirty() {
		name += " [+]"
	}
	return name
}

// drawCommandLine renders the bottom row: in CommandMode/Search it shows
// the live `:`/`/` prompt; otherwise it shows the last error message (or
// blank) in the remaining width and the resolver's pending key-action label
// in the rightmost 10 columns, matching draw_commandline's fixed
// waiting-command column.
func drawCommandLine(grid *cellgrid.Grid, y, width int, st *state.EditorState, frame Frame, theme Theme) {
	if width <= 0 {
		return
	}

	if st.Mode == action.CommandMode || st.Mode == action.Search {
		prefix := ":"
		text := st.CommandLine
		if st.Mode == action.Search {
			prefix = "/"
			text = st.SearchTerm
		}
		line := prefix + text
		grid.SetText(0, y, padRight(line, width), theme.CommandLine)
		return
	}

	const waitingWidth = 10
	waiting := ""
	if frame.Pending.Active {
		waiting = frame.Pending.Label
		if frame.Pending.Repeater > 0 {
			waiting = itoa(frame.Pending.Repeater) + waiting
		}
	}
	rest := width - waitingWidth
	if rest < 0 {
		rest = 0
	}
	grid.SetText(rest, y, padRight(waiting, waitingWidth), theme.CommandLine)
	if rest == 0 {
		return
	}
	msg := frame.LastError
	style := theme.ErrorLine
	if msg == "" {
		msg = st.LastMessage
		style = theme.CommandLine
	}
	grid.SetText(0, y, padRight(msg, rest), style)
}

// computeCursor implements draw_cursor's priority (command/search prompt >
// buffer cursor) and set_cursor_style's mode/pending mapping. An open
// dialog does not move the cursor: Component reports no cursor position.
func computeCursor(st *state.EditorState, gut *gutter.Gutter, frame Frame, textHeight int) Cursor {
	style := backend.CursorBlock
	switch {
	case frame.Pending.Active:
		style = backend.CursorUnderline
	case st.Mode == action.Insert:
		style = backend.CursorBar
	}

	if st.Mode == action.CommandMode || st.Mode == action.Search {
		prefixLen := 1
		text := st.CommandLine
		if st.Mode == action.Search {
			text = st.SearchTerm
		}
		return Cursor{X: prefixLen + len(text), Y: st.Height - 1, Style: backend.CursorBar}
	}

	x := gut.Width() + (st.CursorX - st.ViewportLeft)
	y := st.CursorY - st.ViewportTop
	if y < 0 {
		y = 0
	}
	if y >= textHeight && textHeight > 0 {
		y = textHeight - 1
	}
	return Cursor{X: x, Y: y, Style: style}
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
