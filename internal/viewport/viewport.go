// Package viewport draws a slice of a buffer, with its line-number gutter
// and syntax highlighting, onto a rectangular region of a CellGrid.
//
// The geometry this package computes (wrap/clip behavior, gutter-adjacent
// text origin) is grounded on internal/renderer/viewport.Viewport's
// BufferToScreen/ScreenRowToLine family, trimmed from that type's stateful,
// mutex-guarded, animated-scroll design to a stateless Draw function: the
// event loop is single-threaded (§4.11) and scroll position already lives
// on internal/state.EditorState (ViewportTop/ViewportLeft), so there is no
// second copy of that state to own here, and smooth-scroll animation has
// no home in a terminal UI with no frame clock between key events.
package viewport

import (
	"github.com/rivo/uniseg"

	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/gutter"
	"github.com/vellum-editor/vellum/internal/highlight"
	"github.com/vellum-editor/vellum/internal/renderer/core"
)

// LineSource is the minimal buffer contract Draw needs: total line count
// and read access to one line's text.
type LineSource interface {
	NumLines() int
	Get(i int) (string, bool)
}

// Config is the draw geometry for one frame.
type Config struct {
	Width, Height int // text area size, in columns/rows, excluding the gutter
	Top, Left     int // first visible buffer line / column
	Wrap          bool
}

// LineStatus reports how a source line was laid out on screen.
type LineStatus int

const (
	LineNone LineStatus = iota
	LineWrapped
	LineClipped
)

// Result carries per-source-line layout outcomes, one entry per buffer
// line consumed (not per screen row), in top-to-bottom order.
type Result struct {
	Status []LineStatus
	// RowsUsed parallels Status: how many screen rows that source line
	// occupied (always 1 outside wrap mode).
	RowsUsed []int
}

// SpanLookup returns a line's highlight spans, or nil if none apply
// (unhighlighted file type, or beyond the highlighter's known languages).
type SpanLookup func(line int) []highlight.StyleInfo

// GutterPalette resolves a gutter cell's style, letting the render
// pipeline's active theme Palette govern gutter colors. A nil GutterPalette
// passed to Draw falls back to defaultGutterStyle.
type GutterPalette func(gutter.CellStyle) core.Style

// defaultGutterStyle is used when Draw is called without a resolved
// theme Palette (e.g. from a test or an unthemed dialog preview).
func defaultGutterStyle(cs gutter.CellStyle) core.Style {
	switch cs {
	case gutter.StyleCurrentLine:
		return core.DefaultStyle()
	case gutter.StyleError:
		return core.NewStyle(core.ColorRed)
	case gutter.StyleWarning:
		return core.NewStyle(core.Color{R: 230, G: 180, B: 0})
	case gutter.StyleInfo, gutter.StyleHint:
		return core.NewStyle(core.ColorBlue)
	default:
		s := core.DefaultStyle()
		s.Attributes |= core.AttrDim
		return s
	}
}

// Draw renders cfg's buffer slice into grid starting at (originX, originY),
// with src's gutter occupying the leftmost gut.Width() columns (gut may be
// nil to omit the gutter entirely, e.g. for a dialog's embedded preview).
// palette may be nil to use defaultGutterStyle.
func Draw(grid *cellgrid.Grid, originX, originY int, cfg Config, src LineSource, gut *gutter.Gutter, spans SpanLookup, palette GutterPalette, defaultStyle core.Style) Result {
	if palette == nil {
		palette = defaultGutterStyle
	}

	gutWidth := 0
	if gut != nil {
		gut.SetLineCount(uint32(src.NumLines()))
		gutWidth = gut.Width()
	}
	textX := originX + gutWidth

	var result Result
	row := 0
	line := cfg.Top
	for row < cfg.Height {
		text, exists := src.Get(line)

		if gut != nil {
			drawGutterCells(grid, originX, originY+row, gut.RenderLine(uint32(line), exists), palette)
		}

		if !exists {
			fillBlank(grid, textX, originY+row, cfg.Width, defaultStyle)
			row++
			line++
			continue
		}

		var lineSpans []highlight.StyleInfo
		if spans != nil {
			lineSpans = spans(line)
		}

		if cfg.Wrap {
			used := drawWrapped(grid, textX, originY+row, cfg.Width, cfg.Height-row, text, lineSpans, defaultStyle)
			status := LineNone
			if used > 1 {
				status = LineWrapped
			}
			result.Status = append(result.Status, status)
			result.RowsUsed = append(result.RowsUsed, used)
			row += used
		} else {
			clipped := drawClipped(grid, textX, originY+row, cfg.Width, cfg.Left, text, lineSpans, defaultStyle)
			status := LineNone
			if clipped {
				status = LineClipped
			}
			result.Status = append(result.Status, status)
			result.RowsUsed = append(result.RowsUsed, 1)
			row++
		}
		line++
	}

	return result
}

func drawGutterCells(grid *cellgrid.Grid, x, y int, cells []gutter.Cell, palette GutterPalette) {
	for i, c := range cells {
		grid.SetChar(x+i, y, c.Rune, palette(c.Style))
	}
}

func fillBlank(grid *cellgrid.Grid, x, y, width int, style core.Style) {
	for i := 0; i < width; i++ {
		grid.SetChar(x+i, y, ' ', style)
	}
}

// styleAtByte resolves the style for a byte offset within a line, falling
// back to defaultStyle when no span covers it.
func styleAtByte(spans []highlight.StyleInfo, byteOff uint32, defaultStyle core.Style) core.Style {
	if style, ok := highlight.StyleAt(spans, byteOff); ok {
		return style
	}
	return defaultStyle
}

// drawClipped draws text left-clipped at left columns and right-clipped at
// width, returning whether any visible content was actually cut off.
func drawClipped(grid *cellgrid.Grid, x, y, width, left int, text string, spans []highlight.StyleInfo, defaultStyle core.Style) bool {
	col := 0
	skipped := 0
	clipped := false
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		from, _ := g.Positions()
		w := uniseg.StringWidth(string(runes))
		if w < 1 {
			w = 1
		}

		if skipped < left {
			skipped += w
			if skipped > left {
				// The grapheme straddled the left clip boundary; treat it
				// as fully clipped rather than drawing a partial glyph.
				clipped = true
			}
			continue
		}

		if col >= width {
			clipped = true
			break
		}

		style := styleAtByte(spans, uint32(from), defaultStyle)
		grid.SetChar(x+col, y, runes[0], style)
		col++
		if w == 2 && col < width {
			grid.SetChar(x+col, y, 0, style)
			col++
		} else if w == 2 {
			clipped = true
		}
	}

	for ; col < width; col++ {
		grid.SetChar(x+col, y, ' ', defaultStyle)
	}

	return clipped
}

// drawWrapped draws text across as many rows (up to maxRows) as needed to
// show all of it at width columns per row, returning rows actually used
// (at least 1, even for an empty line).
func drawWrapped(grid *cellgrid.Grid, x, y, width, maxRows int, text string, spans []highlight.StyleInfo, defaultStyle core.Style) int {
	if maxRows < 1 {
		maxRows = 1
	}

	row := 0
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if row >= maxRows {
			break
		}
		runes := g.Runes()
		from, _ := g.Positions()
		w := uniseg.StringWidth(string(runes))
		if w < 1 {
			w = 1
		}

		if col+w > width {
			for ; col < width; col++ {
				grid.SetChar(x+col, y+row, ' ', defaultStyle)
			}
			row++
			col = 0
			if row >= maxRows {
				break
			}
		}

		style := styleAtByte(spans, uint32(from), defaultStyle)
		grid.SetChar(x+col, y+row, runes[0], style)
		col++
		if w == 2 {
			grid.SetChar(x+col, y+row, 0, style)
			col++
		}
	}

	for ; col < width && row < maxRows; col++ {
		grid.SetChar(x+col, y+row, ' ', defaultStyle)
	}
	if row < maxRows {
		row++
	}
	return row
}
