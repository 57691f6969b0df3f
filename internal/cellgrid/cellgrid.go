// Package cellgrid implements the fixed-size terminal cell matrix the
// render pipeline draws into and diffs against the previously emitted
// frame.
//
// Grounded on internal/renderer/backend.ScreenBuffer's front/back
// double-buffer and internal/renderer/core's Cell/Style types, trimmed to
// the narrower Grid contract: a standalone value type a caller can build
// two of and diff directly, rather than a stateful backend wrapper.
package cellgrid

import (
	"fmt"
	"strings"

	"github.com/vellum-editor/vellum/internal/renderer/core"
)

// Cell is a single grid position: a glyph and its visual style.
type Cell struct {
	Glyph rune
	Style core.Style
}

// Grid is a width*height array of Cells. Its dimensions are immutable for
// its lifetime; resizing produces a new Grid (see New).
type Grid struct {
	width, height int
	cells         []Cell
}

// New creates a width x height grid with every cell set to a space in the
// given default style.
func New(width, height int, defaultStyle core.Style) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{width: width, height: height, cells: make([]Cell, width*height)}
	blank := Cell{Glyph: ' ', Style: defaultStyle}
	for i := range g.cells {
		g.cells[i] = blank
	}
	return g
}

// Size returns the grid's fixed dimensions.
func (g *Grid) Size() (width, height int) { return g.width, g.height }

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, false
	}
	return y*g.width + x, true
}

// At returns the cell at (x, y), or the zero Cell if out of bounds.
func (g *Grid) At(x, y int) Cell {
	i, ok := g.index(x, y)
	if !ok {
		return Cell{}
	}
	return g.cells[i]
}

// SetChar writes a single glyph at (x, y). Out-of-bounds positions are
// silently ignored.
func (g *Grid) SetChar(x, y int, glyph rune, style core.Style) {
	i, ok := g.index(x, y)
	if !ok {
		return
	}
	g.cells[i] = Cell{Glyph: glyph, Style: style}
}

// SetText writes text starting at (x, y), one rune per column, clipping at
// the line-width boundary rather than wrapping to the next row.
func (g *Grid) SetText(x, y int, text string, style core.Style) {
	if y < 0 || y >= g.height {
		return
	}
	col := x
	for _, r := range text {
		if col >= g.width {
			break
		}
		if col >= 0 {
			g.cells[y*g.width+col] = Cell{Glyph: r, Style: style}
		}
		col++
	}
}

// Change is one cell that differs between two grids.
type Change struct {
	X, Y int
	Cell Cell
}

// Diff returns the cells that differ between g and other, in row-major
// order (grouped by line, ascending column within a line) to favor
// cursor-seek economy in whatever emits the resulting terminal sequences.
// When dimensions differ every cell of g is reported as changed.
func (g *Grid) Diff(other *Grid) []Change {
	if other == nil || g.width != other.width || g.height != other.height {
		changes := make([]Change, 0, len(g.cells))
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				changes = append(changes, Change{X: x, Y: y, Cell: g.At(x, y)})
			}
		}
		return changes
	}

	var changes []Change
	for y := 0; y < g.height; y++ {
		base := y * g.width
		for x := 0; x < g.width; x++ {
			a := g.cells[base+x]
			b := other.cells[base+x]
			if a != b {
				changes = append(changes, Change{X: x, Y: y, Cell: a})
			}
		}
	}
	return changes
}

// Dump renders the grid as a human-readable snapshot for test assertions,
// replacing blank cells with a visible marker so trailing whitespace
// differences are obvious in a diff.
func (g *Grid) Dump() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.At(x, y)
			if c.Glyph == ' ' || c.Glyph == 0 {
				b.WriteByte('.')
				continue
			}
			fmt.Fprintf(&b, "%c", c.Glyph)
		}
		if y < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
