package cellgrid

import (
	"testing"

	"github.com/vellum-editor/vellum/internal/renderer/core"
)

func TestNewFillsDefaultStyle(t *testing.T) {
	style := core.NewStyle(core.ColorRed)
	g := New(3, 2, style)

	w, h := g.Size()
	if w != 3 || h != 2 {
		t.Fatalf("Size() = %d,%d, want 3,2", w, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			if c.Glyph != ' ' || !c.Style.Equals(style) {
				t.Fatalf("At(%d,%d) = %+v, want blank cell in default style", x, y, c)
			}
		}
	}
}

func TestSetCharOutOfBoundsIgnored(t *testing.T) {
	g := New(2, 2, core.DefaultStyle())
	g.SetChar(-1, 0, 'x', core.DefaultStyle())
	g.SetChar(5, 5, 'x', core.DefaultStyle())
	for _, c := range g.cells {
		if c.Glyph != ' ' {
			t.Fatalf("out-of-bounds SetChar mutated the grid: %+v", c)
		}
	}
}

func TestSetTextClipsAtBoundary(t *testing.T) {
	g := New(3, 1, core.DefaultStyle())
	g.SetText(0, 0, "hello", core.DefaultStyle())
	if got := g.Dump(); got != "hel" {
		t.Fatalf("Dump() = %q, want %q", got, "hel")
	}
}

func TestDiffSameDimensions(t *testing.T) {
	a := New(2, 2, core.DefaultStyle())
	b := New(2, 2, core.DefaultStyle())
	a.SetChar(1, 0, 'x', core.DefaultStyle())

	changes := a.Diff(b)
	if len(changes) != 1 {
		t.Fatalf("Diff() = %d changes, want 1", len(changes))
	}
	if changes[0].X != 1 || changes[0].Y != 0 || changes[0].Cell.Glyph != 'x' {
		t.Fatalf("Diff()[0] = %+v, want {X:1 Y:0 Glyph:x}", changes[0])
	}
}

func TestDiffDifferentDimensionsReportsAll(t *testing.T) {
	a := New(2, 2, core.DefaultStyle())
	b := New(3, 3, core.DefaultStyle())

	changes := a.Diff(b)
	if len(changes) != 4 {
		t.Fatalf("Diff() across mismatched dims = %d changes, want 4 (all of a)", len(changes))
	}
}

func TestDumpMarksBlanks(t *testing.T) {
	g := New(3, 1, core.DefaultStyle())
	g.SetChar(1, 0, 'A', core.DefaultStyle())
	if got := g.Dump(); got != ".A." {
		t.Fatalf("Dump() = %q, want %q", got, ".A.")
	}
}
