package gutter

import "testing"

type fakeSigns map[uint32]Severity

func (f fakeSigns) SeverityForLine(line uint32) Severity { return f[line] }

func TestWidthGrowsWithLineCountDigits(t *testing.T) {
	g := New(DefaultConfig())
	g.SetLineCount(9)
	small := g.Width()

	g.SetLineCount(100000)
	big := g.Width()

	if big <= small {
		t.Fatalf("width did not grow: small=%d big=%d", small, big)
	}
}

func TestRenderLineShowsTildeForNonexistentLine(t *testing.T) {
	g := New(DefaultConfig())
	g.SetLineCount(3)

	cells := g.RenderLine(5, false)
	found := false
	for _, c := range cells {
		if c.Rune == '~' {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a '~' filler cell, got %+v", cells)
	}
}

func TestRenderLineShowsLineNumberRightAligned(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowSigns = false
	cfg.MinLineNumberWidth = 3
	g := New(cfg)
	g.SetLineCount(5)

	cells := g.RenderLine(0, true)
	// width-1 is the separator; width-2 is the last digit of "1".
	if len(cells) < 2 || cells[len(cells)-2].Rune != '1' {
		t.Fatalf("expected line number '1' before separator, got %+v", cells)
	}
}

func TestRenderLineCurrentLineStyle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowSigns = false
	g := New(cfg)
	g.SetLineCount(5)
	g.SetCurrentLine(2)

	cells := g.RenderLine(2, true)
	sawCurrent := false
	for _, c := range cells {
		if c.Style == StyleCurrentLine {
			sawCurrent = true
		}
	}
	if !sawCurrent {
		t.Fatalf("expected StyleCurrentLine on the cursor's line, got %+v", cells)
	}
}

func TestSignGlyphShowsWarningSign(t *testing.T) {
	g := New(DefaultConfig())
	g.SetLineCount(5)
	g.SetSignProvider(fakeSigns{2: SeverityWarning})

	cells := g.RenderLine(2, true)
	if cells[0].Rune != 'W' || cells[0].Style != StyleWarning {
		t.Fatalf("expected 'W' warning sign in column 0, got %+v", cells[0])
	}
}

func TestRenderLineNilSignProviderIsBlank(t *testing.T) {
	g := New(DefaultConfig())
	g.SetLineCount(5)

	cells := g.RenderLine(0, true)
	if cells[0].Rune != ' ' {
		t.Fatalf("expected blank sign column with no provider, got %q", cells[0].Rune)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[uint32]string{0: "0", 7: "7", 42: "42", 1000: "1000"}
	for n, want := range cases {
		if got := FormatNumber(n); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}
