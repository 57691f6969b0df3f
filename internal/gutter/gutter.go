// Package gutter renders the line-number and diagnostic-sign column drawn
// to the left of a buffer's text in the Viewport.
package gutter

// Config holds gutter configuration, sourced from the Config/Theme
// Adapter's show_diagnostics and gutter-related settings.
type Config struct {
	ShowLineNumbers bool

	// LineNumberWidth is the fixed width for line numbers (0 = auto).
	LineNumberWidth int

	// MinLineNumberWidth is the minimum width for auto-calculated widths.
	MinLineNumberWidth int

	// ShowSigns enables the diagnostic sign column.
	ShowSigns bool

	// RelativeLineNumbers shows line numbers relative to the cursor.
	RelativeLineNumbers bool
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		LineNumberWidth:    0,
		MinLineNumberWidth: 3,
		ShowSigns:          true,
	}
}

// Severity is a diagnostic severity, ordered low to high so the highest
// present on a line wins when more than one diagnostic shares it.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityHint
	SeverityInfo
	SeverityWarning
	SeverityError
)

// CellStyle names the visual treatment of a gutter cell; the render
// pipeline maps these onto the active theme's palette.
type CellStyle int

const (
	StyleNormal CellStyle = iota
	StyleCurrentLine
	StyleDim
	StyleError
	StyleWarning
	StyleInfo
	StyleHint
)

// Cell is a single gutter character and the style it renders with.
type Cell struct {
	Rune  rune
	Style CellStyle
}

// SignProvider reports the highest diagnostic severity on a buffer line,
// normally backed by a buffer's Diagnostics().
type SignProvider interface {
	SeverityForLine(line uint32) Severity
}

// Gutter renders the gutter area for one buffer. It holds no buffer
// reference itself; SetLineCount/SetCurrentLine/SetSignProvider are pushed
// in by the caller on each frame, matching the render pipeline's
// single-threaded draw loop (§4.11 — there is no concurrent writer, so
// unlike the wider renderer package this needs no internal locking).
type Gutter struct {
	config Config

	width       int
	lineCount   uint32
	currentLine uint32

	signs SignProvider
}

// New creates a Gutter with the given configuration.
func New(config Config) *Gutter {
	return &Gutter{config: config, width: calculateWidth(config, 1)}
}

// Width returns the current total gutter width in columns.
func (g *Gutter) Width() int {
	return g.width
}

// Config returns the active configuration.
func (g *Gutter) Config() Config {
	return g.config
}

// SetConfig replaces the configuration and recalculates width.
func (g *Gutter) SetConfig(config Config) {
	g.config = config
	g.width = calculateWidth(config, g.lineCount)
}

// SetLineCount updates the buffer's total line count, which affects
// auto-calculated line number width.
func (g *Gutter) SetLineCount(count uint32) {
	g.lineCount = count
	g.width = calculateWidth(g.config, count)
}

// SetCurrentLine updates the cursor's current line, used for
// current-line styling and relative line numbers.
func (g *Gutter) SetCurrentLine(line uint32) {
	g.currentLine = line
}

// SetSignProvider sets (or clears, with nil) the diagnostic sign source.
func (g *Gutter) SetSignProvider(sp SignProvider) {
	g.signs = sp
}

// LineNumberWidth returns just the line-number column width, excluding the
// sign column and trailing separator.
func (g *Gutter) LineNumberWidth() int {
	return g.lineNumberWidth()
}

// RenderLine renders the gutter for one buffer line. exists indicates
// whether the line is within the buffer (false draws the `~` filler for
// rows past end-of-file, vim-style).
func (g *Gutter) RenderLine(line uint32, exists bool) []Cell {
	if g.width == 0 {
		return nil
	}

	cells := make([]Cell, g.width)
	for i := range cells {
		cells[i] = Cell{Rune: ' ', Style: StyleNormal}
	}

	col := 0

	if g.config.ShowSigns {
		r, style := g.signGlyph(line)
		if col < g.width-1 {
			cells[col] = Cell{Rune: r, Style: style}
			col++
		}
	}

	switch {
	case g.config.ShowLineNumbers && exists:
		numCells := g.renderLineNumber(line)
		numWidth := g.lineNumberWidth()
		padding := numWidth - len(numCells)
		for i := 0; i < padding && col < g.width-1; i++ {
			cells[col] = Cell{Rune: ' ', Style: g.styleForLine(line)}
			col++
		}
		for i := 0; i < len(numCells) && col < g.width-1; i++ {
			cells[col] = numCells[i]
			col++
		}
	case g.config.ShowLineNumbers && !exists:
		numWidth := g.lineNumberWidth()
		for i := 0; i < numWidth-1 && col < g.width-1; i++ {
			cells[col] = Cell{Rune: ' ', Style: StyleDim}
			col++
		}
		if col < g.width-1 {
			cells[col] = Cell{Rune: '~', Style: StyleDim}
			col++
		}
	}

	if g.width > 0 {
		cells[g.width-1] = Cell{Rune: ' ', Style: StyleNormal}
	}

	return cells
}

func (g *Gutter) styleForLine(line uint32) CellStyle {
	if line == g.currentLine {
		return StyleCurrentLine
	}
	return StyleDim
}

func (g *Gutter) renderLineNumber(line uint32) []Cell {
	style := g.styleForLine(line)

	var num uint32
	if g.config.RelativeLineNumbers && line != g.currentLine {
		if line > g.currentLine {
			num = line - g.currentLine
		} else {
			num = g.currentLine - line
		}
	} else {
		num = line + 1
	}

	numStr := FormatNumber(num)
	cells := make([]Cell, len(numStr))
	for i, r := range numStr {
		cells[i] = Cell{Rune: r, Style: style}
	}
	return cells
}

func (g *Gutter) signGlyph(line uint32) (rune, CellStyle) {
	if g.signs == nil {
		return ' ', StyleNormal
	}
	switch g.signs.SeverityForLine(line) {
	case SeverityError:
		return 'E', StyleError
	case SeverityWarning:
		return 'W', StyleWarning
	case SeverityInfo:
		return 'I', StyleInfo
	case SeverityHint:
		return 'H', StyleHint
	default:
		return ' ', StyleNormal
	}
}

func (g *Gutter) lineNumberWidth() int {
	if g.config.LineNumberWidth > 0 {
		return g.config.LineNumberWidth
	}
	digits := countDigits(g.lineCount)
	if digits < g.config.MinLineNumberWidth {
		digits = g.config.MinLineNumberWidth
	}
	return digits
}

func calculateWidth(config Config, lineCount uint32) int {
	width := 0

	if config.ShowSigns {
		width++
	}

	if config.ShowLineNumbers {
		if config.LineNumberWidth > 0 {
			width += config.LineNumberWidth
		} else {
			digits := countDigits(lineCount)
			if digits < config.MinLineNumberWidth {
				digits = config.MinLineNumberWidth
			}
			width += digits
		}
	}

	if width > 0 {
		width++ // separator column
	}

	return width
}

func countDigits(n uint32) int {
	if n == 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}

// FormatNumber renders n as a decimal string without allocating through
// strconv, matching the teacher's hand-rolled digit loop.
func FormatNumber(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
