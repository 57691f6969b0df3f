package dialog

import (
	"strings"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/lsp"
	"github.com/vellum-editor/vellum/internal/renderer/core"
)

// HoverPopup renders the MarkupContent an LSP server returned from
// textDocument/hover as a read-only, scrollable panel. It never produces an
// action other than closing itself: hover is a transient, informational
// overlay, not an input surface.
type HoverPopup struct {
	lines []string
	top   int
}

// NewHoverPopup splits h's markdown/plaintext contents into display lines.
// A nil h (server has no hover information for this position) renders as a
// single "no information" line rather than an empty popup.
func NewHoverPopup(h *lsp.Hover) *HoverPopup {
	if h == nil || strings.TrimSpace(h.Contents.Value) == "" {
		return &HoverPopup{lines: []string{"(no hover information)"}}
	}
	return &HoverPopup{lines: strings.Split(h.Contents.Value, "\n")}
}

// Render draws up to height lines of content starting from the current
// scroll offset, clipped to width.
func (p *HoverPopup) Render(grid *cellgrid.Grid, x, y, width, height int) {
	style := core.Style{Foreground: core.ColorWhite, Background: core.ColorBlue}
	for row := 0; row < height; row++ {
		line := ""
		idx := p.top + row
		if idx < len(p.lines) {
			line = p.lines[idx]
		}
		grid.SetText(x, y+row, padTo(line, width), style)
	}
}

// HandleKey scrolls on Up/Down and closes on any other key (Escape, Enter,
// PageUp/PageDown, or otherwise) — a hover popup is dismissed by the next
// keystroke the user intends for the editor, not just Escape.
func (p *HoverPopup) HandleKey(keyString string) (action.Action, bool) {
	switch keyString {
	case "Up":
		if p.top > 0 {
			p.top--
		}
		return action.Action{}, true
	case "Down":
		if p.top < len(p.lines)-1 {
			p.top++
		}
		return action.Action{}, true
	default:
		return action.NewCloseDialog(), false
	}
}
