// Package dialog implements the standard state.Component dialogs SPEC_FULL.md
// §4.15 names: a fuzzy-filtering file picker, a generic item picker, and an
// LSP hover popup. Each is a self-contained modal overlay: it owns its own
// query/selection state, renders into the sub-rectangle the render
// pipeline hands it, and translates key events into the single Action it
// contributes back to the core (action.Picked or action.CloseDialog).
//
// Filtering and scoring use internal/input/fuzzy; the list-filter-render
// loop (query string, filtered result list, selected cursor) implements the
// state.Component contract.
package dialog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/input/fuzzy"
	"github.com/vellum-editor/vellum/internal/renderer/core"
)

// maxListFiles caps how many filesystem entries a FilePicker walks before
// giving up, so opening a picker at the root of a large tree stays
// responsive.
const maxListFiles = 20000

// ItemPicker is a generic fuzzy-filterable list: the title and candidate
// items are supplied by the caller (action.NewOpenPicker), and a selection
// is reported back as action.Picked carrying picker's id so the caller can
// tell which picker produced it.
type ItemPicker struct {
	title   string
	id      string
	items   []fuzzy.Item
	matcher *fuzzy.Matcher

	query    string
	results  []fuzzy.Result
	selected int
}

// NewItemPicker creates a picker titled title over items, tagged with id.
func NewItemPicker(title string, items []string, id string) *ItemPicker {
	fItems := make([]fuzzy.Item, len(items))
	for i, it := range items {
		fItems[i] = fuzzy.Item{Text: it}
	}
	p := &ItemPicker{
		title:   title,
		id:      id,
		items:   fItems,
		matcher: fuzzy.NewMatcher(fuzzy.DefaultOptions()),
	}
	p.refilter()
	return p
}

// NewFilePicker walks root (depth-first in lexical order, via filepath.WalkDir) and
// returns an ItemPicker over every regular file found, relative to root.
// Directories named .git are skipped; the walk stops early past
// maxListFiles so a picker over a huge tree still opens promptly.
func NewFilePicker(root string) *ItemPicker {
	var paths []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if len(paths) >= maxListFiles {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		paths = append(paths, rel)
		return nil
	})
	sort.Strings(paths)
	return NewItemPicker("Open File", paths, "file-picker")
}

func (p *ItemPicker) refilter() {
	p.results = p.matcher.Match(p.query, p.items, 200)
	if p.selected >= len(p.results) {
		p.selected = len(p.results) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// Render draws the query line followed by the filtered result list from its
// first entry, clipped to height-1 rows, highlighting the selected row. The
// list does not scroll: a selection below the last visible row is not shown.
func (p *ItemPicker) Render(grid *cellgrid.Grid, x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	border := core.NewStyle(core.ColorYellow)
	normal := core.DefaultStyle()
	selected := core.Style{Foreground: core.ColorBlack, Background: core.ColorYellow}

	title := p.title + ": " + p.query
	grid.SetText(x, y, padTo(title, width), border)

	listHeight := height - 1
	for row := 0; row < listHeight; row++ {
		line := ""
		style := normal
		if row < len(p.results) {
			line = p.results[row].Item.Text
			if row == p.selected {
				style = selected
			}
		}
		grid.SetText(x, y+1+row, padTo(line, width), style)
	}
}

// HandleKey consumes one key-string from the KeyMap Resolver's grammar.
// Escape closes with no action; Enter reports the selected item as
// action.Picked; Up/Down move the selection; Backspace trims the query;
// any other single printable rune is appended to the query. The picker
// never produces a navigation action itself — selection is entirely the
// caller's responsibility once it receives Picked.
func (p *ItemPicker) HandleKey(keyString string) (action.Action, bool) {
	switch keyString {
	case "Escape":
		return action.NewCloseDialog(), false
	case "Enter":
		if p.selected >= 0 && p.selected < len(p.results) {
			return action.NewPicked(p.results[p.selected].Item.Text, p.id), false
		}
		return action.NewCloseDialog(), false
	case "Up":
		if p.selected > 0 {
			p.selected--
		}
		return action.Action{}, true
	case "Down":
		if p.selected < len(p.results)-1 {
			p.selected++
		}
		return action.Action{}, true
	case "Backspace":
		if n := len(p.query); n > 0 {
			p.query = string([]rune(p.query)[:len([]rune(p.query))-1])
			p.refilter()
		}
		return action.Action{}, true
	}

	if r := []rune(keyString); len(r) == 1 {
		p.query += string(r[0])
		p.refilter()
	}
	return action.Action{}, true
}

func padTo(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
