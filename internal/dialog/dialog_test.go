package dialog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/lsp"
	"github.com/vellum-editor/vellum/internal/renderer/core"
)

func TestItemPickerFiltersAndReportsPicked(t *testing.T) {
	p := NewItemPicker("Buffers", []string{"main.go", "go.mod", "main_test.go"}, "buf-picker")

	for _, r := range []rune("main") {
		if _, open := p.HandleKey(string(r)); !open {
			t.Fatalf("typing a query character should keep the picker open")
		}
	}
	if len(p.results) == 0 {
		t.Fatalf("expected at least one match for query %q", p.query)
	}

	act, open := p.HandleKey("Enter")
	if open {
		t.Fatalf("Enter should close the picker")
	}
	if act.Kind != action.Picked || act.ID != "buf-picker" {
		t.Fatalf("expected a Picked action tagged buf-picker, got %+v", act)
	}
}

func TestItemPickerEscapeCloses(t *testing.T) {
	p := NewItemPicker("Buffers", []string{"a"}, "id")
	act, open := p.HandleKey("Escape")
	if open {
		t.Fatalf("Escape should close the picker")
	}
	if act.Kind != action.CloseDialog {
		t.Fatalf("expected CloseDialog, got %+v", act)
	}
}

func TestItemPickerBackspaceTrimsQuery(t *testing.T) {
	p := NewItemPicker("Buffers", []string{"abc"}, "id")
	p.HandleKey("a")
	p.HandleKey("b")
	if p.query != "ab" {
		t.Fatalf("expected query %q, got %q", "ab", p.query)
	}
	p.HandleKey("Backspace")
	if p.query != "a" {
		t.Fatalf("expected query %q after backspace, got %q", "a", p.query)
	}
}

func TestItemPickerRenderPadsRows(t *testing.T) {
	p := NewItemPicker("Buffers", []string{"one", "two"}, "id")
	grid := cellgrid.New(20, 5, core.DefaultStyle())
	p.Render(grid, 0, 0, 20, 5)
	if grid.At(19, 0).Glyph != ' ' {
		t.Fatalf("expected the title row to be padded to the grid width")
	}
}

func TestNewFilePickerListsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p := NewFilePicker(dir)
	found := false
	for _, item := range p.items {
		if item.Text == "main.go" {
			found = true
		}
		if item.Text == filepath.Join(".git", "HEAD") {
			t.Fatalf(".git contents should be skipped, found %q", item.Text)
		}
	}
	if !found {
		t.Fatalf("expected main.go among the picker's items")
	}
}

func TestHoverPopupNilShowsPlaceholder(t *testing.T) {
	p := NewHoverPopup(nil)
	if len(p.lines) != 1 {
		t.Fatalf("expected a single placeholder line, got %v", p.lines)
	}
}

func TestHoverPopupRendersContent(t *testing.T) {
	h := &lsp.Hover{Contents: lsp.MarkupContent{Kind: lsp.MarkupKindMarkdown, Value: "func Foo()\n\nDoes a thing."}}
	p := NewHoverPopup(h)
	if len(p.lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(p.lines), p.lines)
	}
}

func TestHoverPopupScrollsThenCloses(t *testing.T) {
	h := &lsp.Hover{Contents: lsp.MarkupContent{Value: "a\nb\nc"}}
	p := NewHoverPopup(h)
	if _, open := p.HandleKey("Down"); !open {
		t.Fatalf("Down should scroll, not close")
	}
	if p.top != 1 {
		t.Fatalf("expected scroll offset 1, got %d", p.top)
	}
	act, open := p.HandleKey("x")
	if open {
		t.Fatalf("a non-scroll key should close the popup")
	}
	if act.Kind != action.CloseDialog {
		t.Fatalf("expected CloseDialog, got %+v", act)
	}
}
