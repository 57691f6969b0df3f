// Package lspsync converts a buffer's old/new content into the minimal set
// of incremental TextDocumentContentChangeEvent edits an LSP server needs
// for textDocument/didChange, instead of resending the whole document on
// every keystroke.
//
// The diff engine itself is internal/engine/tracking's Myers-diff
// implementation (ComputeLineDiffStrings); this package only adapts its
// line-hunk output into LSP's line/character Range addressing.
// internal/lsp/document.go's DocumentManager takes Changes through its
// WithIncrementalDiff option.
package lspsync

import (
	"strings"

	"github.com/vellum-editor/vellum/internal/engine/tracking"
	"github.com/vellum-editor/vellum/internal/lsp"
)

// Changes returns the incremental content-change events that turn oldText
// into newText. Consecutive delete+insert hunks touching the same region
// are merged into a single replace edit so a one-line edit produces one
// change event instead of two, matching how real LSP clients coalesce
// adjacent hunks.
func Changes(oldText, newText string) []lsp.TextDocumentContentChangeEvent {
	if oldText == newText {
		return nil
	}

	opts := tracking.DefaultDiffOptions()
	result := tracking.ComputeLineDiffStrings(oldText, newText, opts)
	if !result.HasChanges() {
		return nil
	}

	var events []lsp.TextDocumentContentChangeEvent
	i := 0
	for i < len(result.Hunks) {
		hunk := result.Hunks[i]
		if hunk.Type == tracking.DiffEqual {
			i++
			continue
		}

		// A delete immediately followed by an insert at the same old-text
		// position is a replace: one range covering the deleted lines,
		// one new text built from the inserted lines.
		if hunk.Type == tracking.DiffDelete && i+1 < len(result.Hunks) &&
			result.Hunks[i+1].Type == tracking.DiffInsert &&
			result.Hunks[i+1].OldStart == hunk.OldStart+hunk.OldCount {
			insert := result.Hunks[i+1]
			events = append(events, replaceEvent(hunk, insert))
			i += 2
			continue
		}

		switch hunk.Type {
		case tracking.DiffDelete:
			events = append(events, deleteEvent(hunk))
		case tracking.DiffInsert:
			events = append(events, insertEvent(hunk))
		}
		i++
	}

	if len(events) == 0 {
		// Hunks existed but didn't resolve to an addressable edit (can
		// happen with a pathological heuristic-diff fallback) — fall back
		// to a full-document replacement rather than silently dropping
		// the change.
		return []lsp.TextDocumentContentChangeEvent{{Text: newText}}
	}
	return events
}

func deleteEvent(hunk tracking.LineDiff) lsp.TextDocumentContentChangeEvent {
	rng := lsp.Range{
		Start: lsp.Position{Line: hunk.OldStart, Character: 0},
		End:   lsp.Position{Line: hunk.OldStart + hunk.OldCount, Character: 0},
	}
	return lsp.TextDocumentContentChangeEvent{Range: &rng, Text: ""}
}

func insertEvent(hunk tracking.LineDiff) lsp.TextDocumentContentChangeEvent {
	at := lsp.Position{Line: hunk.OldStart, Character: 0}
	rng := lsp.Range{Start: at, End: at}
	return lsp.TextDocumentContentChangeEvent{Range: &rng, Text: joinWithTrailingNewline(hunk.Lines)}
}

func replaceEvent(del, ins tracking.LineDiff) lsp.TextDocumentContentChangeEvent {
	rng := lsp.Range{
		Start: lsp.Position{Line: del.OldStart, Character: 0},
		End:   lsp.Position{Line: del.OldStart + del.OldCount, Character: 0},
	}
	return lsp.TextDocumentContentChangeEvent{Range: &rng, Text: joinWithTrailingNewline(ins.Lines)}
}

func joinWithTrailingNewline(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
