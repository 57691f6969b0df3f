// Package highlight computes byte-indexed syntax highlight spans for a
// buffer's source text using tree-sitter grammars.
//
// The parser-lifecycle shape (NewParser/SetLanguage/ParseCtx/Close, and the
// extension-to-grammar lookup table) is grounded on
// sacenox-symb/internal/treesitter/parser.go. The highlighting semantics
// themselves — compiling a query against the grammar, running it over the
// parsed tree, and mapping each capture's scope name through the theme to a
// style — are grounded on original_source/src/highlighter.rs's
// Highlighter::highlight.
package highlight

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/vellum-editor/vellum/internal/renderer/core"
)

// StyleInfo is one byte-indexed highlight span. The caller resolves a
// character's rendered style by finding the first span containing its byte
// offset; positions covered by no span keep the default text style.
type StyleInfo struct {
	StartByte uint32
	EndByte   uint32
	Style     core.Style
}

// Theme maps a generic scope name (post-translation) to the style it
// renders with. A scope absent from the theme is simply not highlighted,
// matching Theme::get_style's Option return in the original.
type Theme map[string]core.Style

// scopeTranslation maps a tree-sitter/vscode capture name to the generic
// scope name theme entries are keyed by. The table is closed: a capture
// name absent from it passes through to the theme lookup verbatim, so a
// theme may still target a raw capture name directly.
var scopeTranslation = map[string]string{
	"keyword.control":           "keyword",
	"keyword.function":          "keyword",
	"keyword.operator":          "keyword",
	"keyword.import":            "keyword",
	"keyword.return":            "keyword",
	"entity.name.function.macro": "function.macro",
	"entity.name.function":      "function",
	"entity.name.type":          "type",
	"entity.name.tag":           "tag",
	"variable.parameter":        "variable",
	"variable.builtin":          "variable",
	"string.quoted":             "string",
	"string.special":            "string",
	"comment.line":              "comment",
	"comment.block":             "comment",
	"constant.numeric":          "number",
	"constant.builtin":          "constant",
	"constant.character.escape": "escape",
	"punctuation.bracket":       "punctuation",
	"punctuation.delimiter":     "punctuation",
}

func translateScope(name string) string {
	if g, ok := scopeTranslation[name]; ok {
		return g
	}
	return name
}

// langEntry bundles a compiled grammar with its highlight query, shared
// across every buffer written in that language.
type langEntry struct {
	lang  *sitter.Language
	query *sitter.Query
}

// grammars is the static extension → (grammar, highlight query) table. A
// file extension absent from it has no entry and renders unhighlighted,
// not an error, per the Language registration note.
var grammars = map[string]func() (*sitter.Language, string){
	".go": func() (*sitter.Language, string) { return golang.GetLanguage(), goHighlightQuery },
	".rs": func() (*sitter.Language, string) { return rust.GetLanguage(), rustHighlightQuery },
	".py": func() (*sitter.Language, string) { return python.GetLanguage(), pythonHighlightQuery },
	".js": func() (*sitter.Language, string) { return javascript.GetLanguage(), jsHighlightQuery },
	".jsx": func() (*sitter.Language, string) { return javascript.GetLanguage(), jsHighlightQuery },
}

// Registry lazily builds and caches one langEntry per language, so the
// (comparatively expensive) query compilation happens once per language no
// matter how many buffers of that language are opened.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*langEntry
}

// NewRegistry returns an empty Registry ready for use.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*langEntry)}
}

// Supported reports whether path's extension has a registered grammar.
func (r *Registry) Supported(path string) bool {
	_, ok := grammars[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (r *Registry) entry(ext string) (*langEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[ext]; ok {
		return e, true
	}
	build, ok := grammars[ext]
	if !ok {
		return nil, false
	}
	lang, queryText := build()
	query, err := sitter.NewQuery([]byte(queryText), lang)
	if err != nil {
		// A malformed built-in query is a programming error, not a runtime
		// condition callers should have to handle; fail this language open
		// (no highlighting) rather than panic the editor.
		return nil, false
	}
	e := &langEntry{lang: lang, query: query}
	r.entries[ext] = e
	return e, true
}

// Open returns a Session that highlights buffers named with path's
// extension, or false if no grammar is registered for it.
func (r *Registry) Open(path string) (*Session, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := r.entry(ext); !ok {
		return nil, false
	}
	return &Session{reg: r, ext: ext}, true
}

// Session tracks one buffer's parse tree across edits so Highlight can
// reparse incrementally instead of from scratch on every call.
type Session struct {
	reg  *Registry
	ext  string
	tree *sitter.Tree
}

// Highlight reparses src (incrementally, against the tree from the
// previous call on this Session, if any) and returns the style spans the
// query's captures resolve to through theme. Spans are returned sorted by
// start byte; a capture whose translated scope has no theme entry is
// omitted rather than rendered with a zero-value style.
func (s *Session) Highlight(ctx context.Context, src []byte, theme Theme) ([]StyleInfo, error) {
	entry, ok := s.reg.entry(s.ext)
	if !ok {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(entry.lang)

	newTree, err := parser.ParseCtx(ctx, s.tree, src)
	if err != nil {
		return nil, err
	}
	if s.tree != nil {
		s.tree.Close()
	}
	s.tree = newTree

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(entry.query, newTree.RootNode())

	var spans []StyleInfo
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, cap := range match.Captures {
			name := entry.query.CaptureNameForId(cap.Index)
			style, ok := theme[translateScope(name)]
			if !ok {
				continue
			}
			spans = append(spans, StyleInfo{
				StartByte: cap.Node.StartByte(),
				EndByte:   cap.Node.EndByte(),
				Style:     style,
			})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].StartByte < spans[j].StartByte })
	return spans, nil
}

// Close releases the Session's retained parse tree. Call it when the
// buffer it was opened for is closed.
func (s *Session) Close() {
	if s.tree != nil {
		s.tree.Close()
		s.tree = nil
	}
}

// StyleAt returns the style of the first span in spans (sorted by
// StartByte, as Highlight returns them) that contains byteOffset, and
// whether any span did. Where spans nest (e.g. a string containing an
// escape), the earlier-starting, enclosing span wins.
func StyleAt(spans []StyleInfo, byteOffset uint32) (core.Style, bool) {
	for _, sp := range spans {
		if byteOffset >= sp.StartByte && byteOffset < sp.EndByte {
			return sp.Style, true
		}
	}
	return core.Style{}, false
}
