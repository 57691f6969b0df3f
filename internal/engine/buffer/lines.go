package buffer

import (
	"errors"
	"os"
	"strings"

	"github.com/vellum-editor/vellum/internal/engine/rope"
)

// ErrNoFilename is returned by Save when the buffer has no backing file.
var ErrNoFilename = errors.New("buffer has no filename")

// Diagnostic mirrors an LSP diagnostic attached to a buffer. Range uses
// 0-based (line, character) positions, matching the wire protocol.
type Diagnostic struct {
	StartLine uint32
	StartChar uint32
	EndLine   uint32
	EndChar   uint32
	Severity  int
	Code      string
	Message   string
	Related   []string // related document URIs
	Tags      []int
}

// NewFromFile loads a buffer from disk. A missing file yields an empty
// buffer bound to that path (so a subsequent Save creates it).
func NewFromFile(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		b := NewBuffer(opts...)
		b.filePath = path
		return b, nil
	}
	if err != nil {
		return nil, err
	}

	s := string(data)
	trailing := strings.HasSuffix(s, "\n")
	b := NewBufferFromString(s, opts...)
	b.filePath = path
	b.trailingLine = trailing
	return b, nil
}

// FilePath returns the buffer's backing file path, or "" if unnamed.
func (b *Buffer) FilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filePath
}

// SetFilePath sets the buffer's backing file path (used by save-as).
func (b *Buffer) SetFilePath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filePath = path
}

// Dirty reports whether the buffer has unsaved mutations.
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// Version returns the monotonic edit counter used for LSP sync.
func (b *Buffer) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Diagnostics returns the buffer's current diagnostic set.
func (b *Buffer) Diagnostics() []Diagnostic {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.diagnostics
}

// SetDiagnostics replaces the buffer's diagnostic set wholesale, as
// publishDiagnostics does.
func (b *Buffer) SetDiagnostics(diags []Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = diags
}

// Cursor returns the buffer's persisted cursor position.
func (b *Buffer) Cursor() (x, y int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursorX, b.cursorY
}

// SetCursor persists the buffer's cursor position.
func (b *Buffer) SetCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY = x, y
}

// ViewportTop returns the buffer's persisted viewport top line.
func (b *Buffer) ViewportTop() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.viewportTop
}

// SetViewportTop persists the buffer's viewport top line.
func (b *Buffer) SetViewportTop(top int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewportTop = top
}

// Lines returns the buffer's content split into its line-array view.
// A buffer loaded from a file that ended with a trailing newline carries a
// sentinel trailing empty line, matching the on-disk content exactly.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.linesLocked()
}

func (b *Buffer) linesLocked() []string {
	n := int(b.rope.LineCount())
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, b.rope.LineText(uint32(i)))
	}
	return lines
}

// Get returns the content of line idx, or false if idx is out of range.
func (b *Buffer) Get(idx int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if idx < 0 || idx >= int(b.rope.LineCount()) {
		return "", false
	}
	return b.rope.LineText(uint32(idx)), true
}

// LineCount returns the number of lines in the line-array view.
func (b *Buffer) NumLines() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return int(b.rope.LineCount())
}

// Insert inserts a single codepoint at character position x on line y.
// A y out of range is a no-op. x is clamped to the line length (append at
// end) rather than rejected, matching the forgiving semantics of the
// distilled operations.
func (b *Buffer) Insert(x, y int, ch rune) {
	b.InsertStr(x, y, string(ch))
}

// InsertStr inserts s at character position x on line y.
func (b *Buffer) InsertStr(x, y int, s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= int(b.rope.LineCount()) {
		return
	}

	off := b.byteOffsetForChar(y, x)
	b.rope = b.rope.Insert(off, s)
	b.revisionID = NewRevisionID()
	b.markDirtyLocked()
}

// Remove removes one character at character position x on line y.
// Out-of-range positions are a no-op.
func (b *Buffer) Remove(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= int(b.rope.LineCount()) {
		return
	}

	line := b.rope.LineText(uint32(y))
	chars := []rune(line)
	if x < 0 || x >= len(chars) {
		return
	}

	start := b.byteOffsetForChar(y, x)
	end := b.byteOffsetForChar(y, x+1)
	b.rope = b.rope.Delete(start, end)
	b.revisionID = NewRevisionID()
	b.markDirtyLocked()
}

// InsertLine inserts a new line with the given content at index y; lines
// at index >= y shift down.
func (b *Buffer) InsertLine(y int, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := int(b.rope.LineCount())
	if y < 0 {
		y = 0
	}
	if y > n {
		y = n
	}

	if y >= n {
		// Append after the current last line. LineCount is never 0, so
		// there is always a preceding line to separate from.
		off := rope.ByteOffset(b.rope.Len())
		b.rope = b.rope.Insert(off, "\n"+content)
	} else {
		off := b.rope.LineStartOffset(uint32(y))
		b.rope = b.rope.Insert(off, content+"\n")
	}

	b.revisionID = NewRevisionID()
	b.markDirtyLocked()
}

// RemoveLine removes line y and returns its prior content so the caller
// can build an undo entry; false if y is out of range.
func (b *Buffer) RemoveLine(y int) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := int(b.rope.LineCount())
	if y < 0 || y >= n {
		return "", false
	}

	content := b.rope.LineText(uint32(y))

	if n == 1 {
		b.rope = rope.New()
		b.revisionID = NewRevisionID()
		b.markDirtyLocked()
		return content, true
	}

	start := b.rope.LineStartOffset(uint32(y))
	var end rope.ByteOffset
	if y == n-1 {
		// Last line: remove the preceding newline too.
		end = rope.ByteOffset(b.rope.Len())
		start = start - 1
		if start < 0 {
			start = 0
		}
	} else {
		end = b.rope.LineStartOffset(uint32(y + 1))
	}

	b.rope = b.rope.Delete(start, end)
	b.revisionID = NewRevisionID()
	b.markDirtyLocked()
	return content, true
}

// ReplaceLine replaces line y wholesale with content; no-op if out of range.
func (b *Buffer) ReplaceLine(y int, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= int(b.rope.LineCount()) {
		return
	}

	start := b.rope.LineStartOffset(uint32(y))
	end := b.rope.LineEndOffset(uint32(y))
	b.rope = b.rope.Replace(start, end, content)
	b.revisionID = NewRevisionID()
	b.markDirtyLocked()
}

// Contents returns the full buffer content with "\n" line separators.
func (b *Buffer) Contents() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.linesLocked(), "\n")
}

// Save writes the buffer's contents to its file path and clears dirty.
// Returns ErrNoFilename if the buffer has no associated path.
func (b *Buffer) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.filePath == "" {
		return ErrNoFilename
	}

	content := strings.Join(b.linesLocked(), "\n")
	if b.trailingLine {
		content += "\n"
	}

	if err := os.WriteFile(b.filePath, []byte(content), 0o644); err != nil {
		return err
	}

	b.dirty = false
	return nil
}

func (b *Buffer) markDirtyLocked() {
	b.dirty = true
	b.version++
}

// byteOffsetForChar returns the byte offset of character index x on line
// y, clamped to the line's length (so x == len(line) addresses the
// position just before the line's terminating newline).
func (b *Buffer) byteOffsetForChar(y, x int) rope.ByteOffset {
	lineStart := b.rope.LineStartOffset(uint32(y))
	line := b.rope.LineText(uint32(y))
	chars := []rune(line)
	if x < 0 {
		x = 0
	}
	if x > len(chars) {
		x = len(chars)
	}
	byteOff := 0
	for i := 0; i < x; i++ {
		byteOff += len(string(chars[i]))
	}
	return lineStart + rope.ByteOffset(byteOff)
}

// isWordChar reports whether r participates in a "word" for navigation
// purposes: alphanumeric or underscore.
func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// IsInWord reports whether the character at (x, y) is a word character.
func (b *Buffer) IsInWord(x, y int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if y < 0 || y >= int(b.rope.LineCount()) {
		return false
	}
	chars := []rune(b.rope.LineText(uint32(y)))
	if x < 0 || x >= len(chars) {
		return false
	}
	return isWordChar(chars[x])
}

// FindWordStart scans backward from (x, y) within the current line to the
// start of the word containing or following x.
func (b *Buffer) FindWordStart(x, y int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if y < 0 || y >= int(b.rope.LineCount()) {
		return x
	}
	chars := []rune(b.rope.LineText(uint32(y)))
	if x >= len(chars) {
		x = len(chars) - 1
	}
	for x > 0 && x < len(chars) && isWordChar(chars[x-1]) {
		x--
	}
	return x
}

// FindWordEnd scans forward from (x, y) within the current line to the
// end (one past the last word character) of the word containing x.
func (b *Buffer) FindWordEnd(x, y int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if y < 0 || y >= int(b.rope.LineCount()) {
		return x
	}
	chars := []rune(b.rope.LineText(uint32(y)))
	for x < len(chars) && isWordChar(chars[x]) {
		x++
	}
	return x
}

// FindNextWord advances past the current word (if any), skips
// non-word runs, and descends into subsequent lines until a word
// character is found. Returns (x, y, false) at end of buffer.
//
// This anchors on word-END before searching, not word-start: a
// deliberate deviation from the common "small w" convention (see
// the highlighter/viewport design notes in SPEC_FULL.md §9).
func (b *Buffer) FindNextWord(x, y int) (int, int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := int(b.rope.LineCount())
	if y < 0 || y >= n {
		return x, y, false
	}

	chars := []rune(b.rope.LineText(uint32(y)))

	// Advance past the word we're currently inside (if any).
	for x < len(chars) && isWordChar(chars[x]) {
		x++
	}

	for {
		// Skip non-word runs on the current line.
		for x < len(chars) && !isWordChar(chars[x]) {
			x++
		}
		if x < len(chars) {
			return x, y, true
		}

		y++
		if y >= n {
			return 0, 0, false
		}
		chars = []rune(b.rope.LineText(uint32(y)))
		x = 0
		if len(chars) > 0 && isWordChar(chars[0]) {
			return 0, y, true
		}
	}
}

// FindPrevWord is the symmetric counterpart of FindNextWord, moving left
// across lines.
func (b *Buffer) FindPrevWord(x, y int) (int, int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if y < 0 || y >= int(b.rope.LineCount()) {
		return x, y, false
	}

	chars := []rune(b.rope.LineText(uint32(y)))

	for {
		x--
		for x < 0 {
			y--
			if y < 0 {
				return 0, 0, false
			}
			chars = []rune(b.rope.LineText(uint32(y)))
			x = len(chars) - 1
		}
		if x >= 0 && x < len(chars) && isWordChar(chars[x]) {
			// Walk to the start of this word run.
			for x > 0 && isWordChar(chars[x-1]) {
				x--
			}
			return x, y, true
		}
	}
}

// FindNext performs a literal-substring forward search for query starting
// at (x, y), returning the first match position.
func (b *Buffer) FindNext(query string, x, y int) (int, int, bool) {
	if query == "" {
		return 0, 0, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := int(b.rope.LineCount())
	for i := 0; i < n; i++ {
		ly := (y + i) % n
		line := b.rope.LineText(uint32(ly))
		chars := []rune(line)
		from := 0
		if ly == y {
			from = x
		}
		if from > len(chars) {
			continue
		}
		sub := string(chars[from:])
		if idx := strings.Index(sub, query); idx >= 0 {
			// idx is a byte offset into sub; since query and sub share
			// the same rune alphabet here we recompute in runes.
			col := from + len([]rune(sub[:idx]))
			return col, ly, true
		}
	}
	return 0, 0, false
}

// FindPrev performs a literal-substring backward search for query
// starting at (x, y).
func (b *Buffer) FindPrev(query string, x, y int) (int, int, bool) {
	if query == "" {
		return 0, 0, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := int(b.rope.LineCount())
	for i := 0; i < n; i++ {
		ly := ((y-i)%n + n) % n
		line := b.rope.LineText(uint32(ly))
		chars := []rune(line)
		to := len(chars)
		if ly == y {
			to = x
		}
		if to < 0 || to > len(chars) {
			to = len(chars)
		}
		sub := string(chars[:to])
		if idx := strings.LastIndex(sub, query); idx >= 0 {
			col := len([]rune(sub[:idx]))
			return col, ly, true
		}
	}
	return 0, 0, false
}
