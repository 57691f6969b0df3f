// Package state holds the editor's mutable core: the open buffer set,
// modal state, cursor/viewport position, and undo history.
//
// Grounded on internal/app.Application's struct shape (mutex-guarded
// aggregate of sub-components) but narrowed to the single EditorState value
// the spec's Action Executor operates on; the wider application wiring
// (event bus, project indexing, integration manager) is out of scope here.
package state

import (
	"github.com/vellum-editor/vellum/internal/action"
	"github.com/vellum-editor/vellum/internal/cellgrid"
	"github.com/vellum-editor/vellum/internal/engine/buffer"
)

// BufferID is a stable handle to a buffer held by a BufferArena. Windows
// and dialogs reference buffers by BufferID, never by an aliased
// *buffer.Buffer pointer (see SPEC_FULL.md §9 on BufferArena ownership).
type BufferID int

// BufferArena owns every open buffer, keyed by a BufferID that remains
// stable across the buffer's lifetime even as other buffers are opened or
// closed.
type BufferArena struct {
	buffers map[BufferID]*buffer.Buffer
	names   map[BufferID]string
	next    BufferID
}

// NewBufferArena creates an empty arena.
func NewBufferArena() *BufferArena {
	return &BufferArena{
		buffers: make(map[BufferID]*buffer.Buffer),
		names:   make(map[BufferID]string),
	}
}

// Add registers b under a freshly allocated BufferID.
func (a *BufferArena) Add(b *buffer.Buffer, name string) BufferID {
	id := a.next
	a.next++
	a.buffers[id] = b
	a.names[id] = name
	return id
}

// Get returns the buffer for id, or false if it has been closed.
func (a *BufferArena) Get(id BufferID) (*buffer.Buffer, bool) {
	b, ok := a.buffers[id]
	return b, ok
}

// Name returns the display name (usually the file path, or a synthetic
// name for an unsaved buffer) associated with id.
func (a *BufferArena) Name(id BufferID) string {
	return a.names[id]
}

// Remove drops id from the arena. The buffer is no longer reachable.
func (a *BufferArena) Remove(id BufferID) {
	delete(a.buffers, id)
	delete(a.names, id)
}

// Component is the contract a dialog (file picker, hover popup, generic
// item picker) implements to render into the CellGrid and intercept key
// events until it closes. The core depends only on this interface, never
// on a concrete dialog type (SPEC_FULL.md §4.15).
type Component interface {
	// Render draws the component into the sub-rectangle of grid starting
	// at (x, y) with the given width and height.
	Render(grid *cellgrid.Grid, x, y, width, height int)
	// HandleKey processes a key event (identified by the KeyMap Resolver's
	// key-string grammar) and returns the action it produces, if any, plus
	// whether the dialog remains open.
	HandleKey(keyString string) (act action.Action, open bool)
}

// EditorState is the mutable core the Action Executor applies atomic
// Actions to. It owns every buffer exclusively via the BufferArena; the
// Render Pipeline holds only a short-lived read borrow of the current
// buffer per frame (SPEC_FULL.md §3 Ownership).
//
// The KeyMap Resolver's own pending-sequence state (waiting_key_action,
// waiting_command, repeater accumulation) is deliberately NOT duplicated
// here: it lives on internal/keymap.Resolver, which already owns that
// state machine end to end. EditorState carries only what the executor and
// render pipeline need once a key has resolved to an Action.
type EditorState struct {
	Arena   *BufferArena
	Order   []BufferID
	Current int

	Mode action.Mode

	CursorX, CursorY          int
	ViewportTop, ViewportLeft int
	Width, Height             int
	Wrap                      bool

	CommandLine string
	SearchTerm  string
	LastMessage string

	UndoStack       []action.Action
	InsertUndoGroup []action.Action

	CurrentDialog Component
}

// New creates an EditorState with an empty arena and no open buffers.
func New(width, height int) *EditorState {
	return &EditorState{
		Arena:  NewBufferArena(),
		Width:  width,
		Height: height,
		Mode:   action.Normal,
	}
}

// CurrentBufferID returns the BufferID of the active buffer, or false if
// no buffer is open.
func (s *EditorState) CurrentBufferID() (BufferID, bool) {
	if s.Current < 0 || s.Current >= len(s.Order) {
		return 0, false
	}
	return s.Order[s.Current], true
}

// CurrentBuffer returns the active buffer, or false if no buffer is open.
func (s *EditorState) CurrentBuffer() (*buffer.Buffer, bool) {
	id, ok := s.CurrentBufferID()
	if !ok {
		return nil, false
	}
	return s.Arena.Get(id)
}

// OpenBuffer adds b to the arena, appends it to the open-buffer order, and
// makes it current.
func (s *EditorState) OpenBuffer(b *buffer.Buffer, name string) BufferID {
	id := s.Arena.Add(b, name)
	s.Order = append(s.Order, id)
	s.Current = len(s.Order) - 1
	return id
}

// DirtyBufferNames returns the display names of every open buffer with
// unsaved changes, used to compose the force-quit error message.
func (s *EditorState) DirtyBufferNames() []string {
	var names []string
	for _, id := range s.Order {
		if b, ok := s.Arena.Get(id); ok && b.Dirty() {
			names = append(names, s.Arena.Name(id))
		}
	}
	return names
}
