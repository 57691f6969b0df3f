package lspsync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vellum-editor/vellum/internal/engine/buffer"
	"github.com/vellum-editor/vellum/internal/lsp"
	"github.com/vellum-editor/vellum/internal/state"
)

// DocSync implements executor.ChangeNotifier: it keeps the last-known
// content of every open buffer and, on each notified change, computes the
// incremental edit with Changes and forwards it to the LSP client as a
// textDocument/didChange (opening the document first if this is its first
// edit since being opened).
type DocSync struct {
	client *lsp.Client
	log    *slog.Logger

	mu   sync.Mutex
	seen map[state.BufferID]string
}

// NewDocSync creates a DocSync forwarding changes to client. A nil client
// makes NotifyChange a no-op, so callers can wire a DocSync unconditionally
// even when no LSP server is configured.
func NewDocSync(client *lsp.Client, log *slog.Logger) *DocSync {
	if log == nil {
		log = slog.Default()
	}
	return &DocSync{client: client, log: log, seen: make(map[state.BufferID]string)}
}

// NotifyChange is called by the executor after every buffer mutation.
func (d *DocSync) NotifyChange(id state.BufferID, buf *buffer.Buffer) {
	if d.client == nil {
		return
	}
	path := buf.FilePath()
	if path == "" {
		return
	}
	content := buf.Contents()

	d.mu.Lock()
	old, opened := d.seen[id]
	d.seen[id] = content
	d.mu.Unlock()

	ctx := context.Background()
	if !opened {
		if err := d.client.OpenDocument(ctx, path, content); err != nil {
			d.log.Warn("lspsync: open document failed", "path", path, "error", err)
		}
		return
	}

	changes := Changes(old, content)
	if len(changes) == 0 {
		return
	}
	if err := d.client.ChangeDocument(ctx, path, changes); err != nil {
		d.log.Warn("lspsync: change document failed", "path", path, "error", err)
	}
}

// Forget drops id's tracked content, so the next NotifyChange for id opens
// the document afresh instead of diffing against stale content. The
// executor does not call it when a buffer closes.
func (d *DocSync) Forget(id state.BufferID) {
	d.mu.Lock()
	delete(d.seen, id)
	d.mu.Unlock()
}
