package workspace

import (
	"sync"
	"time"

	"prompt-editor/editor"
)

// Workspace is one live editor held by the server.
type Workspace struct {
	ID        string
	Name      string
	CreatedAt time.Time

	editor     *editor.Editor
	outChan    chan editor.State
	kickChan   chan struct{}
	outMu      sync.Mutex
	lastActive time.Time
	connected  bool
	done       chan struct{}
	closeOnce  sync.Once
}

// Info is the listing view of a workspace.
type Info struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
}

func newWorkspace(id, name string, ed *editor.Editor) *Workspace {
	now := time.Now()
	w := &Workspace{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		editor:     ed,
		lastActive: now,
		done:       make(chan struct{}),
	}
	ed.OnChange(w.publish)
	return w
}

// Editor returns the workspace's editor.
func (w *Workspace) Editor() *editor.Editor {
	return w.editor
}

// Info returns a snapshot of the workspace metadata.
func (w *Workspace) Info() Info {
	w.outMu.Lock()
	defer w.outMu.Unlock()
	return Info{
		ID:         w.ID,
		Name:       w.Name,
		CreatedAt:  w.CreatedAt,
		LastActive: w.lastActive,
		Connected:  w.connected,
	}
}

// SetClient registers a channel to receive state after every change. A
// previously connected client is kicked: its kick channel is closed so the
// websocket handler can close that connection. The returned channel is
// closed if this client is itself displaced later.
func (w *Workspace) SetClient(ch chan editor.State) <-chan struct{} {
	w.outMu.Lock()
	defer w.outMu.Unlock()
	if w.kickChan != nil {
		close(w.kickChan)
	}
	kick := make(chan struct{})
	w.kickChan = kick
	w.outChan = ch
	w.connected = true
	w.lastActive = time.Now()
	return kick
}

// ClearClient is called when a connection ends. It only updates the
// workspace if ch is still the current client, and always closes ch so the
// writer goroutine exits.
func (w *Workspace) ClearClient(ch chan editor.State) {
	w.outMu.Lock()
	if w.outChan == ch {
		w.outChan = nil
		w.connected = false
		w.kickChan = nil
	}
	w.outMu.Unlock()
	close(ch)
}

// publish forwards st to the connected client without blocking. A slow
// client misses intermediate states; the next one supersedes them.
func (w *Workspace) publish(st editor.State) {
	w.outMu.Lock()
	defer w.outMu.Unlock()
	w.lastActive = time.Now()
	if w.outChan == nil {
		return
	}
	select {
	case w.outChan <- st:
	default:
		// Full: drop the oldest queued state so the newest always lands.
		select {
		case <-w.outChan:
		default:
		}
		select {
		case w.outChan <- st:
		default:
		}
	}
}

// Done returns a channel that is closed when the workspace is deleted or
// expires.
func (w *Workspace) Done() <-chan struct{} {
	return w.done
}

func (w *Workspace) close() {
	w.closeOnce.Do(func() {
		w.editor.OnChange(nil)
		close(w.done)
	})
}
