// Package workspace keeps the live editors served over HTTP and expires
// the ones nobody has touched for a while.
package workspace

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"prompt-editor/editor"
	"prompt-editor/library"
)

var ErrNameTaken = errors.New("workspace name already in use")
var ErrNotFound = errors.New("workspace not found")

// Manager owns every workspace. Idle workspaces expire after the configured
// TTL; expiry and deletion both close the workspace.
type Manager struct {
	mu    sync.Mutex
	items *cache.Cache
}

// NewManager returns a manager whose workspaces expire after ttl without
// use. A ttl of zero disables expiry.
func NewManager(ttl, cleanupInterval time.Duration) *Manager {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	c := cache.New(ttl, cleanupInterval)
	c.OnEvicted(func(id string, v interface{}) {
		w := v.(*Workspace)
		slog.Info("workspace closed", "id", id, "name", w.Name)
		w.close()
	})
	return &Manager{items: c}
}

// Create starts a workspace named name over lib, or over an empty library
// when lib is nil.
func (m *Manager) Create(name string, lib *library.Library) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items.Items() {
		if item.Object.(*Workspace).Name == name {
			return nil, ErrNameTaken
		}
	}

	w := newWorkspace(uuid.New().String(), name, editor.New(lib))
	m.items.SetDefault(w.ID, w)
	slog.Info("workspace created", "id", w.ID, "name", name)
	return w, nil
}

// List returns every live workspace, oldest first.
func (m *Manager) List() []Info {
	items := m.items.Items()
	list := make([]Info, 0, len(items))
	for _, item := range items {
		list = append(list, item.Object.(*Workspace).Info())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Get returns the workspace with id and restarts its expiry timer.
func (m *Manager) Get(id string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items.Get(id)
	if !ok {
		return nil, false
	}
	m.items.SetDefault(id, v)
	return v.(*Workspace), true
}

// Delete closes and removes a workspace.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items.Get(id); !ok {
		return ErrNotFound
	}
	m.items.Delete(id)
	return nil
}

// Close removes every workspace, closing each.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.items.Items() {
		m.items.Delete(id)
	}
}
