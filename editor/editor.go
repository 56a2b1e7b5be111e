// Package editor owns one keyword library and its two selection lists and
// applies every editing operation to them atomically.
package editor

import (
	"fmt"
	"strings"
	"sync"

	"prompt-editor/library"
	"prompt-editor/selection"
)

// Editor is the single owner of a library and its selections. All methods
// are safe for concurrent use; each runs to completion under one lock.
type Editor struct {
	mu       sync.Mutex
	lib      *library.Library
	prompt   *selection.List
	negative *selection.List
	showDesc bool
	onChange func(State)
}

// New returns an editor over lib, or over an empty library when lib is nil.
func New(lib *library.Library) *Editor {
	if lib == nil {
		lib = library.New()
	}
	return &Editor{
		lib:      lib,
		prompt:   selection.NewList(library.Positive),
		negative: selection.NewList(library.Negative),
	}
}

// OnChange registers fn to receive a snapshot after every mutation. fn runs
// under the editor lock, so snapshots arrive in mutation order; it must not
// block or call back into the editor.
func (e *Editor) OnChange(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

func (e *Editor) list(kind library.ListKind) *selection.List {
	if kind == library.Negative {
		return e.negative
	}
	return e.prompt
}

// mutate runs fn under the lock and notifies the change hook when fn
// reports a change.
func (e *Editor) mutate(fn func() (bool, error)) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	changed, err := fn()
	st := e.snapshot()
	if changed && e.onChange != nil {
		e.onChange(st)
	}
	return st, err
}

// sync removes selections whose keyword no longer exists and refreshes
// cached descriptions. Caller must hold e.mu.
func (e *Editor) sync() {
	e.prompt.Sync(e.lib)
	e.negative.Sync(e.lib)
}

func (e *Editor) snapshot() State {
	return State{
		Library:  e.lib.Clone(),
		ShowDesc: e.showDesc,
		Prompt:   listState(e.prompt),
		Negative: listState(e.negative),
	}
}

// State returns a snapshot of the editor.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Outputs returns the current prompt and negative strings.
func (e *Editor) Outputs() Outputs {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Outputs{Prompt: e.prompt.Render(), Negative: e.negative.Render()}
}

// Toggle checks or unchecks a keyword. Checking a keyword that is not in the
// library fails with library.ErrKeywordNotFound.
func (e *Editor) Toggle(kind library.ListKind, id selection.Identity, checked bool) (State, error) {
	return e.mutate(func() (bool, error) {
		if checked {
			if _, ok := e.lib.FindKeyword(kind, id.Category, id.Key); !ok {
				return false, fmt.Errorf("%w: %q in %q", library.ErrKeywordNotFound, id.Key, id.Category)
			}
		}
		return e.list(kind).Toggle(e.lib, id, checked), nil
	})
}

// Move reorders one selection list.
func (e *Editor) Move(kind library.ListKind, from, to int) (State, error) {
	return e.mutate(func() (bool, error) {
		if err := e.list(kind).Move(from, to); err != nil {
			return false, err
		}
		return from != to, nil
	})
}

// Remove drops one selected keyword.
func (e *Editor) Remove(kind library.ListKind, id selection.Identity) State {
	st, _ := e.mutate(func() (bool, error) {
		return e.list(kind).Remove(id), nil
	})
	return st
}

// Reset empties one selection list.
func (e *Editor) Reset(kind library.ListKind) State {
	st, _ := e.mutate(func() (bool, error) {
		l := e.list(kind)
		changed := l.Len() > 0
		l.Reset()
		return changed, nil
	})
	return st
}

// Increase strengthens a selected keyword. It reports false when the
// control is disabled or the keyword is not selected.
func (e *Editor) Increase(kind library.ListKind, id selection.Identity) (State, bool) {
	var changed bool
	st, _ := e.mutate(func() (bool, error) {
		changed = e.list(kind).Increase(id)
		return changed, nil
	})
	return st, changed
}

// Decrease weakens a selected keyword.
func (e *Editor) Decrease(kind library.ListKind, id selection.Identity) (State, bool) {
	var changed bool
	st, _ := e.mutate(func() (bool, error) {
		changed = e.list(kind).Decrease(id)
		return changed, nil
	})
	return st, changed
}

// SetShowDesc toggles keyword description visibility.
func (e *Editor) SetShowDesc(show bool) State {
	st, _ := e.mutate(func() (bool, error) {
		changed := e.showDesc != show
		e.showDesc = show
		return changed, nil
	})
	return st
}

// UpsertCategory creates a category or updates its description.
func (e *Editor) UpsertCategory(kind library.ListKind, name, description string) (State, bool, error) {
	var created bool
	name = strings.TrimSpace(name)
	st, err := e.mutate(func() (bool, error) {
		if name == "" {
			return false, library.ErrEmptyName
		}
		before := e.lib.CategoryDescription(kind, name)
		created = e.lib.UpsertCategory(kind, name, description)
		return created || before != e.lib.CategoryDescription(kind, name), nil
	})
	return st, created, err
}

// AddKeywords adds count keywords to a category; see library.AddKeywords.
func (e *Editor) AddKeywords(kind library.ListKind, category, description, key, desc string, count int) (State, []string, error) {
	var added []string
	st, err := e.mutate(func() (bool, error) {
		var err error
		added, err = e.lib.AddKeywords(kind, category, description, key, desc, count)
		return len(added) > 0 || err == nil, err
	})
	return st, added, err
}

// RenameKeyword renames a keyword and re-keys any selection of it, keeping
// its position and emphasis.
func (e *Editor) RenameKeyword(kind library.ListKind, category, oldKey, newKey string) (State, error) {
	return e.mutate(func() (bool, error) {
		changed, err := e.lib.RenameKeyword(kind, category, oldKey, newKey)
		if err != nil || !changed {
			return false, err
		}
		e.list(kind).Rekey(
			selection.Identity{Category: category, Key: oldKey},
			selection.Identity{Category: category, Key: strings.TrimSpace(newKey)},
		)
		e.sync()
		return true, nil
	})
}

// EditKeyword applies a rename and a description change as one edit. A nil
// newKey or desc leaves that field alone. When the rename is rejected the
// description is not written either.
func (e *Editor) EditKeyword(kind library.ListKind, category, key string, newKey, desc *string) (State, error) {
	return e.mutate(func() (bool, error) {
		if _, ok := e.lib.FindKeyword(kind, category, key); !ok {
			return false, fmt.Errorf("%w: %q in %q", library.ErrKeywordNotFound, key, category)
		}
		changed := false
		if newKey != nil {
			renamed, err := e.lib.RenameKeyword(kind, category, key, *newKey)
			if err != nil {
				return false, err
			}
			if renamed {
				next := strings.TrimSpace(*newKey)
				e.list(kind).Rekey(
					selection.Identity{Category: category, Key: key},
					selection.Identity{Category: category, Key: next},
				)
				key = next
				changed = true
			}
		}
		if desc != nil {
			if err := e.lib.EditDescription(kind, category, key, *desc); err != nil {
				return changed, err
			}
			changed = true
		}
		if changed {
			e.sync()
		}
		return changed, nil
	})
}

// EditDescription overwrites a keyword description and refreshes the cached
// copies held by selections.
func (e *Editor) EditDescription(kind library.ListKind, category, key, desc string) (State, error) {
	return e.mutate(func() (bool, error) {
		if err := e.lib.EditDescription(kind, category, key, desc); err != nil {
			return false, err
		}
		e.sync()
		return true, nil
	})
}

// DeleteKeywords removes keywords from the library and sweeps selections
// that referenced them.
func (e *Editor) DeleteKeywords(refs []library.Ref) (State, int, error) {
	var n int
	st, err := e.mutate(func() (bool, error) {
		var err error
		n, err = e.lib.DeleteKeywords(refs)
		if err != nil {
			return false, err
		}
		e.sync()
		return true, nil
	})
	return st, n, err
}

// ReorderCategories re-sequences a category list; see library.ReorderCategories.
func (e *Editor) ReorderCategories(kind library.ListKind, names []string) State {
	st, _ := e.mutate(func() (bool, error) {
		e.lib.ReorderCategories(kind, names)
		e.sync()
		return true, nil
	})
	return st
}
