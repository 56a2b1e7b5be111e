// Package selection tracks the ordered keyword selections that make up the
// prompt and negative prompt strings.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"prompt-editor/library"
)

var ErrIndexOutOfRange = errors.New("selection index out of range")

// Identity names a selected keyword. It is unique within one list.
type Identity struct {
	Category string `json:"category"`
	Key      string `json:"key"`
}

// Entry is one selected keyword.
type Entry struct {
	Identity
	Kind library.ListKind `json:"list"`
	Emphasis
	// Desc is a copy of the library description, refreshed by Sync.
	Desc string `json:"desc"`
}

// Text returns the entry as it appears in the output string.
func (e Entry) Text() string {
	return Format(e.Key, e.Emphasis)
}

// Lookup resolves a keyword in the library. *library.Library implements it.
type Lookup interface {
	FindKeyword(kind library.ListKind, category, key string) (library.KeywordEntry, bool)
}

// List is the ordered selection for one output string.
type List struct {
	kind    library.ListKind
	entries []Entry
}

// NewList returns an empty list for kind.
func NewList(kind library.ListKind) *List {
	return &List{kind: kind}
}

// Kind returns the list kind.
func (l *List) Kind() library.ListKind { return l.kind }

// Len returns the number of selected entries.
func (l *List) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in output order.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Identities returns the selected identities in output order.
func (l *List) Identities() []Identity {
	out := make([]Identity, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Identity
	}
	return out
}

// Index returns the position of id, or -1.
func (l *List) Index(id Identity) int {
	for i, e := range l.entries {
		if e.Identity == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is selected.
func (l *List) Contains(id Identity) bool {
	return l.Index(id) >= 0
}

// Toggle selects or deselects id. A newly selected entry is appended with
// Normal emphasis and the current library description. It reports whether
// the list changed.
func (l *List) Toggle(lookup Lookup, id Identity, checked bool) bool {
	if !checked {
		return l.Remove(id)
	}
	if l.Contains(id) {
		return false
	}
	desc := ""
	if kw, ok := lookup.FindKeyword(l.kind, id.Category, id.Key); ok {
		desc = kw.Desc
	}
	l.entries = append(l.entries, Entry{Identity: id, Kind: l.kind, Emphasis: Plain(), Desc: desc})
	return true
}

// Add appends an entry built from stored state. Identities already present
// are left untouched and reported as false.
func (l *List) Add(id Identity, e Emphasis, desc string) bool {
	if l.Contains(id) {
		return false
	}
	l.entries = append(l.entries, Entry{Identity: id, Kind: l.kind, Emphasis: NewEmphasis(e.Mode, e.Value), Desc: desc})
	return true
}

// Move moves the entry at from to position to, shifting the entries between.
func (l *List) Move(from, to int) error {
	n := len(l.entries)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d with %d entries", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	moved := l.entries[from]
	l.entries = append(l.entries[:from], l.entries[from+1:]...)
	l.entries = append(l.entries[:to], append([]Entry{moved}, l.entries[to:]...)...)
	return nil
}

// Remove deletes id from the list.
func (l *List) Remove(id Identity) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// Reset empties the list.
func (l *List) Reset() {
	l.entries = nil
}

// Increase strengthens the emphasis of id.
func (l *List) Increase(id Identity) bool {
	return l.apply(id, Emphasis.Increase)
}

// Decrease weakens the emphasis of id.
func (l *List) Decrease(id Identity) bool {
	return l.apply(id, Emphasis.Decrease)
}

func (l *List) apply(id Identity, step func(Emphasis) (Emphasis, bool)) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	next, ok := step(l.entries[i].Emphasis)
	l.entries[i].Emphasis = next
	return ok
}

// Rekey renames a selected identity in place, keeping position and emphasis.
// If the new identity is already selected the old entry is dropped instead.
func (l *List) Rekey(from, to Identity) bool {
	i := l.Index(from)
	if i < 0 {
		return false
	}
	if l.Contains(to) {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		return true
	}
	l.entries[i].Identity = to
	return true
}

// Sync drops entries whose keyword no longer exists and refreshes the cached
// description of the rest. It returns the identities removed.
func (l *List) Sync(lookup Lookup) []Identity {
	var removed []Identity
	kept := l.entries[:0]
	for _, e := range l.entries {
		kw, ok := lookup.FindKeyword(l.kind, e.Category, e.Key)
		if !ok {
			removed = append(removed, e.Identity)
			continue
		}
		e.Desc = kw.Desc
		kept = append(kept, e)
	}
	l.entries = kept
	return removed
}

// Render joins the formatted entries with ", ".
func (l *List) Render() string {
	parts := make([]string, len(l.entries))
	for i, e := range l.entries {
		parts[i] = e.Text()
	}
	return strings.Join(parts, ", ")
}
