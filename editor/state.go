package editor

import (
	"fmt"
	"strings"

	"prompt-editor/library"
	"prompt-editor/selection"
)

// EntryState is a selected keyword as the page renders it.
type EntryState struct {
	selection.Entry
	Text        string `json:"text"`
	CanIncrease bool   `json:"canIncrease"`
	CanDecrease bool   `json:"canDecrease"`
}

// ListState is one selection list and its output string.
type ListState struct {
	Entries []EntryState `json:"entries"`
	Output  string       `json:"output"`
}

// State is a consistent snapshot of an editor.
type State struct {
	Library  *library.Library `json:"library"`
	ShowDesc bool             `json:"showDesc"`
	Prompt   ListState        `json:"prompt"`
	Negative ListState        `json:"negative"`
}

// Outputs holds the two rendered strings.
type Outputs struct {
	Prompt   string `json:"prompt"`
	Negative string `json:"negative"`
}

func listState(l *selection.List) ListState {
	entries := l.Entries()
	out := make([]EntryState, len(entries))
	for i, e := range entries {
		out[i] = EntryState{
			Entry:       e,
			Text:        e.Text(),
			CanIncrease: e.CanIncrease(),
			CanDecrease: e.CanDecrease(),
		}
	}
	return ListState{Entries: out, Output: l.Render()}
}

// UnresolvedError reports references that named keywords missing from the
// library and could not be created. The rest of the import still applied.
type UnresolvedError struct {
	Refs []library.Ref
}

func (e *UnresolvedError) Error() string {
	keys := make([]string, len(e.Refs))
	for i, r := range e.Refs {
		if r.Category == "" {
			keys[i] = r.Key
		} else {
			keys[i] = r.Category + "/" + r.Key
		}
	}
	return fmt.Sprintf("%d keyword(s) were not found and skipped: %s", len(e.Refs), strings.Join(keys, ", "))
}
