package library

import (
	"errors"
	"fmt"
)

// ListKind selects one of the two keyword lists.
type ListKind string

const (
	Positive ListKind = "prompt"
	Negative ListKind = "negative"
)

// ParseListKind accepts the names used by the UI and by legacy files.
func ParseListKind(s string) (ListKind, error) {
	switch s {
	case "prompt", "positive", "promptCategories":
		return Positive, nil
	case "negative", "negative_prompt", "negativeCategories":
		return Negative, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, s)
}

// KeywordEntry is a single selectable keyword.
type KeywordEntry struct {
	Key  string `json:"key"`
	Desc string `json:"desc"`
}

// Category groups keywords under a shared description.
type Category struct {
	Name        string         `json:"category"`
	Description string         `json:"description"`
	Keywords    []KeywordEntry `json:"keywords"`
}

// Ref names a keyword by list, category and key.
type Ref struct {
	Kind     ListKind `json:"list"`
	Category string   `json:"category"`
	Key      string   `json:"key"`
}

var (
	ErrParse            = errors.New("invalid keyword document")
	ErrDuplicateKeyword = errors.New("keyword already exists in category")
	ErrKeywordNotFound  = errors.New("keyword not found")
	ErrNothingDeleted   = errors.New("no keywords were found to delete")
	ErrUnknownList      = errors.New("unknown keyword list")
	ErrEmptyName        = errors.New("category and key are required")
)
