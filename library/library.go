// Package library holds the categorized keyword document the editor selects from.
package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MaxBatch is the largest number of keywords AddKeywords creates in one call.
const MaxBatch = 20

// Library is the keyword document: two ordered category lists.
type Library struct {
	Prompt   []Category
	Negative []Category
}

// New returns an empty library.
func New() *Library {
	return &Library{Prompt: []Category{}, Negative: []Category{}}
}

type wireLibrary struct {
	PromptCategories   []Category `json:"promptCategories"`
	NegativeCategories []Category `json:"negativeCategories"`
	LegacyPrompt       []Category `json:"prompt"`
	LegacyNegative     []Category `json:"negative_prompt"`
}

// Parse decodes a keyword document. The legacy field names prompt and
// negative_prompt are accepted when the current names are absent.
func Parse(data []byte) (*Library, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrParse)
	}
	var w wireLibrary
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return FromLists(pick(w.PromptCategories, w.LegacyPrompt), pick(w.NegativeCategories, w.LegacyNegative)), nil
}

func pick(current, legacy []Category) []Category {
	if current != nil {
		return current
	}
	return legacy
}

// FromLists builds a library from decoded category lists. Categories that
// share a name are merged and repeated keys keep their first occurrence.
func FromLists(prompt, negative []Category) *Library {
	return &Library{Prompt: normalize(prompt), Negative: normalize(negative)}
}

func normalize(cats []Category) []Category {
	out := make([]Category, 0, len(cats))
	index := make(map[string]int, len(cats))
	for _, c := range cats {
		i, ok := index[c.Name]
		if !ok {
			i = len(out)
			index[c.Name] = i
			out = append(out, Category{Name: c.Name, Description: c.Description, Keywords: []KeywordEntry{}})
		}
		for _, kw := range c.Keywords {
			if indexOfKey(out[i].Keywords, kw.Key) < 0 {
				out[i].Keywords = append(out[i].Keywords, kw)
			}
		}
	}
	return out
}

// MarshalJSON emits the current field names only.
func (l *Library) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PromptCategories   []Category `json:"promptCategories"`
		NegativeCategories []Category `json:"negativeCategories"`
	}{l.Categories(Positive), l.Categories(Negative)})
}

// UnmarshalJSON decodes the same document Parse accepts.
func (l *Library) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}

func (l *Library) list(kind ListKind) *[]Category {
	if kind == Negative {
		return &l.Negative
	}
	return &l.Prompt
}

// Categories returns a deep copy of one list.
func (l *Library) Categories(kind ListKind) []Category {
	src := *l.list(kind)
	out := make([]Category, len(src))
	for i, c := range src {
		out[i] = Category{Name: c.Name, Description: c.Description, Keywords: append([]KeywordEntry{}, c.Keywords...)}
	}
	return out
}

// Clone returns a deep copy of the library.
func (l *Library) Clone() *Library {
	return &Library{Prompt: l.Categories(Positive), Negative: l.Categories(Negative)}
}

// FindCategory returns the named category of a list.
func (l *Library) FindCategory(kind ListKind, name string) (*Category, bool) {
	cats := *l.list(kind)
	for i := range cats {
		if cats[i].Name == name {
			return &cats[i], true
		}
	}
	return nil, false
}

// FindKeyword looks a keyword up by exact category and key.
func (l *Library) FindKeyword(kind ListKind, category, key string) (KeywordEntry, bool) {
	c, ok := l.FindCategory(kind, category)
	if !ok {
		return KeywordEntry{}, false
	}
	if i := indexOfKey(c.Keywords, key); i >= 0 {
		return c.Keywords[i], true
	}
	return KeywordEntry{}, false
}

// FindKeywordByKey returns the category of the first keyword named key, in
// list order.
func (l *Library) FindKeywordByKey(kind ListKind, key string) (string, bool) {
	for _, c := range *l.list(kind) {
		if indexOfKey(c.Keywords, key) >= 0 {
			return c.Name, true
		}
	}
	return "", false
}

// CategoryDescription returns the description of a category, or "".
func (l *Library) CategoryDescription(kind ListKind, name string) string {
	if c, ok := l.FindCategory(kind, name); ok {
		return c.Description
	}
	return ""
}

// UpsertCategory creates the category if it is missing. An existing category
// takes a non-empty description that differs from the stored one.
func (l *Library) UpsertCategory(kind ListKind, name, description string) bool {
	if c, ok := l.FindCategory(kind, name); ok {
		if description != "" && c.Description != description {
			c.Description = description
		}
		return false
	}
	cats := l.list(kind)
	*cats = append(*cats, Category{Name: name, Description: description, Keywords: []KeywordEntry{}})
	return true
}

// AddKeyword appends a keyword to a category, creating the category if needed.
func (l *Library) AddKeyword(kind ListKind, category, key, desc string) error {
	if c, ok := l.FindCategory(kind, category); ok && indexOfKey(c.Keywords, key) >= 0 {
		return fmt.Errorf("%w: %q in %q", ErrDuplicateKeyword, key, category)
	}
	l.UpsertCategory(kind, category, "")
	c, _ := l.FindCategory(kind, category)
	c.Keywords = append(c.Keywords, KeywordEntry{Key: key, Desc: desc})
	return nil
}

// AddKeywords creates count keywords named key, key_2 ... key_<count> in one
// category. Names are trimmed the same way RenameKeyword trims them. It
// stops at the first duplicate; keys added before it remain.
func (l *Library) AddKeywords(kind ListKind, category, description, key, desc string, count int) ([]string, error) {
	category, key = strings.TrimSpace(category), strings.TrimSpace(key)
	if category == "" || key == "" {
		return nil, ErrEmptyName
	}
	if count < 1 {
		count = 1
	}
	if count > MaxBatch {
		count = MaxBatch
	}
	l.UpsertCategory(kind, category, description)
	added := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := key
		if i > 0 {
			name = fmt.Sprintf("%s_%d", key, i+1)
		}
		if err := l.AddKeyword(kind, category, name, desc); err != nil {
			return added, err
		}
		added = append(added, name)
	}
	return added, nil
}

// RenameKeyword renames a keyword in place. It reports false without error
// when newKey is empty or unchanged.
func (l *Library) RenameKeyword(kind ListKind, category, oldKey, newKey string) (bool, error) {
	newKey = strings.TrimSpace(newKey)
	if newKey == "" || newKey == oldKey {
		return false, nil
	}
	c, ok := l.FindCategory(kind, category)
	if !ok {
		return false, fmt.Errorf("%w: %q in %q", ErrKeywordNotFound, oldKey, category)
	}
	i := indexOfKey(c.Keywords, oldKey)
	if i < 0 {
		return false, fmt.Errorf("%w: %q in %q", ErrKeywordNotFound, oldKey, category)
	}
	if indexOfKey(c.Keywords, newKey) >= 0 {
		return false, fmt.Errorf("%w: %q in %q", ErrDuplicateKeyword, newKey, category)
	}
	c.Keywords[i].Key = newKey
	return true, nil
}

// EditDescription overwrites a keyword's description.
func (l *Library) EditDescription(kind ListKind, category, key, desc string) error {
	c, ok := l.FindCategory(kind, category)
	if ok {
		if i := indexOfKey(c.Keywords, key); i >= 0 {
			c.Keywords[i].Desc = desc
			return nil
		}
	}
	return fmt.Errorf("%w: %q in %q", ErrKeywordNotFound, key, category)
}

// DeleteKeywords removes every referenced keyword and drops categories left
// empty. It returns the number of keywords removed.
func (l *Library) DeleteKeywords(refs []Ref) (int, error) {
	deleted := 0
	for _, ref := range refs {
		cats := l.list(ref.Kind)
		for ci := range *cats {
			c := &(*cats)[ci]
			if c.Name != ref.Category {
				continue
			}
			if ki := indexOfKey(c.Keywords, ref.Key); ki >= 0 {
				c.Keywords = append(c.Keywords[:ki], c.Keywords[ki+1:]...)
				deleted++
				if len(c.Keywords) == 0 {
					*cats = append((*cats)[:ci], (*cats)[ci+1:]...)
				}
			}
			break
		}
	}
	if deleted == 0 {
		return 0, ErrNothingDeleted
	}
	return deleted, nil
}

// ReorderCategories re-sequences a list to match names. Categories missing
// from names are dropped; unknown names are ignored.
func (l *Library) ReorderCategories(kind ListKind, names []string) {
	cats := l.list(kind)
	reordered := make([]Category, 0, len(names))
	used := make(map[string]bool, len(names))
	for _, name := range names {
		if used[name] {
			continue
		}
		if c, ok := l.FindCategory(kind, name); ok {
			reordered = append(reordered, *c)
			used[name] = true
		}
	}
	*cats = reordered
}

func indexOfKey(kws []KeywordEntry, key string) int {
	for i, kw := range kws {
		if kw.Key == key {
			return i
		}
	}
	return -1
}
