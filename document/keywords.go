// Package document implements the two JSON file formats the editor imports
// and exports: keyword files (library plus settings) and presets (selections).
package document

import (
	"encoding/json"
	"fmt"

	"prompt-editor/library"
)

// CheckedRef is one checked keyword stored in a keyword file.
type CheckedRef struct {
	Category string `json:"category"`
	Key      string `json:"key"`
}

// Checked lists the checked keywords per list.
type Checked struct {
	Prompt   []CheckedRef `json:"promptCategories"`
	Negative []CheckedRef `json:"negativeCategories"`
}

// UnmarshalJSON also accepts the legacy prompt/negative_prompt names.
func (c *Checked) UnmarshalJSON(data []byte) error {
	var w struct {
		Prompt         []CheckedRef `json:"promptCategories"`
		Negative       []CheckedRef `json:"negativeCategories"`
		LegacyPrompt   []CheckedRef `json:"prompt"`
		LegacyNegative []CheckedRef `json:"negative_prompt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Prompt = w.Prompt
	if c.Prompt == nil {
		c.Prompt = w.LegacyPrompt
	}
	c.Negative = w.Negative
	if c.Negative == nil {
		c.Negative = w.LegacyNegative
	}
	return nil
}

// Refs returns the refs checked in one list.
func (c Checked) Refs(kind library.ListKind) []CheckedRef {
	if kind == library.Negative {
		return c.Negative
	}
	return c.Prompt
}

// Settings is the UI state saved alongside a library.
type Settings struct {
	ShowDesc        bool    `json:"showDesc"`
	CheckedKeywords Checked `json:"checkedKeywords"`
}

// KeywordFile is a library with optional settings.
type KeywordFile struct {
	Library  *library.Library
	Settings *Settings
}

// ParseKeywordFile decodes a keyword file. Errors wrap library.ErrParse.
func ParseKeywordFile(data []byte) (*KeywordFile, error) {
	lib, err := library.Parse(data)
	if err != nil {
		return nil, err
	}
	var w struct {
		Settings *Settings `json:"settings"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: settings: %v", library.ErrParse, err)
	}
	return &KeywordFile{Library: lib, Settings: w.Settings}, nil
}

// MarshalJSON emits the library followed by the settings block, which is
// always present on export.
func (f KeywordFile) MarshalJSON() ([]byte, error) {
	lib := f.Library
	if lib == nil {
		lib = library.New()
	}
	var settings Settings
	if f.Settings != nil {
		settings = *f.Settings
	}
	if settings.CheckedKeywords.Prompt == nil {
		settings.CheckedKeywords.Prompt = []CheckedRef{}
	}
	if settings.CheckedKeywords.Negative == nil {
		settings.CheckedKeywords.Negative = []CheckedRef{}
	}
	return json.Marshal(struct {
		PromptCategories   []library.Category `json:"promptCategories"`
		NegativeCategories []library.Category `json:"negativeCategories"`
		Settings           Settings           `json:"settings"`
	}{lib.Categories(library.Positive), lib.Categories(library.Negative), settings})
}

// Encode renders v as indented JSON, the layout used for downloaded files.
func Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
