package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"prompt-editor/library"
	"prompt-editor/selection"
)

// PresetItem is one saved selection. Legacy presets store a bare key string.
type PresetItem struct {
	Key         string
	Category    string
	Description string
	Desc        string
	Emphasis    selection.Emphasis

	// Legacy is set for bare-string items, which carry no category.
	Legacy bool
	// Invalid marks items that cannot be read at all and are ignored.
	Invalid bool
}

type wireItem struct {
	Key           string         `json:"key"`
	Category      string         `json:"category"`
	Description   string         `json:"description"`
	Desc          string         `json:"desc"`
	EmphasisType  selection.Mode `json:"emphasisType"`
	EmphasisValue *float64       `json:"emphasisValue"`
}

// UnmarshalJSON accepts a bare key string or an item object. Anything else,
// and objects without a key, decode as Invalid rather than failing the file.
func (p *PresetItem) UnmarshalJSON(data []byte) error {
	*p = PresetItem{}
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '"':
		var key string
		if err := json.Unmarshal(trimmed, &key); err != nil {
			return err
		}
		p.Key, p.Legacy, p.Emphasis = key, true, selection.Plain()
		p.Invalid = key == ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			p.Invalid = true
			return nil
		}
		key := stringField(fields, "key")
		category := stringField(fields, "category")
		value, ok := numberField(fields, "emphasisValue")
		if !ok {
			value = selection.EmphasisMin
		}
		*p = PresetItem{
			Key:         key,
			Category:    category,
			Description: stringField(fields, "description"),
			Desc:        stringField(fields, "desc"),
			Emphasis:    selection.NewEmphasis(selection.Mode(stringField(fields, "emphasisType")), value),
			Legacy:      category == "",
			Invalid:     key == "",
		}
		return nil
	}
	p.Invalid = true
	return nil
}

// stringField reads a string member, treating a missing or mistyped one as
// empty so a single bad field does not cost the whole item.
func stringField(fields map[string]json.RawMessage, name string) string {
	var s string
	if raw, ok := fields[name]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// numberField reads a number member. Numeric strings such as "1.4" are
// accepted too.
func numberField(fields map[string]json.RawMessage, name string) (float64, bool) {
	raw, ok := fields[name]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// MarshalJSON always writes the object form.
func (p PresetItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireItem{
		Key:           p.Key,
		Category:      p.Category,
		Description:   p.Description,
		Desc:          p.Desc,
		EmphasisType:  p.Emphasis.Mode,
		EmphasisValue: &p.Emphasis.Value,
	})
}

// Preset is a saved pair of selection lists.
type Preset struct {
	Prompt   []PresetItem `json:"prompt"`
	Negative []PresetItem `json:"negative"`
}

// Items returns the items of one list.
func (p Preset) Items(kind library.ListKind) []PresetItem {
	if kind == library.Negative {
		return p.Negative
	}
	return p.Prompt
}

// ParsePreset decodes a preset file. The top level must be an object; a
// list field that is not an array is treated as empty.
func ParsePreset(data []byte) (*Preset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: preset must be an object", library.ErrParse)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", library.ErrParse, err)
	}
	p := &Preset{Prompt: items(raw["prompt"]), Negative: items(raw["negative"])}
	return p, nil
}

func items(raw json.RawMessage) []PresetItem {
	var out []PresetItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return []PresetItem{}
	}
	if out == nil {
		out = []PresetItem{}
	}
	return out
}

// FileKind names the exported document type.
type FileKind string

const (
	KeywordsFile FileKind = "keywords"
	PresetsFile  FileKind = "presets"
)

// FileName returns the download name for an export taken at t, in t's
// location: keywords_YYYYMMDD_HHMMSS.json or presets_YYYYMMDD_HHMMSS.json.
func FileName(kind FileKind, t time.Time) string {
	return fmt.Sprintf("%s_%s.json", kind, t.Format("20060102_150405"))
}
