package editor

import (
	"prompt-editor/document"
	"prompt-editor/library"
	"prompt-editor/selection"
)

var kinds = []library.ListKind{library.Positive, library.Negative}

// ImportKeywords replaces the library from a keyword file. Both selections
// are rebuilt from the file's checked keywords at normal emphasis. A parse
// failure leaves the editor untouched. Checked keywords missing from the new
// library are reported as *UnresolvedError after the import is applied.
func (e *Editor) ImportKeywords(data []byte) (State, error) {
	f, err := document.ParseKeywordFile(data)
	if err != nil {
		return e.State(), err
	}
	var unresolved []library.Ref
	st, _ := e.mutate(func() (bool, error) {
		e.lib = f.Library
		e.prompt = selection.NewList(library.Positive)
		e.negative = selection.NewList(library.Negative)
		e.showDesc = false
		if f.Settings == nil {
			return true, nil
		}
		e.showDesc = f.Settings.ShowDesc
		for _, kind := range kinds {
			l := e.list(kind)
			for _, ref := range f.Settings.CheckedKeywords.Refs(kind) {
				kw, ok := e.lib.FindKeyword(kind, ref.Category, ref.Key)
				if !ok {
					unresolved = append(unresolved, library.Ref{Kind: kind, Category: ref.Category, Key: ref.Key})
					continue
				}
				l.Add(selection.Identity{Category: ref.Category, Key: ref.Key}, selection.Plain(), kw.Desc)
			}
		}
		return true, nil
	})
	if len(unresolved) > 0 {
		return st, &UnresolvedError{Refs: unresolved}
	}
	return st, nil
}

// ExportKeywords returns the library with the current settings and every
// selected keyword recorded as checked.
func (e *Editor) ExportKeywords() document.KeywordFile {
	e.mu.Lock()
	defer e.mu.Unlock()
	settings := &document.Settings{ShowDesc: e.showDesc}
	for _, kind := range kinds {
		refs := []document.CheckedRef{}
		for _, id := range e.list(kind).Identities() {
			refs = append(refs, document.CheckedRef{Category: id.Category, Key: id.Key})
		}
		if kind == library.Negative {
			settings.CheckedKeywords.Negative = refs
		} else {
			settings.CheckedKeywords.Prompt = refs
		}
	}
	return document.KeywordFile{Library: e.lib.Clone(), Settings: settings}
}

// ImportPreset replaces both selections from a preset. Items naming a
// category are created in the library when missing, and existing ones take
// the preset's descriptions. Bare-key items match the first keyword with
// that key in the list. Items that resolve to nothing are skipped and
// reported as *UnresolvedError.
func (e *Editor) ImportPreset(data []byte) (State, error) {
	p, err := document.ParsePreset(data)
	if err != nil {
		return e.State(), err
	}
	var unresolved []library.Ref
	st, _ := e.mutate(func() (bool, error) {
		e.prompt = selection.NewList(library.Positive)
		e.negative = selection.NewList(library.Negative)
		for _, kind := range kinds {
			l := e.list(kind)
			for _, item := range p.Items(kind) {
				if item.Invalid {
					continue
				}
				if !item.Legacy && l.Contains(selection.Identity{Category: item.Category, Key: item.Key}) {
					continue
				}
				id, ok := e.resolve(kind, item)
				if !ok {
					unresolved = append(unresolved, library.Ref{Kind: kind, Category: item.Category, Key: item.Key})
					continue
				}
				kw, _ := e.lib.FindKeyword(kind, id.Category, id.Key)
				l.Add(id, item.Emphasis, kw.Desc)
			}
		}
		e.sync()
		return true, nil
	})
	if len(unresolved) > 0 {
		return st, &UnresolvedError{Refs: unresolved}
	}
	return st, nil
}

// resolve finds or creates the keyword a preset item names. Caller must
// hold e.mu.
func (e *Editor) resolve(kind library.ListKind, item document.PresetItem) (selection.Identity, bool) {
	if item.Legacy {
		category, ok := e.lib.FindKeywordByKey(kind, item.Key)
		return selection.Identity{Category: category, Key: item.Key}, ok
	}
	id := selection.Identity{Category: item.Category, Key: item.Key}
	e.lib.UpsertCategory(kind, item.Category, item.Description)
	if _, ok := e.lib.FindKeyword(kind, item.Category, item.Key); ok {
		_ = e.lib.EditDescription(kind, item.Category, item.Key, item.Desc)
		return id, true
	}
	if err := e.lib.AddKeyword(kind, item.Category, item.Key, item.Desc); err != nil {
		return selection.Identity{}, false
	}
	return id, true
}

// ExportPreset returns both selections with their emphasis and the library
// descriptions needed to recreate missing keywords on import.
func (e *Editor) ExportPreset() document.Preset {
	e.mu.Lock()
	defer e.mu.Unlock()
	var p document.Preset
	for _, kind := range kinds {
		items := []document.PresetItem{}
		for _, entry := range e.list(kind).Entries() {
			items = append(items, document.PresetItem{
				Key:         entry.Key,
				Category:    entry.Category,
				Description: e.lib.CategoryDescription(kind, entry.Category),
				Desc:        entry.Desc,
				Emphasis:    entry.Emphasis,
			})
		}
		if kind == library.Negative {
			p.Negative = items
		} else {
			p.Prompt = items
		}
	}
	return p
}
