package api

import (
	"net/http"

	"prompt-editor/document"
	"prompt-editor/editor"
	"prompt-editor/library"
)

func (h *handler) importLibrary(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	st, err := ws.Editor().ImportKeywords(data)
	writeImport(w, r, st, err)
}

func (h *handler) exportLibrary(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	h.writeAttachment(w, r, document.KeywordsFile, ws.Editor().ExportKeywords())
}

func (h *handler) importPreset(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	st, err := ws.Editor().ImportPreset(data)
	writeImport(w, r, st, err)
}

func (h *handler) exportPreset(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	h.writeAttachment(w, r, document.PresetsFile, ws.Editor().ExportPreset())
}

func (h *handler) upsertCategory(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	var req struct {
		List        string `json:"list"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}
	kind, err := library.ParseListKind(req.List)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	st, created, err := ws.Editor().UpsertCategory(kind, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, st)
}

func (h *handler) reorderCategories(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	kind, ok := listParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Order []string `json:"order"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor().ReorderCategories(kind, req.Order))
}

func (h *handler) addKeywords(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	var req struct {
		List        string `json:"list"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Key         string `json:"key"`
		Desc        string `json:"desc"`
		Count       int    `json:"count"`
	}
	if !decode(w, r, &req) {
		return
	}
	kind, err := library.ParseListKind(req.List)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	st, added, err := ws.Editor().AddKeywords(kind, req.Category, req.Description, req.Key, req.Desc, req.Count)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		State editor.State `json:"state"`
		Added []string     `json:"added"`
	}{st, added})
}

// editKeyword renames a keyword and/or replaces its description.
func (h *handler) editKeyword(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	var req struct {
		List     string  `json:"list"`
		Category string  `json:"category"`
		Key      string  `json:"key"`
		NewKey   *string `json:"newKey"`
		Desc     *string `json:"desc"`
	}
	if !decode(w, r, &req) {
		return
	}
	kind, err := library.ParseListKind(req.List)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	st, err := ws.Editor().EditKeyword(kind, req.Category, req.Key, req.NewKey, req.Desc)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *handler) deleteKeywords(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	var req struct {
		Keywords []struct {
			List     string `json:"list"`
			Category string `json:"category"`
			Key      string `json:"key"`
		} `json:"keywords"`
	}
	if !decode(w, r, &req) {
		return
	}
	refs := make([]library.Ref, 0, len(req.Keywords))
	for _, k := range req.Keywords {
		kind, err := library.ParseListKind(k.List)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		refs = append(refs, library.Ref{Kind: kind, Category: k.Category, Key: k.Key})
	}
	st, n, err := ws.Editor().DeleteKeywords(refs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		State   editor.State `json:"state"`
		Deleted int          `json:"deleted"`
	}{st, n})
}
