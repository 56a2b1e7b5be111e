package api

import (
	"net/http"

	"prompt-editor/editor"
	"prompt-editor/selection"
)

type identityRequest struct {
	Category string `json:"category"`
	Key      string `json:"key"`
}

func (req identityRequest) identity() selection.Identity {
	return selection.Identity{Category: req.Category, Key: req.Key}
}

func (h *handler) toggleSelection(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	kind, ok := listParam(w, r)
	if !ok {
		return
	}
	var req struct {
		identityRequest
		Checked bool `json:"checked"`
	}
	if !decode(w, r, &req) {
		return
	}
	st, err := ws.Editor().Toggle(kind, req.identity(), req.Checked)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *handler) moveSelection(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	kind, ok := listParam(w, r)
	if !ok {
		return
	}
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if !decode(w, r, &req) {
		return
	}
	st, err := ws.Editor().Move(kind, req.From, req.To)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *handler) removeSelection(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	kind, ok := listParam(w, r)
	if !ok {
		return
	}
	var req identityRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor().Remove(kind, req.identity()))
}

// emphasis applies one strengthen or weaken step. A disabled control is not
// an error; the unchanged state is returned with changed=false.
func (h *handler) emphasis(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	kind, ok := listParam(w, r)
	if !ok {
		return
	}
	var req struct {
		identityRequest
		Direction string `json:"direction"`
	}
	if !decode(w, r, &req) {
		return
	}
	ed := ws.Editor()
	var resp struct {
		State   editor.State `json:"state"`
		Changed bool         `json:"changed"`
	}
	switch req.Direction {
	case "increase":
		resp.State, resp.Changed = ed.Increase(kind, req.identity())
	case "decrease":
		resp.State, resp.Changed = ed.Decrease(kind, req.identity())
	default:
		writeError(w, http.StatusBadRequest, `direction must be "increase" or "decrease"`)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) resetSelection(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	kind, ok := listParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor().Reset(kind))
}
