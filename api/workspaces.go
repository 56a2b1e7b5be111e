package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *handler) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.List())
}

func (h *handler) createWorkspace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	seed := h.seed
	if seed != nil {
		seed = seed.Clone()
	}
	ws, err := h.manager.Create(req.Name, seed)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ws.Info())
}

func (h *handler) deleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor().State())
}

func (h *handler) getOutput(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor().Outputs())
}

func (h *handler) putSettings(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}
	var req struct {
		ShowDesc bool `json:"showDesc"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor().SetShowDesc(req.ShowDesc))
}
