package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *handler) listExports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.exports.Recent())
}

func (h *handler) getExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := h.exports.Read(name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
