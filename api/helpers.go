package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"prompt-editor/document"
	"prompt-editor/editor"
	"prompt-editor/export"
	"prompt-editor/library"
	"prompt-editor/selection"
	"prompt-editor/workspace"
)

const maxBody = 8 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps editor errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, library.ErrParse),
		errors.Is(err, library.ErrUnknownList),
		errors.Is(err, library.ErrEmptyName):
		status = http.StatusBadRequest
	case errors.Is(err, library.ErrDuplicateKeyword),
		errors.Is(err, workspace.ErrNameTaken):
		status = http.StatusConflict
	case errors.Is(err, library.ErrNothingDeleted),
		errors.Is(err, library.ErrKeywordNotFound),
		errors.Is(err, workspace.ErrNotFound),
		errors.Is(err, export.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, export.ErrInvalidName):
		status = http.StatusBadRequest
	case errors.Is(err, selection.ErrIndexOutOfRange):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, err.Error())
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// readBody returns the raw request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return nil, false
	}
	return data, true
}

// listParam parses the {list} URL parameter.
func listParam(w http.ResponseWriter, r *http.Request) (library.ListKind, bool) {
	kind, err := library.ParseListKind(chi.URLParam(r, "list"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return kind, true
}

// workspaceFor resolves the {id} URL parameter.
func (h *handler) workspaceFor(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	ws, ok := h.manager.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "workspace not found")
		return nil, false
	}
	return ws, true
}

// writeAttachment sends v as a downloadable JSON file named for kind and now.
// With ?save=true a copy is also kept in the export directory.
func (h *handler) writeAttachment(w http.ResponseWriter, r *http.Request, kind document.FileKind, v any) {
	now := time.Now()
	data, err := document.Encode(v)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	name := document.FileName(kind, now)
	if r.URL.Query().Get("save") == "true" && h.exports != nil {
		if name, err = h.exports.Write(kind, v, now); err != nil {
			writeDomainError(w, r, fmt.Errorf("save export: %w", err))
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// importResponse is the body returned by the import endpoints.
type importResponse struct {
	State   editor.State  `json:"state"`
	Skipped []library.Ref `json:"skipped"`
	Message string        `json:"message,omitempty"`
}

// writeImport reports an import result. Unresolved references are not a
// failure: the import applied and the skipped refs are listed.
func writeImport(w http.ResponseWriter, r *http.Request, st editor.State, err error) {
	resp := importResponse{State: st, Skipped: []library.Ref{}}
	var unresolved *editor.UnresolvedError
	switch {
	case err == nil:
	case errors.As(err, &unresolved):
		resp.Skipped = unresolved.Refs
		resp.Message = unresolved.Error()
	default:
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
