package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"prompt-editor/export"
	"prompt-editor/library"
	"prompt-editor/middleware"
	"prompt-editor/workspace"
)

// Options carries the optional parts of the router.
type Options struct {
	// Seed is copied into every new workspace. Nil starts them empty.
	Seed *library.Library
	// Limiter rate-limits the REST API per client IP. Nil disables it.
	Limiter *middleware.RateLimiter
}

func RegisterRoutes(manager *workspace.Manager, exports *export.Writer, staticFS fs.FS, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	h := &handler{manager: manager, exports: exports, seed: opts.Seed}

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Handler)
		}

		r.Get("/workspaces", h.listWorkspaces)
		r.Post("/workspaces", h.createWorkspace)
		r.Route("/workspaces/{id}", func(r chi.Router) {
			r.Delete("/", h.deleteWorkspace)
			r.Get("/state", h.getState)
			r.Get("/output", h.getOutput)
			r.Put("/settings", h.putSettings)

			r.Put("/library", h.importLibrary)
			r.Get("/library/export", h.exportLibrary)
			r.Put("/preset", h.importPreset)
			r.Get("/preset/export", h.exportPreset)

			r.Post("/categories", h.upsertCategory)
			r.Put("/categories/{list}/order", h.reorderCategories)
			r.Post("/keywords", h.addKeywords)
			r.Patch("/keywords", h.editKeyword)
			r.Post("/keywords/delete", h.deleteKeywords)

			r.Post("/selection/{list}/toggle", h.toggleSelection)
			r.Post("/selection/{list}/move", h.moveSelection)
			r.Post("/selection/{list}/remove", h.removeSelection)
			r.Post("/selection/{list}/emphasis", h.emphasis)
			r.Delete("/selection/{list}", h.resetSelection)

			// WebSocket
			r.Get("/ws", h.handleWS)
		})

		if exports != nil {
			r.Get("/exports", h.listExports)
			r.Get("/exports/{name}", h.getExport)
		}
	})

	// Static sub-FS: strip the "static/" prefix present in the embed.FS. A
	// filesystem already rooted at the page directory is used as is.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Read the page directly: http.FileServer redirects paths ending in
	// index.html to "./".
	r.Get("/", serveFile(staticSub, "index.html"))

	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	manager *workspace.Manager
	exports *export.Writer
	seed    *library.Library
}
