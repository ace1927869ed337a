package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/handlers"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/mw"
)

func init() { Register(registerImports) }

func registerImports(r chi.Router, d deps.Deps) {
	sub := r.With(
		mw.APIKey(d.APIKey, d.Logger),
		mw.MaxBytes(d.MaxImportBytes),
	)
	sub.Post("/api/import/netscape", handlers.ImportNetscape(d))
	sub.Post("/api/import/safari", handlers.ImportSafari(d))
	sub.Post("/api/import", handlers.ImportBundle(d))
	sub.Post("/api/sync", handlers.SyncBundle(d))
}
