package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/handlers"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/mw"
)

func init() { Register(registerExports) }

func registerExports(r chi.Router, d deps.Deps) {
	sub := r.With(mw.APIKey(d.APIKey, d.Logger))
	sub.Get("/api/export/netscape", handlers.ExportNetscape(d))
	sub.Get("/api/export", handlers.ExportBundle(d))
}
