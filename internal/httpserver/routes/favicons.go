package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/handlers"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/mw"
)

func init() { Register(registerFavicons) }

func registerFavicons(r chi.Router, d deps.Deps) {
	r.Get("/api/favicons/{host}", handlers.ServeFavicon(d))
	r.With(mw.APIKey(d.APIKey, d.Logger)).Post("/api/favicons/refresh", handlers.RefreshFavicons(d))
}
