package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/handlers"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	sub := r.With(mw.APIKey(d.APIKey, d.Logger))
	sub.Get("/api/bookmarks", handlers.ListBookmarks(d))
	sub.Post("/api/bookmarks/{id}/click", handlers.ClickBookmark(d))
}
