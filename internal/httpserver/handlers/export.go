package handlers

import (
	"net/http"

	"github.com/gogogadgetscott/anchormarks/internal/bundle"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
	"github.com/gogogadgetscott/anchormarks/internal/netscape"
)

// ExportNetscape renders the whole collection as a Netscape bookmark
// file download.
func ExportNetscape(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Store.ListBookmarks(r.Context(), d.UserID)
		if err != nil {
			d.Logger.Error("netscape export failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.html"`)
		if _, err := w.Write(netscape.Emit(bookmarks)); err != nil {
			d.Logger.Debug("failed to write export body", logger.Error(err))
		}
	}
}

// ExportBundle renders the whole collection, folders included, as a
// JSON bundle.
func ExportBundle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Store.ListBookmarks(r.Context(), d.UserID)
		if err != nil {
			d.Logger.Error("bundle export failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		folders, err := d.Store.ListFolders(r.Context(), d.UserID)
		if err != nil {
			d.Logger.Error("bundle export failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := bundle.Encode(w, bundle.Export(bookmarks, folders)); err != nil {
			d.Logger.Debug("failed to write export body", logger.Error(err))
		}
	}
}
