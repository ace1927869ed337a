package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
)

type listResponse struct {
	Bookmarks []bookmarkView `json:"bookmarks"`
}

// ListBookmarks returns the whole collection with resolved tags.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Store.ListBookmarks(r.Context(), d.UserID)
		if err != nil {
			d.Logger.Error("bookmark list failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		writeJSON(w, http.StatusOK, listResponse{Bookmarks: viewBookmarks(bookmarks)})
	}
}

// ClickBookmark records one open of a bookmark.
func ClickBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid bookmark id")
			return
		}

		if err := d.Store.IncrementClicks(r.Context(), d.UserID, id); err != nil {
			d.Logger.Error("click increment failed",
				logger.Int64("bookmark_id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "click failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
