package handlers

import (
	"io"
	"net/http"

	"github.com/gogogadgetscott/anchormarks/internal/bundle"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/importer"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
	"github.com/gogogadgetscott/anchormarks/internal/safari"
)

// importResponse is the envelope returned by every import endpoint.
type importResponse struct {
	Count             int            `json:"count"`
	Updated           int            `json:"updated,omitempty"`
	Skipped           int            `json:"skipped,omitempty"`
	UnresolvedFolders []string       `json:"unresolvedFolders,omitempty"`
	Bookmarks         []bookmarkView `json:"bookmarks"`
}

func writeImportResult(w http.ResponseWriter, result *importer.Result) {
	writeJSON(w, http.StatusOK, importResponse{
		Count:             result.Count,
		Updated:           result.Updated,
		Skipped:           result.Skipped,
		UnresolvedFolders: result.UnresolvedFolders,
		Bookmarks:         viewBookmarks(result.Bookmarks),
	})
}

// ImportNetscape accepts a Netscape bookmark file body and imports it.
func ImportNetscape(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, bodyErrorStatus(err), "cannot read request body")
			return
		}

		result, err := d.Importer.ImportNetscape(r.Context(), d.UserID, string(body))
		if err != nil {
			d.Logger.Error("netscape import failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "import failed")
			return
		}
		writeImportResult(w, result)
	}
}

// ImportSafari accepts a Safari Bookmarks.plist body and imports it.
func ImportSafari(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, bodyErrorStatus(err), "cannot read request body")
			return
		}

		root, err := safari.Parse(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid property list")
			return
		}

		result, err := d.Importer.ImportTree(r.Context(), d.UserID, root)
		if err != nil {
			d.Logger.Error("safari import failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "import failed")
			return
		}
		writeImportResult(w, result)
	}
}

// ImportBundle accepts a JSON bundle and imports every valid entry as a
// new bookmark. No URL deduplication happens on this path.
func ImportBundle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := bundle.Decode(r.Body)
		if err != nil {
			writeError(w, bodyErrorStatus(err), "invalid bundle payload")
			return
		}

		result, err := d.Importer.ImportBundle(r.Context(), d.UserID, payload)
		if err != nil {
			d.Logger.Error("bundle import failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "import failed")
			return
		}
		writeImportResult(w, result)
	}
}

// SyncBundle accepts a JSON bundle and merges it into the collection,
// matching existing bookmarks by URL.
func SyncBundle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := bundle.Decode(r.Body)
		if err != nil {
			writeError(w, bodyErrorStatus(err), "invalid bundle payload")
			return
		}

		result, err := d.Importer.SyncBundle(r.Context(), d.UserID, payload)
		if err != nil {
			d.Logger.Error("bundle sync failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "sync failed")
			return
		}
		writeImportResult(w, result)
	}
}
