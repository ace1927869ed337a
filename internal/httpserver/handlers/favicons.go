package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
)

// ServeFavicon returns the stored icon for a host.
func ServeFavicon(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Icons == nil {
			writeError(w, http.StatusNotFound, "icon store not configured")
			return
		}

		host := chi.URLParam(r, "host")
		data, err := d.Icons.Get(host)
		if err != nil {
			d.Logger.Error("icon lookup failed",
				logger.String("host", host),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "icon lookup failed")
			return
		}
		if data == nil {
			writeError(w, http.StatusNotFound, "no icon for host")
			return
		}

		w.Header().Set("Content-Type", "image/x-icon")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write icon body", logger.Error(err))
		}
	}
}

// RefreshFavicons triggers a manual favicon refresh pass.
func RefreshFavicons(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.FaviconRefresh == nil {
			writeError(w, http.StatusServiceUnavailable, "favicon refresh disabled")
			return
		}

		select {
		case d.FaviconRefresh <- struct{}{}:
			d.Logger.Info("manual favicon refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
		default:
			d.Logger.Warn("favicon refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}
