package mw

import (
	"crypto/subtle"
	"net/http"

	"github.com/gogogadgetscott/anchormarks/internal/logger"
)

// APIKey rejects requests whose X-API-Key header does not match key.
// An empty key disables the check (passthrough).
func APIKey(key string, log logger.Logger) func(http.Handler) http.Handler {
	if key == "" {
		log.Debug("APIKey: no key configured, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				log.Warn("rejected request with bad api key",
					logger.String("remote_ip", r.RemoteAddr),
					logger.String("path", r.URL.Path))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
