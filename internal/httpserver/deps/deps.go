package deps

import (
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/favicon"
	"github.com/gogogadgetscott/anchormarks/internal/importer"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
	"github.com/gogogadgetscott/anchormarks/internal/store/sqlite"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store    *sqlite.Store      // bookmark, folder and tag persistence
	Importer *importer.Importer // interchange import/sync pipeline
	Icons    *favicon.IconStore // fetched icon blobs, nil when not configured

	RedisClient *redis.Client // favicon cache connection, nil when disabled

	// UserID scopes every request. Multi-user auth is out of scope for
	// the API server; deployments run one collection per instance.
	UserID int64

	APIKey         string        // required X-API-Key value, empty disables auth
	MaxImportBytes int64         // byte ceiling for import payloads
	FaviconRefresh chan struct{} // channel to trigger a manual favicon refresh pass

	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to access healthz/readyz endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy
}
