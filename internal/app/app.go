package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/gogogadgetscott/anchormarks/internal/config"
	"github.com/gogogadgetscott/anchormarks/internal/favicon"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver"
	"github.com/gogogadgetscott/anchormarks/internal/httpserver/deps"
	"github.com/gogogadgetscott/anchormarks/internal/importer"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
	"github.com/gogogadgetscott/anchormarks/internal/redis"
	"github.com/gogogadgetscott/anchormarks/internal/scheduler"
	redisstore "github.com/gogogadgetscott/anchormarks/internal/store/redis"
	"github.com/gogogadgetscott/anchormarks/internal/store/sqlite"
	"github.com/gogogadgetscott/anchormarks/internal/version"
)

// defaultUserID scopes all rows for a single-collection deployment.
const defaultUserID = 1

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *sqlite.Store
	icons       *favicon.IconStore
	redisClient *goredis.Client
	refresher   *scheduler.FaviconRefresher
	gc          *scheduler.TagGarbageCollector
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	loggerClient.Info("database opened", logger.String("path", cfg.DatabasePath))

	// Redis is optional. Without it favicon resolutions just go to the
	// network every time.
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	} else {
		loggerClient.Info("redis not configured, favicon cache disabled")
	}

	// Icon storage is optional too. Without it bookmarks keep whatever
	// favicon reference the fetcher resolves, but /api/favicons serves 404s.
	var icons *favicon.IconStore
	if cfg.IconStorePath != "" {
		icons, err = favicon.OpenIconStore(cfg.IconStorePath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to open icon store: %w", err)
		}
		loggerClient.Info("icon store opened", logger.String("path", cfg.IconStorePath))
	} else {
		loggerClient.Info("icon path not configured, icons not stored locally")
	}

	cache := redisstore.NewCache(redisClient)
	fetcher := favicon.NewFetcher(store, icons, cache, loggerClient)
	imp := importer.New(store, fetcher, loggerClient)

	refreshTrigger := make(chan struct{}, 1)
	refresher := scheduler.NewFaviconRefresher(
		store,
		fetcher,
		loggerClient,
		cfg.FaviconRefreshInterval,
		refreshTrigger,
	)
	gc := scheduler.NewTagGarbageCollector(store, loggerClient, cfg.TagGCInterval)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Store:          store,
		Importer:       imp,
		Icons:          icons,
		RedisClient:    redisClient,
		UserID:         defaultUserID,
		APIKey:         cfg.APIKey,
		MaxImportBytes: cfg.MaxImportBytes,
		FaviconRefresh: refreshTrigger,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       store,
		icons:       icons,
		redisClient: redisClient,
		refresher:   refresher,
		gc:          gc,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting AnchorMarks v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("AnchorMarks %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start favicon refresher: %w", err)
	}
	a.logger.Info("favicon refresher started",
		logger.Duration("interval", a.cfg.FaviconRefreshInterval))

	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start tag garbage collector: %w", err)
	}
	a.logger.Info("tag garbage collector started",
		logger.Duration("interval", a.cfg.TagGCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}
	if a.icons != nil {
		if err := a.icons.Close(); err != nil {
			a.logger.Warnf("failed to close icon store: %v", err)
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	}

	a.logger.Info("✅ AnchorMarks stopped cleanly")
	return nil
}
