package scheduler

import (
	"context"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
)

const (
	// DefaultRefreshBatch caps how many bookmarks a single refresh pass retries
	DefaultRefreshBatch = 50
)

// MissingFaviconLister returns bookmarks that still have no favicon reference.
type MissingFaviconLister interface {
	ListBookmarksMissingFavicon(ctx context.Context, limit int) ([]domain.Bookmark, error)
}

// AsyncFetcher schedules background favicon fetches.
type AsyncFetcher interface {
	FetchAsync(bookmarkID int64, url string)
}

// FaviconRefresher periodically retries favicon resolution for bookmarks
// whose earlier fetch failed or was never attempted.
type FaviconRefresher struct {
	store         MissingFaviconLister
	fetcher       AsyncFetcher
	logger        logger.Logger
	interval      time.Duration
	batch         int
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewFaviconRefresher creates a new favicon refresher. manualTrigger lets
// callers force a pass outside the regular interval.
func NewFaviconRefresher(
	store MissingFaviconLister,
	fetcher AsyncFetcher,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *FaviconRefresher {
	return &FaviconRefresher{
		store:         store,
		fetcher:       fetcher,
		logger:        log,
		interval:      interval,
		batch:         DefaultRefreshBatch,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic refresh process
func (fr *FaviconRefresher) Start(ctx context.Context) error {
	// Run immediately on start
	if err := fr.Refresh(ctx); err != nil {
		fr.logger.Warn("initial favicon refresh failed", logger.Error(err))
	}

	ticker := time.NewTicker(fr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := fr.Refresh(ctx); err != nil {
					fr.logger.Error("favicon refresh failed", logger.Error(err))
				}
			case <-fr.manualTrigger:
				fr.logger.Info("manual favicon refresh triggered")
				if err := fr.Refresh(ctx); err != nil {
					fr.logger.Error("favicon refresh failed", logger.Error(err))
				}
			case <-fr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (fr *FaviconRefresher) Stop() {
	close(fr.stopCh)
}

// Refresh schedules fetches for one batch of bookmarks without a favicon
func (fr *FaviconRefresher) Refresh(ctx context.Context) error {
	bookmarks, err := fr.store.ListBookmarksMissingFavicon(ctx, fr.batch)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fr.logger.Debug("no bookmarks missing favicons")
		return nil
	}

	for _, b := range bookmarks {
		fr.fetcher.FetchAsync(b.ID, b.URL)
	}

	fr.logger.Info("scheduled favicon fetches",
		logger.Int("count", len(bookmarks)))
	return nil
}
