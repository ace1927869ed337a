package scheduler

import (
	"context"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/logger"
)

const (
	// DefaultGCInterval is how often unused tags are swept
	DefaultGCInterval = 6 * time.Hour
)

// UnusedTagDeleter removes tags no bookmark references anymore.
type UnusedTagDeleter interface {
	DeleteUnusedTags(ctx context.Context) (int64, error)
}

// TagGarbageCollector handles cleanup of tags left behind after
// bookmark deletions and tag reassignments.
type TagGarbageCollector struct {
	store    UnusedTagDeleter
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewTagGarbageCollector creates a new tag garbage collector
func NewTagGarbageCollector(store UnusedTagDeleter, log logger.Logger, interval time.Duration) *TagGarbageCollector {
	if interval == 0 {
		interval = DefaultGCInterval
	}
	return &TagGarbageCollector{
		store:    store,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *TagGarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial tag garbage collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("tag garbage collection failed", logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *TagGarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect removes tags that no bookmark references
func (gc *TagGarbageCollector) Collect(ctx context.Context) error {
	deleted, err := gc.store.DeleteUnusedTags(ctx)
	if err != nil {
		return err
	}

	if deleted > 0 {
		gc.logger.Info("tag garbage collection completed",
			logger.Int64("tags_deleted", deleted))
	} else {
		gc.logger.Debug("no unused tags to collect")
	}
	return nil
}
