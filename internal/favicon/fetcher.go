// Package favicon resolves and stores site icons for bookmarks.
//
// Resolution is deliberately fire-and-forget: bookmark imports must not
// block on, or fail because of, a slow or missing icon. Failures are
// logged and the bookmark simply keeps an empty favicon reference until
// a later refresh pass retries it.
package favicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/logger"
	redisstore "github.com/gogogadgetscott/anchormarks/internal/store/redis"
	"github.com/gogogadgetscott/anchormarks/internal/utils"
)

const (
	fetchTimeout = 10 * time.Second
	// maxIconSize caps the icon body we are willing to store (1 MiB).
	maxIconSize = 1 << 20
)

// BookmarkStore is the slice of the persistence layer the fetcher needs.
type BookmarkStore interface {
	SetFavicon(ctx context.Context, id int64, ref string) error
}

// Fetcher resolves favicons for bookmarks in the background.
type Fetcher struct {
	store  BookmarkStore
	icons  *IconStore
	cache  *redisstore.Cache
	client *http.Client
	logger logger.Logger
}

// NewFetcher creates a favicon fetcher. icons and cache may be nil,
// in which case fetched icons are not persisted locally and every
// resolution goes to the network.
func NewFetcher(store BookmarkStore, icons *IconStore, cache *redisstore.Cache, log logger.Logger) *Fetcher {
	return &Fetcher{
		store:  store,
		icons:  icons,
		cache:  cache,
		client: &http.Client{Timeout: fetchTimeout},
		logger: log,
	}
}

// FetchAsync schedules a favicon fetch for a bookmark. It returns
// immediately; the fetch runs in its own goroutine.
func (f *Fetcher) FetchAsync(bookmarkID int64, rawURL string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := f.Fetch(ctx, bookmarkID, rawURL); err != nil {
			f.logger.Debug("favicon fetch failed",
				logger.Int64("bookmark_id", bookmarkID),
				logger.String("url", rawURL),
				logger.Error(err))
		}
	}()
}

// Fetch resolves the favicon for a bookmark URL and records the
// resolved reference on the bookmark row.
func (f *Fetcher) Fetch(ctx context.Context, bookmarkID int64, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("no host in %q", rawURL)
	}

	// A cached resolution means the icon was fetched recently for
	// another bookmark on the same host.
	if cached, err := f.cache.GetCachedFavicon(ctx, u.Host); err == nil && cached != "" {
		return f.store.SetFavicon(ctx, bookmarkID, cached)
	}

	iconURL := u.Scheme + "://" + u.Host + "/favicon.ico"
	data, err := f.download(ctx, iconURL)
	if err != nil {
		return err
	}

	if f.icons != nil {
		if err := f.icons.Put(u.Host, data); err != nil {
			f.logger.Warn("failed to store icon",
				logger.String("host", u.Host),
				logger.Error(err))
		}
	}

	ref := "/api/favicons/" + u.Host
	if err := f.cache.CacheFavicon(ctx, u.Host, ref, redisstore.DefaultFaviconTTL); err != nil {
		f.logger.Warn("failed to cache favicon resolution",
			logger.String("host", u.Host),
			logger.Error(err))
	}

	return f.store.SetFavicon(ctx, bookmarkID, ref)
}

func (f *Fetcher) download(ctx context.Context, iconURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iconURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, iconURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconSize))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty icon body from %s", iconURL)
	}
	return data, nil
}
