package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

// BookmarkStore is the slice of the persistence collaborator bookmark
// writes consume.
type BookmarkStore interface {
	CreateBookmark(ctx context.Context, b *domain.Bookmark) error
	UpdateBookmark(ctx context.Context, b *domain.Bookmark) error
	GetBookmarkByURL(ctx context.Context, userID int64, url string) (*domain.Bookmark, error)
	NextBookmarkPosition(ctx context.Context, userID int64, folderID *int64) (int, error)
	SetBookmarkTags(ctx context.Context, bookmarkID int64, tagIDs []int64, overrides map[int64]string) error
}

// FaviconFetcher schedules a fire-and-forget icon fetch. Implementations
// must never block the import call or surface their failures to it.
type FaviconFetcher interface {
	FetchAsync(bookmarkID int64, url string)
}

// Persister writes resolved bookmarks into storage and attaches their tag
// links. Writes are not wrapped in one all-or-nothing transaction: a
// failing row aborts the remainder of the import, rows already written
// stay.
type Persister struct {
	store    BookmarkStore
	favicons FaviconFetcher
}

func NewPersister(store BookmarkStore, favicons FaviconFetcher) *Persister {
	return &Persister{store: store, favicons: favicons}
}

// resolved is one bookmark ready to be written.
type resolved struct {
	url         string
	title       string
	description string
	folderID    *int64
	created     time.Time
	tagIDs      []int64
	overrides   map[int64]string
}

// Insert writes one resolved bookmark as a new row. The URL doubles as
// title when none was supplied, and the content type is derived from the
// URL for display. Tag links attach after the row exists.
func (p *Persister) Insert(ctx context.Context, userID int64, rec resolved) (*domain.Bookmark, error) {
	title := rec.title
	if title == "" {
		title = rec.url
	}

	position, err := p.store.NextBookmarkPosition(ctx, userID, rec.folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute bookmark position: %w", err)
	}

	b := &domain.Bookmark{
		UserID:      userID,
		URL:         rec.url,
		Title:       title,
		Description: rec.description,
		FolderID:    rec.folderID,
		Position:    position,
		CreatedAt:   rec.created,
		ContentType: domain.Classify(rec.url),
	}
	if err := p.store.CreateBookmark(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to insert bookmark %q: %w", rec.url, err)
	}

	if err := p.attachTags(ctx, b, rec); err != nil {
		return nil, err
	}

	if p.favicons != nil {
		p.favicons.FetchAsync(b.ID, b.URL)
	}
	return b, nil
}

// Update merges a resolved bookmark into an existing row: title, folder
// and tag links are replaced in place. Used only by the sync import path.
func (p *Persister) Update(ctx context.Context, existing *domain.Bookmark, rec resolved) (*domain.Bookmark, error) {
	if rec.title != "" {
		existing.Title = rec.title
	}
	if rec.description != "" {
		existing.Description = rec.description
	}
	existing.FolderID = rec.folderID

	if err := p.store.UpdateBookmark(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update bookmark %q: %w", existing.URL, err)
	}
	if err := p.attachTags(ctx, existing, rec); err != nil {
		return nil, err
	}
	return existing, nil
}

func (p *Persister) attachTags(ctx context.Context, b *domain.Bookmark, rec resolved) error {
	if len(rec.tagIDs) == 0 {
		return nil
	}
	if err := p.store.SetBookmarkTags(ctx, b.ID, rec.tagIDs, rec.overrides); err != nil {
		return fmt.Errorf("failed to link tags for %q: %w", b.URL, err)
	}
	return nil
}
