package domain

import "time"

// Bookmark is a single saved URL belonging to one user.
// Bookmarks live in at most one folder and carry any number of tag links.
type Bookmark struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the server-assigned identifier.
	ID int64

	// UserID scopes the bookmark to its owning account.
	UserID int64

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// URL is the bookmark target (required).
	URL string

	// Title is the display name. Falls back to the URL when absent.
	Title string

	// Description is free-form user text.
	Description string

	// Favicon is a reference to the stored icon for the URL's host.
	// Empty until the favicon fetcher has run.
	Favicon string

	// FolderID references the containing folder, nil for root-level bookmarks.
	// When set it must point at a folder owned by the same user.
	FolderID *int64

	// ContentType is the coarse classification derived from the URL
	// (video, tweet, pdf, image, repo, article, docs or link).
	// Display-only, recomputed on demand; never an input to merging.
	ContentType string

	// ─────────────────────────────
	// Ordering & metadata
	// ─────────────────────────────

	// Position is an ordering hint. Not required to be dense or unique.
	Position int

	// Clicks counts opens reported by clients.
	Clicks int

	// CreatedAt is when the bookmark row was first written.
	CreatedAt time.Time

	// Tags holds the resolved tag links for this bookmark.
	Tags []TagLink
}

// TagLink is one bookmark↔tag edge. It is jointly owned: deleting either
// the bookmark or the tag removes the link.
type TagLink struct {
	BookmarkID int64
	TagID      int64

	// Name is the tag name, denormalized for export payloads.
	Name string

	// Color is the tag's own color.
	Color string

	// ColorOverride, when non-empty, replaces Color for this link only.
	ColorOverride string
}

// EffectiveColor returns the per-link override when present, the tag color
// otherwise.
func (l TagLink) EffectiveColor() string {
	if l.ColorOverride != "" {
		return l.ColorOverride
	}
	return l.Color
}
