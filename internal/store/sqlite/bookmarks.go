package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

const bookmarkColumns = `id, user_id, url, title, description, favicon, folder_id, position, clicks, created_at`

// CreateBookmark inserts a bookmark row and assigns its id.
func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (user_id, url, title, description, favicon, folder_id, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.URL, b.Title, b.Description, b.Favicon, b.FolderID, b.Position, b.CreatedAt,
	)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	return err
}

// UpdateBookmark rewrites the mutable columns of an existing row.
func (s *Store) UpdateBookmark(ctx context.Context, b *domain.Bookmark) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE bookmarks SET title = ?, description = ?, favicon = ?, folder_id = ?, position = ?
		WHERE id = ? AND user_id = ?`,
		b.Title, b.Description, b.Favicon, b.FolderID, b.Position, b.ID, b.UserID,
	)
	return err
}

// GetBookmarkByURL returns a user's bookmark for the exact URL, or nil
// when none exists. Used by the sync import path's URL dedupe; the other
// import paths deliberately never call it.
func (s *Store) GetBookmarkByURL(ctx context.Context, userID int64, url string) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? AND url = ? LIMIT 1`,
		userID, url,
	)
	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookmark returns one bookmark by id, or nil when absent.
func (s *Store) GetBookmark(ctx context.Context, userID, id int64) (*domain.Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachTagLinks(ctx, []*domain.Bookmark{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookmarks returns all of a user's bookmarks ordered by position,
// with tag links attached.
func (s *Store) ListBookmarks(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? ORDER BY position, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Bookmark, len(bookmarks))
	for i := range bookmarks {
		refs[i] = &bookmarks[i]
	}
	if err := s.attachTagLinks(ctx, refs); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// NextBookmarkPosition returns the next position ordinal inside a folder.
func (s *Store) NextBookmarkPosition(ctx context.Context, userID int64, folderID *int64) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM bookmarks WHERE user_id = ? AND folder_id IS ?`,
		userID, folderID,
	).Scan(&next)
	return next, err
}

// IncrementClicks bumps the click counter for one bookmark.
func (s *Store) IncrementClicks(ctx context.Context, userID, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE bookmarks SET clicks = clicks + 1 WHERE id = ? AND user_id = ?`, id, userID,
	)
	return err
}

// SetFavicon records the stored icon reference for a bookmark.
func (s *Store) SetFavicon(ctx context.Context, id int64, ref string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE bookmarks SET favicon = ? WHERE id = ?`, ref, id,
	)
	return err
}

// ListBookmarksMissingFavicon returns bookmarks across all users that have
// no stored icon yet. Consumed by the favicon refresh scheduler.
func (s *Store) ListBookmarksMissingFavicon(ctx context.Context, limit int) ([]domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE favicon = '' ORDER BY id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, *b)
	}
	return bookmarks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBookmark(row rowScanner) (*domain.Bookmark, error) {
	var b domain.Bookmark
	var folder sql.NullInt64
	err := row.Scan(
		&b.ID, &b.UserID, &b.URL, &b.Title, &b.Description, &b.Favicon,
		&folder, &b.Position, &b.Clicks, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if folder.Valid {
		b.FolderID = &folder.Int64
	}
	b.ContentType = domain.Classify(b.URL)
	return &b, nil
}

// attachTagLinks loads tag links for the given bookmarks in one query.
func (s *Store) attachTagLinks(ctx context.Context, bookmarks []*domain.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	query := `
		SELECT bt.bookmark_id, bt.tag_id, t.name, t.color, bt.color_override
		FROM bookmark_tags bt
		JOIN tags t ON t.id = bt.tag_id
		WHERE bt.bookmark_id IN (`
	args := make([]interface{}, 0, len(bookmarks))
	for i, b := range bookmarks {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, b.ID)
	}
	query += `) ORDER BY t.position, t.id`
	query = strings.TrimSpace(query)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		byID[b.ID] = b
	}

	for rows.Next() {
		var link domain.TagLink
		if err := rows.Scan(&link.BookmarkID, &link.TagID, &link.Name, &link.Color, &link.ColorOverride); err != nil {
			return err
		}
		if b, ok := byID[link.BookmarkID]; ok {
			b.Tags = append(b.Tags, link)
		}
	}
	return rows.Err()
}
