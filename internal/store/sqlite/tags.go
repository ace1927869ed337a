package sqlite

import (
	"context"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

// EnsureTags is the batch get-or-create operation: every name ends up with
// a tag row and the result maps names to ids. Duplicate names collapse;
// the flat id list preserves first-seen order. Existing tags are reused,
// never failed on.
func (s *Store) EnsureTags(ctx context.Context, userID int64, names []string) (map[string]int64, []int64, error) {
	byName := make(map[string]int64, len(names))
	var ids []int64

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, seen := byName[name]; seen {
			continue
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO tags (user_id, name, position)
			VALUES (?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM tags WHERE user_id = ?))
			ON CONFLICT(user_id, name) DO NOTHING`,
			userID, name, userID,
		)
		if err != nil {
			return nil, nil, err
		}

		var id int64
		if err := s.db.QueryRowContext(ctx,
			`SELECT id FROM tags WHERE user_id = ? AND name = ?`, userID, name,
		).Scan(&id); err != nil {
			return nil, nil, err
		}

		byName[name] = id
		ids = append(ids, id)
	}

	return byName, ids, nil
}

// SetBookmarkTags replaces a bookmark's tag links. Color overrides attach
// per link, keyed by tag id; tags without an entry keep their own color.
func (s *Store) SetBookmarkTags(ctx context.Context, bookmarkID int64, tagIDs []int64, overrides map[int64]string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmark_tags WHERE bookmark_id = ?`, bookmarkID,
	); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO bookmark_tags (bookmark_id, tag_id, color_override)
			VALUES (?, ?, ?)
			ON CONFLICT(bookmark_id, tag_id) DO UPDATE SET color_override = excluded.color_override`,
			bookmarkID, tagID, overrides[tagID],
		); err != nil {
			return err
		}
	}
	return nil
}

// ListTags returns a user's tags ordered by position.
func (s *Store) ListTags(ctx context.Context, userID int64) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, color, position FROM tags WHERE user_id = ? ORDER BY position, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.Position); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// DeleteUnusedTags removes tags with no remaining bookmark links.
// Returns the number of rows swept.
func (s *Store) DeleteUnusedTags(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tags WHERE id NOT IN (SELECT DISTINCT tag_id FROM bookmark_tags)`,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
