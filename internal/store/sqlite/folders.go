package sqlite

import (
	"context"
	"database/sql"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

// FindFolder looks up a folder by its merge key (name, parent) within one
// user's collection. Returns 0, false when no such folder exists.
func (s *Store) FindFolder(ctx context.Context, userID int64, name string, parentID *int64) (int64, bool, error) {
	var id int64
	// `IS ?` so a nil parent matches root-level folders.
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM folders WHERE user_id = ? AND name = ? AND parent_id IS ?`,
		userID, name, parentID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// CreateFolder inserts a folder and assigns its id.
func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (user_id, name, parent_id, color, icon, position) VALUES (?, ?, ?, ?, ?, ?)`,
		f.UserID, f.Name, f.ParentID, f.Color, f.Icon, f.Position,
	)
	if err != nil {
		return err
	}
	f.ID, err = res.LastInsertId()
	return err
}

// NextFolderPosition returns the next position ordinal under a parent.
func (s *Store) NextFolderPosition(ctx context.Context, userID int64, parentID *int64) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM folders WHERE user_id = ? AND parent_id IS ?`,
		userID, parentID,
	).Scan(&next)
	return next, err
}

// ListFolders returns all of a user's folders ordered by position.
func (s *Store) ListFolders(ctx context.Context, userID int64) ([]domain.Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, parent_id, color, icon, position FROM folders WHERE user_id = ? ORDER BY position, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []domain.Folder
	for rows.Next() {
		var f domain.Folder
		var parent sql.NullInt64
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &parent, &f.Color, &f.Icon, &f.Position); err != nil {
			return nil, err
		}
		if parent.Valid {
			f.ParentID = &parent.Int64
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}
