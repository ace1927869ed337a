package importer

import (
	"context"
	"fmt"

	"github.com/gogogadgetscott/anchormarks/internal/bundle"
	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

// FolderStore is the slice of the persistence collaborator that folder
// resolution consumes.
type FolderStore interface {
	FindFolder(ctx context.Context, userID int64, name string, parentID *int64) (int64, bool, error)
	CreateFolder(ctx context.Context, f *domain.Folder) error
	NextFolderPosition(ctx context.Context, userID int64, parentID *int64) (int, error)
}

// TagStore exposes the batch ensure-exists operation for tags.
type TagStore interface {
	EnsureTags(ctx context.Context, userID int64, names []string) (map[string]int64, []int64, error)
}

// Resolver merges incoming folder and tag references against a user's
// existing collection, returning stable identifiers instead of minting
// duplicates.
type Resolver struct {
	folders FolderStore
	tags    TagStore
}

func NewResolver(folders FolderStore, tags TagStore) *Resolver {
	return &Resolver{folders: folders, tags: tags}
}

// EnsureFolder resolves one folder by its merge key (name, parent) within
// the user's scope: an existing folder is reused, otherwise a new one is
// minted with the next position ordinal under that parent.
func (r *Resolver) EnsureFolder(ctx context.Context, userID int64, name string, parentID *int64, color, icon string) (int64, error) {
	id, found, err := r.folders.FindFolder(ctx, userID, name, parentID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up folder %q: %w", name, err)
	}
	if found {
		return id, nil
	}

	position, err := r.folders.NextFolderPosition(ctx, userID, parentID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute folder position: %w", err)
	}
	f := &domain.Folder{
		UserID:   userID,
		Name:     name,
		ParentID: parentID,
		Color:    color,
		Icon:     icon,
		Position: position,
	}
	if err := r.folders.CreateFolder(ctx, f); err != nil {
		return 0, fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	return f.ID, nil
}

// ResolveFolderRefs maps a bundle's payload-local folder references to
// real folder ids. The folder list may arrive in any order, so this is a
// topological pass: a folder is processed once its declared parent has
// been mapped. When a full pass over the remainder makes no progress the
// leftover entries form a cycle or reference parents that do not exist;
// they are dropped and their names reported, never imported.
func (r *Resolver) ResolveFolderRefs(ctx context.Context, userID int64, folders []bundle.Folder) (map[int64]int64, []string, error) {
	idMap := make(map[int64]int64, len(folders))
	pending := make([]bundle.Folder, 0, len(folders))
	var unresolved []string

	for _, f := range folders {
		if f.Name == "" {
			// Entry missing its required field: skip it, keep siblings.
			continue
		}
		pending = append(pending, f)
	}

	for len(pending) > 0 {
		var next []bundle.Folder
		progressed := false

		for _, f := range pending {
			var parentID *int64
			if f.ParentID != nil {
				real, ok := idMap[*f.ParentID]
				if !ok {
					// Parent not mapped yet: requeue for a later pass.
					next = append(next, f)
					continue
				}
				parentID = &real
			}

			id, err := r.EnsureFolder(ctx, userID, f.Name, parentID, f.Color, f.Icon)
			if err != nil {
				return nil, nil, err
			}
			idMap[f.ID] = id
			progressed = true
		}

		if !progressed {
			// Cyclic or forward-referencing input: report and drop.
			for _, f := range next {
				unresolved = append(unresolved, f.Name)
			}
			break
		}
		pending = next
	}

	return idMap, unresolved, nil
}

// ResolveTags issues one batch ensure-exists request for all names and
// translates per-name color overrides into per-id overrides. An override
// survives only when its named tag actually resolved; color syntax was
// already validated upstream.
func (r *Resolver) ResolveTags(ctx context.Context, userID int64, names []string) (map[string]int64, error) {
	if len(names) == 0 {
		return map[string]int64{}, nil
	}
	byName, _, err := r.tags.EnsureTags(ctx, userID, names)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure tags: %w", err)
	}
	return byName, nil
}

// OverridesByID keys override colors by resolved tag id, dropping entries
// whose tag never resolved.
func OverridesByID(byName map[string]int64, overrides map[string]string) map[int64]string {
	if len(overrides) == 0 {
		return nil
	}
	out := make(map[int64]string, len(overrides))
	for name, color := range overrides {
		if id, ok := byName[name]; ok {
			out[id] = color
		}
	}
	return out
}
