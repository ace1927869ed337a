// Package importer implements the import half of the bookmark interchange
// engine: identity resolution against a user's existing collection plus
// graph persistence.
//
// The three entry points deliberately differ on URL deduplication:
// markup import and plain bundle import insert a new row for every
// incoming entry, while bundle sync merges by URL. The asymmetry is
// inherited behavior that clients depend on; do not unify it silently.
package importer

import (
	"context"

	"github.com/gogogadgetscott/anchormarks/internal/bundle"
	"github.com/gogogadgetscott/anchormarks/internal/domain"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
	"github.com/gogogadgetscott/anchormarks/internal/netscape"
)

// Store is the full persistence surface the importer consumes.
type Store interface {
	FolderStore
	TagStore
	BookmarkStore
}

// Result is the success envelope of an import call. Callers that need to
// detect partial acceptance compare Count and Skipped against their own
// expectations; no per-entry failure report exists.
type Result struct {
	// Count is the number of bookmarks inserted.
	Count int
	// Updated is the number of existing bookmarks merged in place.
	// Only the sync path produces a non-zero value.
	Updated int
	// Skipped counts entries dropped for missing required fields.
	Skipped int
	// UnresolvedFolders names folders dropped because their declared
	// parents formed a cycle or referenced nothing in the payload.
	UnresolvedFolders []string
	// Bookmarks holds the materialized records with server-assigned ids.
	Bookmarks []domain.Bookmark
}

type Importer struct {
	resolver  *Resolver
	persister *Persister
	log       logger.Logger
}

func New(store Store, favicons FaviconFetcher, log logger.Logger) *Importer {
	return &Importer{
		resolver:  NewResolver(store, store),
		persister: NewPersister(store, favicons),
		log:       log,
	}
}

// ImportNetscape parses a Netscape bookmark file and imports its tree.
// Parsing is best-effort: truncated input imports everything before the
// truncation point. This path never dedupes by URL; re-importing the same
// file doubles the bookmark rows (folders still merge).
func (im *Importer) ImportNetscape(ctx context.Context, userID int64, markup string) (*Result, error) {
	return im.ImportTree(ctx, userID, netscape.Parse(markup))
}

// ImportTree imports a parsed folder/bookmark tree: folders resolve
// against the user's existing collection by (name, parent), tags are
// ensured in one batch, and every link becomes a new bookmark row
// attached to its innermost enclosing folder.
func (im *Importer) ImportTree(ctx context.Context, userID int64, root *netscape.Folder) (*Result, error) {
	// One batch ensure-exists request for every tag name in the document.
	var names []string
	root.Walk(func(_ []string, link *netscape.Link) {
		names = append(names, link.Tags...)
	})
	tagsByName, err := im.resolver.ResolveTags(ctx, userID, names)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if err := im.importChildren(ctx, userID, root, nil, tagsByName, result); err != nil {
		return nil, err
	}

	im.log.Info("tree import complete",
		logger.Int64("user_id", userID),
		logger.Int("count", result.Count))
	return result, nil
}

// importChildren walks one folder's children in document order. Document
// order drives position ordinals via the store's next-position counters.
func (im *Importer) importChildren(ctx context.Context, userID int64, folder *netscape.Folder, folderID *int64, tagsByName map[string]int64, result *Result) error {
	for _, child := range folder.Children {
		switch n := child.(type) {
		case *netscape.Folder:
			id, err := im.resolver.EnsureFolder(ctx, userID, n.Name, folderID, "", "")
			if err != nil {
				return err
			}
			if err := im.importChildren(ctx, userID, n, &id, tagsByName, result); err != nil {
				return err
			}
		case *netscape.Link:
			b, err := im.persister.Insert(ctx, userID, resolved{
				url:      n.URL,
				title:    n.Title,
				folderID: folderID,
				tagIDs:   mapTagIDs(n.Tags, tagsByName),
			})
			if err != nil {
				return err
			}
			result.Count++
			result.Bookmarks = append(result.Bookmarks, *b)
		}
	}
	return nil
}

// ImportBundle imports a structured bundle without URL deduplication:
// like markup import, every valid entry becomes a new row.
func (im *Importer) ImportBundle(ctx context.Context, userID int64, b *bundle.Bundle) (*Result, error) {
	return im.importBundle(ctx, userID, b, false)
}

// SyncBundle imports a structured bundle with URL deduplication: an entry
// whose URL already exists for the user updates that bookmark's title,
// folder and tags in place instead of inserting a duplicate. This is the
// one idempotent-per-URL import path in the engine.
func (im *Importer) SyncBundle(ctx context.Context, userID int64, b *bundle.Bundle) (*Result, error) {
	return im.importBundle(ctx, userID, b, true)
}

func (im *Importer) importBundle(ctx context.Context, userID int64, payload *bundle.Bundle, dedupe bool) (*Result, error) {
	folderIDs, unresolved, err := im.resolver.ResolveFolderRefs(ctx, userID, payload.Folders)
	if err != nil {
		return nil, err
	}
	if len(unresolved) > 0 {
		im.log.Warn("dropped folders with unresolvable parents",
			logger.Int64("user_id", userID),
			logger.Int("count", len(unresolved)))
	}

	var names []string
	for _, entry := range payload.Bookmarks {
		names = append(names, entry.TagNames()...)
	}
	tagsByName, err := im.resolver.ResolveTags(ctx, userID, names)
	if err != nil {
		return nil, err
	}

	result := &Result{UnresolvedFolders: unresolved}
	for _, entry := range payload.Bookmarks {
		if entry.URL == "" {
			// Entry missing its required field: drop it, keep siblings.
			result.Skipped++
			continue
		}

		var folderID *int64
		if entry.FolderID != nil {
			if real, ok := folderIDs[*entry.FolderID]; ok {
				folderID = &real
			}
		}

		rec := resolved{
			url:         entry.URL,
			title:       entry.Title,
			description: entry.Description,
			folderID:    folderID,
			created:     entry.CreatedAt,
			tagIDs:      mapTagIDs(entry.TagNames(), tagsByName),
			overrides:   OverridesByID(tagsByName, entry.Overrides()),
		}

		if dedupe {
			existing, err := im.persister.store.GetBookmarkByURL(ctx, userID, entry.URL)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				merged, err := im.persister.Update(ctx, existing, rec)
				if err != nil {
					return nil, err
				}
				result.Updated++
				result.Bookmarks = append(result.Bookmarks, *merged)
				continue
			}
		}

		b, err := im.persister.Insert(ctx, userID, rec)
		if err != nil {
			return nil, err
		}
		result.Count++
		result.Bookmarks = append(result.Bookmarks, *b)
	}

	im.log.Info("bundle import complete",
		logger.Int64("user_id", userID),
		logger.Int("count", result.Count),
		logger.Int("updated", result.Updated),
		logger.Int("skipped", result.Skipped))
	return result, nil
}

// mapTagIDs translates tag names to resolved ids, collapsing duplicates
// while preserving first-seen order.
func mapTagIDs(names []string, byName map[string]int64) []int64 {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(names))
	var ids []int64
	for _, name := range names {
		id, ok := byName[name]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
