// Package bundle implements the structured interchange payload: parallel
// bookmark and folder arrays carrying a user's full collection.
//
// On export the id fields hold server-assigned identifiers. On import the
// same fields are treated as caller-local ordinals whose only job is to
// express parent/child and bookmark/folder edges inside the payload; the
// identity resolver remaps them against the destination account.
package bundle

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

// Bundle is the `{bookmarks, folders}` interchange object.
type Bundle struct {
	Bookmarks []Bookmark `json:"bookmarks"`
	Folders   []Folder   `json:"folders"`
}

// Folder is one folder entry. ID and ParentID are payload-local references
// on import.
type Folder struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
	Color    string `json:"color,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Position int    `json:"position"`
}

// Bookmark is one bookmark entry. Tags is the flattened comma-joined tag
// string; TagDetails is the structured per-relation form. Export writes
// both, import prefers TagDetails when present.
type Bookmark struct {
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	FolderID    *int64      `json:"folderId"`
	CreatedAt   time.Time   `json:"createdAt,omitempty"`
	Position    int         `json:"position"`
	Tags        string      `json:"tags,omitempty"`
	TagDetails  []TagDetail `json:"tagDetails,omitempty"`
}

// TagDetail is one bookmark↔tag relation in the payload.
type TagDetail struct {
	Name          string `json:"name"`
	TagID         int64  `json:"tagId,omitempty"`
	Color         string `json:"color,omitempty"`
	ColorOverride string `json:"colorOverride,omitempty"`
}

// TagNames returns the tag names attached to the entry. The structured
// array wins over the flattened string when both are present.
func (b Bookmark) TagNames() []string {
	if len(b.TagDetails) > 0 {
		names := make([]string, 0, len(b.TagDetails))
		for _, d := range b.TagDetails {
			if d.Name != "" {
				names = append(names, d.Name)
			}
		}
		return names
	}
	if b.Tags == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(b.Tags, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// Overrides returns the syntactically valid per-tag color overrides keyed
// by tag name. Invalid colors are dropped here; whether the named tag
// resolved at all is checked later by the resolver.
func (b Bookmark) Overrides() map[string]string {
	var overrides map[string]string
	for _, d := range b.TagDetails {
		if d.Name == "" || d.ColorOverride == "" {
			continue
		}
		if !domain.ValidHexColor(d.ColorOverride) {
			continue
		}
		if overrides == nil {
			overrides = make(map[string]string)
		}
		overrides[d.Name] = d.ColorOverride
	}
	return overrides
}

// Export builds the bundle for a collection. Bookmark and folder ids are
// the live server-assigned ones so that parent/child and folder edges
// survive the round trip.
func Export(bookmarks []domain.Bookmark, folders []domain.Folder) Bundle {
	out := Bundle{
		Bookmarks: make([]Bookmark, 0, len(bookmarks)),
		Folders:   make([]Folder, 0, len(folders)),
	}

	for _, f := range folders {
		out.Folders = append(out.Folders, Folder{
			ID:       f.ID,
			Name:     f.Name,
			ParentID: f.ParentID,
			Color:    f.Color,
			Icon:     f.Icon,
			Position: f.Position,
		})
	}

	for _, b := range bookmarks {
		entry := Bookmark{
			URL:         b.URL,
			Title:       b.Title,
			Description: b.Description,
			FolderID:    b.FolderID,
			CreatedAt:   b.CreatedAt,
			Position:    b.Position,
		}
		names := make([]string, 0, len(b.Tags))
		for _, link := range b.Tags {
			names = append(names, link.Name)
			entry.TagDetails = append(entry.TagDetails, TagDetail{
				Name:          link.Name,
				TagID:         link.TagID,
				Color:         link.Color,
				ColorOverride: link.ColorOverride,
			})
		}
		entry.Tags = strings.Join(names, ",")
		out.Bookmarks = append(out.Bookmarks, entry)
	}

	return out
}

// Decode reads a bundle payload. Malformed JSON is the only hard error;
// per-entry validation happens during import so one bad entry cannot sink
// its siblings.
func Decode(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return &b, nil
}

// Encode writes the bundle as JSON.
func Encode(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return nil
}
