package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// bodyErrorStatus maps a request body read failure to a status code.
// Oversized bodies rejected by http.MaxBytesReader get a 413.
func bodyErrorStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// bookmarkView is the wire shape of one bookmark in API responses.
type bookmarkView struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Favicon     string    `json:"favicon,omitempty"`
	FolderID    *int64    `json:"folder_id,omitempty"`
	ContentType string    `json:"content_type"`
	Position    int       `json:"position"`
	Clicks      int       `json:"clicks"`
	CreatedAt   string    `json:"created_at,omitempty"`
	Tags        []tagView `json:"tags,omitempty"`
}

type tagView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func viewBookmarks(bookmarks []domain.Bookmark) []bookmarkView {
	views := make([]bookmarkView, 0, len(bookmarks))
	for _, b := range bookmarks {
		v := bookmarkView{
			ID:          b.ID,
			URL:         b.URL,
			Title:       b.Title,
			Description: b.Description,
			Favicon:     b.Favicon,
			FolderID:    b.FolderID,
			ContentType: b.ContentType,
			Position:    b.Position,
			Clicks:      b.Clicks,
		}
		if !b.CreatedAt.IsZero() {
			v.CreatedAt = b.CreatedAt.UTC().Format(time.RFC3339)
		}
		for _, link := range b.Tags {
			v.Tags = append(v.Tags, tagView{
				ID:    link.TagID,
				Name:  link.Name,
				Color: link.EffectiveColor(),
			})
		}
		views = append(views, v)
	}
	return views
}
