package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "anchormarks.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureTagsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	byName, ids, err := s.EnsureTags(ctx, 1, []string{"go", "db", "go"})
	if err != nil {
		t.Fatalf("EnsureTags: %v", err)
	}
	if len(byName) != 2 || len(ids) != 2 {
		t.Fatalf("got %v / %v, want two distinct tags", byName, ids)
	}

	again, _, err := s.EnsureTags(ctx, 1, []string{"go", "new"})
	if err != nil {
		t.Fatalf("EnsureTags second call: %v", err)
	}
	if again["go"] != byName["go"] {
		t.Errorf("existing tag re-minted: %d != %d", again["go"], byName["go"])
	}

	tags, err := s.ListTags(ctx, 1)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 3 {
		t.Errorf("got %d tags, want 3", len(tags))
	}
}

func TestEnsureTagsScopedPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _, err := s.EnsureTags(ctx, 1, []string{"shared"})
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := s.EnsureTags(ctx, 2, []string{"shared"})
	if err != nil {
		t.Fatal(err)
	}
	if a["shared"] == b["shared"] {
		t.Error("tag ids collide across users")
	}
}

func TestFolderMergeKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	root := &domain.Folder{UserID: 1, Name: "Dev"}
	if err := s.CreateFolder(ctx, root); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	id, found, err := s.FindFolder(ctx, 1, "Dev", nil)
	if err != nil || !found || id != root.ID {
		t.Fatalf("FindFolder(root) = %d, %v, %v", id, found, err)
	}

	// Same name under a different parent is a different folder.
	if _, found, _ := s.FindFolder(ctx, 1, "Dev", &root.ID); found {
		t.Error("FindFolder matched across parents")
	}
	// Same name for a different user is a different folder.
	if _, found, _ := s.FindFolder(ctx, 2, "Dev", nil); found {
		t.Error("FindFolder matched across users")
	}
}

func TestNextFolderPosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	next, err := s.NextFolderPosition(ctx, 1, nil)
	if err != nil || next != 0 {
		t.Fatalf("empty parent: got %d, %v", next, err)
	}

	if err := s.CreateFolder(ctx, &domain.Folder{UserID: 1, Name: "A", Position: 4}); err != nil {
		t.Fatal(err)
	}
	next, err = s.NextFolderPosition(ctx, 1, nil)
	if err != nil || next != 5 {
		t.Fatalf("after insert: got %d, %v", next, err)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	folder := &domain.Folder{UserID: 1, Name: "Dev"}
	if err := s.CreateFolder(ctx, folder); err != nil {
		t.Fatal(err)
	}

	b := &domain.Bookmark{UserID: 1, URL: "https://go.dev", Title: "Go", FolderID: &folder.ID}
	if err := s.CreateBookmark(ctx, b); err != nil {
		t.Fatalf("CreateBookmark: %v", err)
	}
	if b.ID == 0 {
		t.Fatal("id not assigned")
	}

	_, ids, err := s.EnsureTags(ctx, 1, []string{"go"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetBookmarkTags(ctx, b.ID, ids, map[int64]string{ids[0]: "#112233"}); err != nil {
		t.Fatalf("SetBookmarkTags: %v", err)
	}

	got, err := s.GetBookmarkByURL(ctx, 1, "https://go.dev")
	if err != nil || got == nil {
		t.Fatalf("GetBookmarkByURL: %v, %v", got, err)
	}
	if got.FolderID == nil || *got.FolderID != folder.ID {
		t.Errorf("folder id = %v", got.FolderID)
	}

	list, err := s.ListBookmarks(ctx, 1)
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(list) != 1 || len(list[0].Tags) != 1 {
		t.Fatalf("list = %+v", list)
	}
	if list[0].Tags[0].ColorOverride != "#112233" {
		t.Errorf("override = %q", list[0].Tags[0].ColorOverride)
	}
	if list[0].ContentType != domain.TypeLink {
		t.Errorf("content type = %q", list[0].ContentType)
	}

	// Unknown URL is a nil result, not an error.
	missing, err := s.GetBookmarkByURL(ctx, 1, "https://nope.example.com")
	if err != nil || missing != nil {
		t.Errorf("miss = %v, %v", missing, err)
	}
}

func TestIncrementClicks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := &domain.Bookmark{UserID: 1, URL: "https://example.com"}
	if err := s.CreateBookmark(ctx, b); err != nil {
		t.Fatal(err)
	}
	if err := s.IncrementClicks(ctx, 1, b.ID); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetBookmark(ctx, 1, b.ID)
	if err != nil || got == nil {
		t.Fatalf("GetBookmark: %v, %v", got, err)
	}
	if got.Clicks != 1 {
		t.Errorf("clicks = %d, want 1", got.Clicks)
	}
}

func TestDeleteUnusedTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := &domain.Bookmark{UserID: 1, URL: "https://example.com"}
	if err := s.CreateBookmark(ctx, b); err != nil {
		t.Fatal(err)
	}
	_, ids, err := s.EnsureTags(ctx, 1, []string{"used", "orphan"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetBookmarkTags(ctx, b.ID, ids[:1], nil); err != nil {
		t.Fatal(err)
	}

	swept, err := s.DeleteUnusedTags(ctx)
	if err != nil {
		t.Fatalf("DeleteUnusedTags: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}
	tags, _ := s.ListTags(ctx, 1)
	if len(tags) != 1 || tags[0].Name != "used" {
		t.Errorf("tags = %+v", tags)
	}
}

func TestListBookmarksMissingFavicon(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	withIcon := &domain.Bookmark{UserID: 1, URL: "https://a.example.com", Favicon: "a.example.com"}
	without := &domain.Bookmark{UserID: 1, URL: "https://b.example.com"}
	for _, b := range []*domain.Bookmark{withIcon, without} {
		if err := s.CreateBookmark(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	missing, err := s.ListBookmarksMissingFavicon(ctx, 10)
	if err != nil {
		t.Fatalf("ListBookmarksMissingFavicon: %v", err)
	}
	if len(missing) != 1 || missing[0].URL != "https://b.example.com" {
		t.Errorf("missing = %+v", missing)
	}
}
