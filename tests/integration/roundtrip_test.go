package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/gogogadgetscott/anchormarks/internal/bundle"
	"github.com/gogogadgetscott/anchormarks/internal/importer"
	"github.com/gogogadgetscott/anchormarks/internal/logger"
	"github.com/gogogadgetscott/anchormarks/internal/netscape"
	"github.com/gogogadgetscott/anchormarks/internal/store/sqlite"
)

type noopFetcher struct{}

func (noopFetcher) FetchAsync(int64, string) {}

func newHarness(t *testing.T) (*sqlite.Store, *importer.Importer) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "integration.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, importer.New(store, noopFetcher{}, logger.Nop())
}

const markup = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
<DT><H3>Dev</H3>
<DL><p>
<DT><H3>Go</H3>
<DL><p>
<DT><A HREF="https://go.dev/doc" TAGS="go,docs">Go Docs</A>
</DL><p>
<DT><A HREF="https://github.com/golang/go">Go Source</A>
</DL><p>
<DT><A HREF="https://news.ycombinator.com">HN</A>
</DL><p>`

// A full cycle through the collection and back out again must preserve
// bookmark counts, folder containment and tags.
func TestMarkupToBundleRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, imp := newHarness(t)

	result, err := imp.ImportNetscape(ctx, 1, markup)
	if err != nil {
		t.Fatalf("import markup: %v", err)
	}
	if result.Count != 3 {
		t.Fatalf("imported %d bookmarks, want 3", result.Count)
	}

	bookmarks, err := store.ListBookmarks(ctx, 1)
	if err != nil {
		t.Fatalf("list bookmarks: %v", err)
	}
	folders, err := store.ListFolders(ctx, 1)
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("got %d folders, want 2 (Dev, Go)", len(folders))
	}

	// Encode the bundle and re-import it into a fresh collection.
	var buf bytes.Buffer
	if err := bundle.Encode(&buf, bundle.Export(bookmarks, folders)); err != nil {
		t.Fatalf("encode bundle: %v", err)
	}

	store2, imp2 := newHarness(t)
	payload, err := bundle.Decode(&buf)
	if err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	result2, err := imp2.ImportBundle(ctx, 1, payload)
	if err != nil {
		t.Fatalf("import bundle: %v", err)
	}
	if result2.Count != 3 {
		t.Fatalf("second import count = %d, want 3", result2.Count)
	}
	if len(result2.UnresolvedFolders) != 0 {
		t.Fatalf("unresolved folders: %v", result2.UnresolvedFolders)
	}

	bookmarks2, err := store2.ListBookmarks(ctx, 1)
	if err != nil {
		t.Fatalf("list second collection: %v", err)
	}
	folders2, err := store2.ListFolders(ctx, 1)
	if err != nil {
		t.Fatalf("list second folders: %v", err)
	}
	if len(folders2) != 2 {
		t.Errorf("second collection has %d folders, want 2", len(folders2))
	}

	// Folder nesting carried over: Go's parent is Dev.
	byName := map[string]*int64{}
	idName := map[int64]string{}
	for _, f := range folders2 {
		byName[f.Name] = f.ParentID
		idName[f.ID] = f.Name
	}
	goParent := byName["Go"]
	if goParent == nil || idName[*goParent] != "Dev" {
		t.Error("Go folder lost its Dev parent across the round trip")
	}

	// Tags carried over on the nested bookmark.
	var found bool
	for _, b := range bookmarks2 {
		if b.URL == "https://go.dev/doc" {
			found = true
			if len(b.Tags) != 2 {
				t.Errorf("tags = %d, want 2", len(b.Tags))
			}
			if b.FolderID == nil || idName[*b.FolderID] != "Go" {
				t.Error("bookmark not inside the Go folder")
			}
		}
	}
	if !found {
		t.Error("nested bookmark missing after round trip")
	}
}

// Re-importing the same markup must merge folders by (name, parent)
// while bookmark rows double, because markup imports never dedupe.
func TestRepeatedImportMergesFoldersOnly(t *testing.T) {
	ctx := context.Background()
	store, imp := newHarness(t)

	for i := 0; i < 2; i++ {
		if _, err := imp.ImportNetscape(ctx, 1, markup); err != nil {
			t.Fatalf("import %d: %v", i+1, err)
		}
	}

	folders, err := store.ListFolders(ctx, 1)
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	if len(folders) != 2 {
		t.Errorf("got %d folders after re-import, want 2", len(folders))
	}

	bookmarks, err := store.ListBookmarks(ctx, 1)
	if err != nil {
		t.Fatalf("list bookmarks: %v", err)
	}
	if len(bookmarks) != 6 {
		t.Errorf("got %d bookmarks after re-import, want 6", len(bookmarks))
	}
}

// Emitting the collection as markup and parsing it back keeps every URL.
func TestEmitParseRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, imp := newHarness(t)

	if _, err := imp.ImportNetscape(ctx, 1, markup); err != nil {
		t.Fatalf("import: %v", err)
	}
	bookmarks, err := store.ListBookmarks(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	emitted := netscape.Emit(bookmarks)
	root := netscape.Parse(string(emitted))

	urls := map[string]bool{}
	root.Walk(func(_ []string, link *netscape.Link) {
		urls[link.URL] = true
	})
	for _, b := range bookmarks {
		if !urls[b.URL] {
			t.Errorf("URL %s lost in emit/parse cycle", b.URL)
		}
	}
}

// Sync twice with the same bundle: second pass updates in place, no
// duplicate rows.
func TestSyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, imp := newHarness(t)

	payload := &bundle.Bundle{
		Bookmarks: []bundle.Bookmark{
			{URL: "https://example.com/one", Title: "One", Tags: "a"},
			{URL: "https://example.com/two", Title: "Two"},
		},
	}

	first, err := imp.SyncBundle(ctx, 1, payload)
	if err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if first.Count != 2 || first.Updated != 0 {
		t.Fatalf("first sync count=%d updated=%d, want 2 and 0", first.Count, first.Updated)
	}

	second, err := imp.SyncBundle(ctx, 1, payload)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if second.Count != 0 || second.Updated != 2 {
		t.Fatalf("second sync count=%d updated=%d, want 0 and 2", second.Count, second.Updated)
	}

	bookmarks, err := store.ListBookmarks(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Errorf("got %d bookmarks after double sync, want 2", len(bookmarks))
	}
}
