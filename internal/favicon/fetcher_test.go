package favicon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gogogadgetscott/anchormarks/internal/logger"
)

type recordingStore struct {
	mu   sync.Mutex
	refs map[int64]string
}

func (r *recordingStore) SetFavicon(_ context.Context, id int64, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == nil {
		r.refs = make(map[int64]string)
	}
	r.refs[id] = ref
	return nil
}

func TestFetchStoresIconAndReference(t *testing.T) {
	iconBody := []byte("\x00\x00\x01\x00fake-ico")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/favicon.ico" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(iconBody)
	}))
	defer srv.Close()

	icons, err := OpenIconStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIconStore: %v", err)
	}
	defer icons.Close()

	store := &recordingStore{}
	f := NewFetcher(store, icons, nil, logger.Nop())

	if err := f.Fetch(context.Background(), 42, srv.URL+"/some/page"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	host := strings.TrimPrefix(srv.URL, "http://")
	ref := store.refs[42]
	if ref != "/api/favicons/"+host {
		t.Errorf("favicon ref = %q, want %q", ref, "/api/favicons/"+host)
	}

	data, err := icons.Get(host)
	if err != nil {
		t.Fatalf("Get icon: %v", err)
	}
	if string(data) != string(iconBody) {
		t.Errorf("stored icon does not match served body")
	}
}

func TestFetchFailsWithoutHost(t *testing.T) {
	f := NewFetcher(&recordingStore{}, nil, nil, logger.Nop())
	if err := f.Fetch(context.Background(), 1, "not-a-url"); err == nil {
		t.Fatal("expected error for URL without host")
	}
}

func TestFetchFailsOnMissingIcon(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	store := &recordingStore{}
	f := NewFetcher(store, nil, nil, logger.Nop())

	if err := f.Fetch(context.Background(), 7, srv.URL); err == nil {
		t.Fatal("expected error when favicon is missing")
	}
	if _, ok := store.refs[7]; ok {
		t.Error("favicon ref recorded despite fetch failure")
	}
}

func TestIconStoreRoundTrip(t *testing.T) {
	icons, err := OpenIconStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIconStore: %v", err)
	}
	defer icons.Close()

	if data, err := icons.Get("absent.example.com"); err != nil || data != nil {
		t.Fatalf("Get on absent host = (%v, %v), want (nil, nil)", data, err)
	}

	if err := icons.Put("example.com", []byte("icon")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, err := icons.Get("example.com")
	if err != nil || string(data) != "icon" {
		t.Fatalf("Get = (%q, %v), want (icon, nil)", data, err)
	}

	if err := icons.Delete("example.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if data, err := icons.Get("example.com"); err != nil || data != nil {
		t.Fatalf("Get after delete = (%v, %v), want (nil, nil)", data, err)
	}
}
