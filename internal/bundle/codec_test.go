package bundle

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

func TestTagNames(t *testing.T) {
	tests := []struct {
		name     string
		bookmark Bookmark
		want     []string
	}{
		{
			name:     "flat string only",
			bookmark: Bookmark{Tags: "a, b ,c"},
			want:     []string{"a", "b", "c"},
		},
		{
			name: "details win over flat string",
			bookmark: Bookmark{
				Tags:       "stale,names",
				TagDetails: []TagDetail{{Name: "x"}, {Name: "y"}},
			},
			want: []string{"x", "y"},
		},
		{
			name:     "empty",
			bookmark: Bookmark{},
			want:     nil,
		},
		{
			name:     "blank segments dropped",
			bookmark: Bookmark{Tags: ",, a ,"},
			want:     []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bookmark.TagNames(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TagNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverridesDropInvalidColors(t *testing.T) {
	b := Bookmark{TagDetails: []TagDetail{
		{Name: "ok", ColorOverride: "#ff0000"},
		{Name: "bad", ColorOverride: "red"},
		{Name: "none"},
	}}

	got := b.Overrides()
	if len(got) != 1 || got["ok"] != "#ff0000" {
		t.Errorf("Overrides() = %v", got)
	}
}

func TestExportCarriesFolderEdgesAndBothTagForms(t *testing.T) {
	parent := int64(1)
	bundle := Export(
		[]domain.Bookmark{
			{
				URL:      "https://go.dev",
				Title:    "Go",
				FolderID: &parent,
				Tags: []domain.TagLink{
					{TagID: 7, Name: "go", Color: "#00add8"},
					{TagID: 8, Name: "lang", ColorOverride: "#112233"},
				},
			},
		},
		[]domain.Folder{
			{ID: 1, Name: "Dev"},
			{ID: 2, Name: "Tools", ParentID: &parent},
		},
	)

	if len(bundle.Folders) != 2 || bundle.Folders[1].ParentID == nil || *bundle.Folders[1].ParentID != 1 {
		t.Errorf("folders = %+v", bundle.Folders)
	}
	b := bundle.Bookmarks[0]
	if b.Tags != "go,lang" {
		t.Errorf("flattened tags = %q", b.Tags)
	}
	if len(b.TagDetails) != 2 || b.TagDetails[1].ColorOverride != "#112233" {
		t.Errorf("tag details = %+v", b.TagDetails)
	}
	if b.FolderID == nil || *b.FolderID != 1 {
		t.Errorf("folder id = %v", b.FolderID)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Export(
		[]domain.Bookmark{{URL: "https://example.com", Title: "E"}},
		[]domain.Folder{{ID: 1, Name: "F"}},
	)

	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Bookmarks) != 1 || out.Bookmarks[0].URL != "https://example.com" {
		t.Errorf("bookmarks = %+v", out.Bookmarks)
	}
	if len(out.Folders) != 1 || out.Folders[0].Name != "F" {
		t.Errorf("folders = %+v", out.Folders)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"bookmarks": [`)); err == nil {
		t.Error("Decode accepted truncated JSON")
	}
}
