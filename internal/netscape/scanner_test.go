package netscape

import (
	"reflect"
	"testing"
)

func collect(src string) []Event {
	s := NewScanner(src)
	var events []Event
	for {
		ev := s.Next()
		if ev.Kind == EventEOF {
			return events
		}
		events = append(events, ev)
	}
}

func TestScannerEvents(t *testing.T) {
	src := `<DL><p>
	<DT><H3 ADD_DATE="100">Dev</H3>
	<DL><p>
		<DT><A HREF="https://go.dev" TAGS="go,lang">Go</A>
	</DL><p>
</DL><p>`

	events := collect(src)

	want := []EventKind{EventListOpen, EventFolder, EventListOpen, EventBookmark, EventListClose, EventListClose}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Errorf("event %d kind = %v, want %v", i, events[i].Kind, kind)
		}
	}

	if events[1].Name != "Dev" {
		t.Errorf("folder name = %q, want Dev", events[1].Name)
	}
	if events[3].URL != "https://go.dev" || events[3].Title != "Go" {
		t.Errorf("bookmark = %+v", events[3])
	}
	if !reflect.DeepEqual(events[3].Tags, []string{"go", "lang"}) {
		t.Errorf("tags = %v, want [go lang]", events[3].Tags)
	}
}

func TestScannerCaseTolerance(t *testing.T) {
	src := `<dl><dt><h3>Lower</h3><dl><dt><a href="https://example.com" tags="a">E</a></dl></dl>`

	events := collect(src)
	if len(events) != 6 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	if events[1].Kind != EventFolder || events[1].Name != "Lower" {
		t.Errorf("folder event = %+v", events[1])
	}
	if events[3].Kind != EventBookmark || events[3].URL != "https://example.com" {
		t.Errorf("bookmark event = %+v", events[3])
	}
}

func TestScannerEntityDecoding(t *testing.T) {
	src := `<DT><A HREF="https://example.com/?a=1&amp;b=2">Tom &amp; Jerry</A>`

	events := collect(src)
	if len(events) != 1 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	if events[0].URL != "https://example.com/?a=1&b=2" {
		t.Errorf("url = %q", events[0].URL)
	}
	if events[0].Title != "Tom & Jerry" {
		t.Errorf("title = %q", events[0].Title)
	}
}

func TestScannerUnterminatedElement(t *testing.T) {
	// Anchor never closes: treated as end of input, not an error.
	src := `<DL><p><DT><A HREF="https://example.com">dangling`

	events := collect(src)
	if len(events) != 1 || events[0].Kind != EventListOpen {
		t.Fatalf("got %+v, want single list-open", events)
	}
}

func TestScannerValuelessAttributes(t *testing.T) {
	src := `<DT><H3 PERSONAL_TOOLBAR_FOLDER>Bar</H3>`

	events := collect(src)
	if len(events) != 1 || events[0].Kind != EventFolder || events[0].Name != "Bar" {
		t.Fatalf("got %+v", events)
	}
}

func TestNormalize(t *testing.T) {
	got := normalize("<DL>\n\t  <DT><A HREF=\"x\">a b</A>")
	if got != `<DL><DT><A HREF="x">a b</A>` {
		t.Errorf("normalize() = %q", got)
	}
}

func TestSplitTagList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a,b", []string{"a", "b"}},
		{" a , b ,", []string{"a", "b"}},
		{"a,b,b", []string{"a", "b", "b"}}, // duplicates collapse later, at tag resolution
	}
	for _, tt := range tests {
		if got := splitTagList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTagList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
