package netscape

import (
	"strings"
	"testing"
	"time"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

func TestEmitPreambleAndEntries(t *testing.T) {
	created := time.Unix(1700000000, 0)
	out := string(Emit([]domain.Bookmark{
		{
			URL:       "https://go.dev",
			Title:     "The Go Programming Language",
			CreatedAt: created,
			Tags: []domain.TagLink{
				{Name: "go"},
				{Name: "lang"},
			},
		},
		{URL: "https://example.com"},
	}))

	if !strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Errorf("missing doctype: %q", out[:40])
	}
	for _, want := range []string{
		`<H1>Bookmarks</H1>`,
		`<A HREF="https://go.dev" ADD_DATE="1700000000" TAGS="go,lang">The Go Programming Language</A>`,
		// No title: the URL doubles as visible text.
		`<A HREF="https://example.com">https://example.com</A>`,
		"</DL><p>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestEmitEscapesText(t *testing.T) {
	out := string(Emit([]domain.Bookmark{
		{
			URL:   `https://example.com/?q="a"&b=<c>`,
			Title: `Tom & "Jerry" <admin>`,
		},
	}))

	if strings.Contains(out, `<c>`) || strings.Contains(out, `<admin>`) {
		t.Fatalf("unescaped markup leaked into output:\n%s", out)
	}
	if !strings.Contains(out, `HREF="https://example.com/?q=&#34;a&#34;&amp;b=&lt;c&gt;"`) {
		t.Errorf("url not escaped:\n%s", out)
	}
	if !strings.Contains(out, `Tom &amp; &#34;Jerry&#34; &lt;admin&gt;`) {
		t.Errorf("title not escaped:\n%s", out)
	}
}

func TestEmitRoundTripsThroughParse(t *testing.T) {
	out := Emit([]domain.Bookmark{
		{URL: "https://go.dev", Title: "Go", Tags: []domain.TagLink{{Name: "go"}}},
		{URL: "https://example.com/?a=1&b=2", Title: "Query & Friends"},
	})

	root := Parse(string(out))
	var links []*Link
	root.Walk(func(_ []string, l *Link) { links = append(links, l) })

	if len(links) != 2 {
		t.Fatalf("round trip produced %d links", len(links))
	}
	if links[0].URL != "https://go.dev" || links[0].Tags[0] != "go" {
		t.Errorf("first link = %+v", links[0])
	}
	if links[1].URL != "https://example.com/?a=1&b=2" {
		t.Errorf("second link url = %q", links[1].URL)
	}
	if links[1].Title != "Query & Friends" {
		t.Errorf("second link title = %q", links[1].Title)
	}
}
