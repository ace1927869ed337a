package netscape

import (
	"fmt"
	"html"
	"strings"

	"github.com/gogogadgetscott/anchormarks/internal/domain"
)

// preamble is the fixed Netscape bookmark file header most browsers expect.
const preamble = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file.
     It will be read and overwritten.
     DO NOT EDIT! -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`

// Emit serializes bookmarks to the Netscape bookmark format as a flat
// list: folder hierarchy is not reconstructed on this path, callers that
// need folder-preserving round trips use the bundle format. Titles, URLs
// and tag names are HTML-escaped.
func Emit(bookmarks []domain.Bookmark) []byte {
	var sb strings.Builder
	sb.WriteString(preamble)

	for _, b := range bookmarks {
		sb.WriteString(`    <DT><A HREF="`)
		sb.WriteString(html.EscapeString(b.URL))
		sb.WriteString(`"`)
		if !b.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, ` ADD_DATE="%d"`, b.CreatedAt.Unix())
		}
		if len(b.Tags) > 0 {
			names := make([]string, 0, len(b.Tags))
			for _, link := range b.Tags {
				names = append(names, link.Name)
			}
			sb.WriteString(` TAGS="`)
			sb.WriteString(html.EscapeString(strings.Join(names, ",")))
			sb.WriteString(`"`)
		}
		sb.WriteString(`>`)
		title := b.Title
		if title == "" {
			title = b.URL
		}
		sb.WriteString(html.EscapeString(title))
		sb.WriteString("</A>\n")
	}

	sb.WriteString("</DL><p>\n")
	return []byte(sb.String())
}
