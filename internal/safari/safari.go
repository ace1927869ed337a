// Package safari decodes Safari Bookmarks.plist backups into the parsed
// bookmark tree the importer consumes, so Safari backups import through
// the same identity resolution as Netscape bookmark files.
package safari

import (
	"bytes"
	"fmt"
	"strings"

	"howett.net/plist"

	"github.com/gogogadgetscott/anchormarks/internal/netscape"
)

type node struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []node            `plist:"Children"`
}

// Parse decodes a Bookmarks.plist payload. Proxy entries (History,
// Reading List placeholders) and script-execution URLs are dropped;
// everything else maps onto folders and links.
func Parse(data []byte) (*netscape.Folder, error) {
	var root node
	dec := plist.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks plist: %w", err)
	}

	out := &netscape.Folder{}
	for _, child := range root.Children {
		walk(child, out)
	}
	return out, nil
}

func walk(n node, parent *netscape.Folder) {
	switch n.WebBookmarkType {
	case "WebBookmarkTypeLeaf":
		url := n.URLString
		if url == "" && n.URIDictionary != nil {
			url = n.URIDictionary[""]
		}
		if url == "" || strings.HasPrefix(strings.ToLower(url), "javascript:") {
			return
		}

		title := n.Title
		if title == "" && n.URIDictionary != nil {
			title = n.URIDictionary["title"]
		}
		parent.Children = append(parent.Children, &netscape.Link{URL: url, Title: title})

	case "WebBookmarkTypeList":
		folder := &netscape.Folder{Name: n.Title}
		parent.Children = append(parent.Children, folder)
		for _, child := range n.Children {
			walk(child, folder)
		}
	}
}
