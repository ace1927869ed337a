package safari

import (
	"strings"
	"testing"

	"github.com/gogogadgetscott/anchormarks/internal/netscape"
)

const fixture = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>WebBookmarkType</key><string>WebBookmarkTypeList</string>
	<key>Title</key><string></string>
	<key>Children</key>
	<array>
		<dict>
			<key>WebBookmarkType</key><string>WebBookmarkTypeProxy</string>
			<key>Title</key><string>History</string>
		</dict>
		<dict>
			<key>WebBookmarkType</key><string>WebBookmarkTypeList</string>
			<key>Title</key><string>BookmarksBar</string>
			<key>Children</key>
			<array>
				<dict>
					<key>WebBookmarkType</key><string>WebBookmarkTypeLeaf</string>
					<key>URLString</key><string>https://go.dev</string>
					<key>URIDictionary</key>
					<dict>
						<key>title</key><string>Go</string>
					</dict>
				</dict>
				<dict>
					<key>WebBookmarkType</key><string>WebBookmarkTypeLeaf</string>
					<key>URLString</key><string>javascript:void(0)</string>
				</dict>
			</array>
		</dict>
	</array>
</dict>
</plist>`

func TestParse(t *testing.T) {
	root, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var got []string
	root.Walk(func(path []string, link *netscape.Link) {
		got = append(got, strings.Join(path, "/")+":"+link.URL+":"+link.Title)
	})

	if len(got) != 1 {
		t.Fatalf("links = %v, want one (proxy and javascript entries dropped)", got)
	}
	if got[0] != "BookmarksBar:https://go.dev:Go" {
		t.Errorf("link = %q", got[0])
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not a plist")); err == nil {
		t.Error("Parse accepted garbage input")
	}
}
