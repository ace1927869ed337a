package netscape

import "strings"

// Folder is a parsed folder node. The zero-name root returned by Parse
// collects all top-level entries.
type Folder struct {
	Name     string
	Children []Node
}

// Link is a parsed bookmark entry.
type Link struct {
	URL   string
	Title string
	Tags  []string
}

// Node is either a *Folder or a *Link, in document order. Document order
// matters: position ordinals are assigned from it during import.
type Node interface{ node() }

func (*Folder) node() {}
func (*Link) node()   {}

// Parse reconstructs the folder/bookmark tree from a Netscape bookmark
// file. Parsing is best-effort: an input truncated mid-block yields every
// entry appearing before the truncation point, and pseudo-scheme links
// (script execution, browser-internal place references) are dropped
// silently rather than reported as errors.
func Parse(src string) *Folder {
	root := &Folder{}
	s := NewScanner(src)
	parseBlock(s, root)
	return root
}

// parseBlock consumes one nested-list block into parent. Each recursive
// call owns exactly one block: it returns on the close token that balances
// the block's open, or at end of input. Nesting depth is unbounded, so the
// matching close is found by recursion depth, never by first occurrence.
func parseBlock(s *Scanner, parent *Folder) {
	for {
		switch ev := s.Next(); ev.Kind {
		case EventFolder:
			folder := &Folder{Name: ev.Name}
			parent.Children = append(parent.Children, folder)
			// A heading is normally followed by its <DL> block. A bare
			// heading (no block) is an empty folder.
			if s.Peek().Kind == EventListOpen {
				s.Next()
				parseBlock(s, folder)
			}
		case EventBookmark:
			if skipScheme(ev.URL) {
				continue
			}
			parent.Children = append(parent.Children, &Link{
				URL:   ev.URL,
				Title: ev.Title,
				Tags:  ev.Tags,
			})
		case EventListOpen:
			// An anonymous block without a heading. Its entries belong to
			// the current folder.
			parseBlock(s, parent)
		case EventListClose, EventEOF:
			return
		}
	}
}

// skipScheme reports whether a link URL uses a pseudo-scheme that must not
// be imported: script execution or browser-internal place references.
func skipScheme(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	return url == "" ||
		strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "place:")
}

// Walk visits every link in the tree depth-first, reporting the innermost
// enclosing folder path for each.
func (f *Folder) Walk(visit func(path []string, link *Link)) {
	f.walk(nil, visit)
}

func (f *Folder) walk(path []string, visit func(path []string, link *Link)) {
	for _, child := range f.Children {
		switch n := child.(type) {
		case *Folder:
			sub := make([]string, len(path)+1)
			copy(sub, path)
			sub[len(path)] = n.Name
			n.walk(sub, visit)
		case *Link:
			visit(path, n)
		}
	}
}
