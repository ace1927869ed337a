package netscape

import (
	"html"
	"regexp"
	"strings"
)

// EventKind identifies a structural token in a Netscape bookmark file.
type EventKind int

const (
	// EventListOpen is a <DL> block open.
	EventListOpen EventKind = iota
	// EventListClose is a </DL> block close.
	EventListClose
	// EventFolder is a <H3>...</H3> folder heading.
	EventFolder
	// EventBookmark is an <A HREF=...>...</A> link element.
	EventBookmark
	// EventEOF means no further structural tokens exist. An unterminated
	// element is reported as EOF, not as an error.
	EventEOF
)

// Event is one structural token. Name is set for folders; URL, Title and
// Tags for bookmarks. Text content and attribute values are entity-decoded.
type Event struct {
	Kind  EventKind
	Name  string
	URL   string
	Title string
	Tags  []string
}

// interTagSpace matches whitespace runs between adjacent tags.
var interTagSpace = regexp.MustCompile(`>\s+<`)

// normalize collapses whitespace between adjacent tags so token positions
// are stable regardless of the exporting browser's indentation habits.
func normalize(src string) string {
	return interTagSpace.ReplaceAllString(src, "><")
}

// Scanner walks normalized markup text and emits structural events.
// It recognizes a closed set of tags and skips everything else; no
// well-formedness validation is performed.
type Scanner struct {
	src    string
	pos    int
	peeked *Event
}

// NewScanner returns a scanner over src. The input is normalized once up
// front; the caller's string is not modified.
func NewScanner(src string) *Scanner {
	return &Scanner{src: normalize(src)}
}

// Peek returns the next event without consuming it.
func (s *Scanner) Peek() Event {
	if s.peeked == nil {
		ev := s.scan()
		s.peeked = &ev
	}
	return *s.peeked
}

// Next consumes and returns the next event.
func (s *Scanner) Next() Event {
	if s.peeked != nil {
		ev := *s.peeked
		s.peeked = nil
		return ev
	}
	return s.scan()
}

func (s *Scanner) scan() Event {
	for {
		open := strings.IndexByte(s.src[s.pos:], '<')
		if open < 0 {
			s.pos = len(s.src)
			return Event{Kind: EventEOF}
		}
		s.pos += open + 1

		name := s.tagName()
		switch strings.ToLower(name) {
		case "dl":
			s.skipPastTagEnd()
			return Event{Kind: EventListOpen}
		case "/dl":
			s.skipPastTagEnd()
			return Event{Kind: EventListClose}
		case "h3":
			text, ok := s.element("h3")
			if !ok {
				return Event{Kind: EventEOF}
			}
			return Event{Kind: EventFolder, Name: text}
		case "a":
			attrs := s.attributes()
			text, ok := s.innerText("a")
			if !ok {
				return Event{Kind: EventEOF}
			}
			return Event{
				Kind:  EventBookmark,
				URL:   html.UnescapeString(attrs["href"]),
				Title: text,
				Tags:  splitTagList(attrs["tags"]),
			}
		default:
			// <DT>, <p>, <META>, comments and anything else we do not
			// model. Skip the tag body and keep scanning.
			s.skipPastTagEnd()
		}
	}
}

// tagName reads the tag name at the cursor (just past '<').
func (s *Scanner) tagName() string {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '>' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

// skipPastTagEnd advances the cursor just past the next '>'.
func (s *Scanner) skipPastTagEnd() {
	end := strings.IndexByte(s.src[s.pos:], '>')
	if end < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += end + 1
}

// element consumes the remainder of an open tag plus its inner text up to
// the matching close tag. Returns false when the element is unterminated.
func (s *Scanner) element(tag string) (string, bool) {
	s.skipPastTagEnd()
	return s.innerText(tag)
}

// innerText reads text up to </tag> (case-insensitive) and consumes the
// close tag. Returns false at end of input.
func (s *Scanner) innerText(tag string) (string, bool) {
	lower := strings.ToLower(s.src[s.pos:])
	close := strings.Index(lower, "</"+tag)
	if close < 0 {
		s.pos = len(s.src)
		return "", false
	}
	text := s.src[s.pos : s.pos+close]
	s.pos += close
	s.skipPastTagEnd()
	return strings.TrimSpace(html.UnescapeString(text)), true
}

// attributes parses name="value" pairs up to the tag's closing '>'.
// Attribute names are lowercased; single, double and missing quotes are
// all tolerated.
func (s *Scanner) attributes() map[string]string {
	attrs := make(map[string]string)
	for s.pos < len(s.src) {
		// Skip whitespace.
		for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
			s.pos++
		}
		if s.pos >= len(s.src) || s.src[s.pos] == '>' {
			if s.pos < len(s.src) {
				s.pos++ // consume '>'
			}
			return attrs
		}

		// Attribute name.
		nameStart := s.pos
		for s.pos < len(s.src) && s.src[s.pos] != '=' && s.src[s.pos] != '>' && !isSpace(s.src[s.pos]) {
			s.pos++
		}
		name := strings.ToLower(s.src[nameStart:s.pos])

		if s.pos >= len(s.src) || s.src[s.pos] != '=' {
			// Valueless attribute (e.g. legacy PERSONAL_TOOLBAR flags).
			if name != "" {
				attrs[name] = ""
			}
			continue
		}
		s.pos++ // consume '='

		// Attribute value.
		var value string
		if s.pos < len(s.src) && (s.src[s.pos] == '"' || s.src[s.pos] == '\'') {
			quote := s.src[s.pos]
			s.pos++
			end := strings.IndexByte(s.src[s.pos:], quote)
			if end < 0 {
				value = s.src[s.pos:]
				s.pos = len(s.src)
			} else {
				value = s.src[s.pos : s.pos+end]
				s.pos += end + 1
			}
		} else {
			valStart := s.pos
			for s.pos < len(s.src) && s.src[s.pos] != '>' && !isSpace(s.src[s.pos]) {
				s.pos++
			}
			value = s.src[valStart:s.pos]
		}
		if name != "" {
			attrs[name] = html.UnescapeString(value)
		}
	}
	return attrs
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// splitTagList splits a comma-separated tag attribute, trimming whitespace
// and dropping empty entries. Duplicates are kept here; the identity
// resolver collapses them when tags are ensured.
func splitTagList(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
