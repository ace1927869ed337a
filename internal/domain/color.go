package domain

// ValidHexColor reports whether s is a #RGB or #RRGGBB hex color.
// Import paths use this to decide whether a caller-supplied per-link
// color override is applied or dropped.
func ValidHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
