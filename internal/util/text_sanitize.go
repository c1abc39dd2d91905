package util

import "strings"

// SanitizeQuery strips NUL and other control characters, which Postgres text
// parameters reject, and collapses runs of whitespace to one space.
func SanitizeQuery(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch < 0x20 || ch == 0x7f {
			ch = ' '
		}
		r = append(r, ch)
	}
	return strings.Join(strings.Fields(string(r)), " ")
}
