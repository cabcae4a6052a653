package winstate

import (
	"fmt"
	"strings"
)

// normalizeTitle lowercases a title and replaces every character outside
// [a-zA-Z0-9] with '-'.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// windowID derives the stable id of a panel. taken reports ids already in
// use; duplicates get a numeric suffix.
func windowID(section, title string, taken func(string) bool) string {
	if section == "" {
		section = "unknown"
	}
	base := fmt.Sprintf("window-%s-%s", section, normalizeTitle(title))
	id := base
	for n := 2; taken(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
