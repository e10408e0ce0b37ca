package sponsor

import "strings"

// FormatNames joins sponsor names as a natural-language list:
// one name unmodified, two joined with " and ", three or more joined
// by commas with "and " before the last.
func FormatNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		joined := make([]string, len(names))
		copy(joined, names)
		joined[len(joined)-1] = "and " + joined[len(joined)-1]
		return strings.Join(joined, ", ")
	}
}
