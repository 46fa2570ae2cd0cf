package notification

import "regexp"

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// Substitute replaces every {{key}} occurrence in text with the matching
// value from data. Keys absent from data are left verbatim, which makes the
// substitution idempotent for values that contain no placeholders of their
// own.
func Substitute(text string, data map[string]string) string {
	if len(data) == 0 || text == "" {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := match[2 : len(match)-2]
		if value, ok := data[key]; ok {
			return value
		}
		return match
	})
}
