package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims a string and squashes every run of inner
// whitespace down to a single space.
func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// SafeFilename replaces every character outside [A-Za-z0-9_-] with an
// underscore, one for one, so company names can be used as file names.
func SafeFilename(name string) string {
	var out strings.Builder
	out.Grow(len(name))
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '-', c == '_':
			out.WriteRune(c)
		default:
			out.WriteRune('_')
		}
	}
	return out.String()
}
