// Package sanitize strips markup and dangerous punctuation from
// user-submitted free text before it is validated and stored.
package sanitize

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Characters removed after tag stripping. Keeping this set fixed means the
// stored text is safe to echo into HTML attributes and SQL logs alike.
var dangerous = strings.NewReplacer(
	"<", "",
	">", "",
	`"`, "",
	"'", "",
	"`", "",
	";", "",
	"(", "",
	")", "",
)

// Clean removes HTML tags and dangerous characters from s and trims
// surrounding whitespace. Tag contents are kept: Clean("<b>hi</b>") == "hi".
func Clean(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = dangerous.Replace(s)
	return strings.TrimSpace(s)
}
