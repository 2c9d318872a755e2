// Package sanitize cleans user-supplied text before it is stored.
//
// Names, checklist text and note text are plain text; any markup is stripped.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// plain restores the characters the policy escapes in text that cannot form markup.
var plain = strings.NewReplacer("&amp;", "&", "&#34;", `"`, "&#39;", "'")

// Text strips all HTML from s and trims surrounding whitespace. Entity-encoded
// markup is decoded before stripping, so it cannot come back as live tags.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(plain.Replace(strict.Sanitize(html.UnescapeString(s))))
}
