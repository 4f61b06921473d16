// Package sanitize removes markup from user supplied text before it is stored, so that a
// contact rendered in a browser cannot execute scripts.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips every HTML element. The content of script and style elements is dropped
// entirely, the text of other elements is kept.
var policy = bluemonday.StrictPolicy()

// angleBrackets escapes the only characters that can open or close a tag.
var angleBrackets = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// String returns s without any markup. The policy HTML-escapes the remaining text; apart from
// angle brackets that escaping is undone, so quotes and ampersands keep their literal form.
func String(s string) string {
	return angleBrackets.Replace(html.UnescapeString(policy.Sanitize(s)))
}

// StringPtr sanitizes the value behind p. A nil pointer stays nil.
func StringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := String(*p)
	return &s
}
