// Package sanitize strips markup from user-supplied text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StrictPolicy removes all HTML tags and attributes.
var StrictPolicy = bluemonday.StrictPolicy()

// maxPasses bounds the strip/unescape loop for deeply entity-encoded input.
const maxPasses = 8

// Text removes all HTML from input and trims surrounding space.
// The result is plain text, not HTML-escaped; clients escape on output.
// Entity-encoded markup is unescaped and stripped again until nothing changes,
// so the returned text never contains a tag bluemonday would remove.
func Text(input string) string {
	out := input
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(StrictPolicy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// not settled; return the stripped form still entity-encoded
	return strings.TrimSpace(StrictPolicy.Sanitize(out))
}

// TextPtr applies Text to a non-nil pointer and returns a new pointer.
func TextPtr(input *string) *string {
	if input == nil {
		return nil
	}
	s := Text(*input)
	return &s
}
