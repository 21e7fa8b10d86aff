package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MinSARADescriptionLen is the minimum description length (in runes, after
// markup stripping) required for SARA-reason reports.
const MinSARADescriptionLen = 10

var stripPolicy = bluemonday.StrictPolicy()

// StripMarkup removes all HTML markup and entities from s and trims
// surrounding whitespace. Report length rules apply to the result, so a
// description of pure markup counts as empty.
func StripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// DescriptionLength returns the effective rune length of a report
// description after markup stripping.
func DescriptionLength(s string) int {
	return len([]rune(StripMarkup(s)))
}
