package validation

import "github.com/microcosm-cc/bluemonday"

var (
	// contentPolicy keeps basic formatting markup in post bodies.
	contentPolicy = bluemonday.UGCPolicy()
	// strictPolicy strips all markup; used for titles, categories and comments.
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeContent removes dangerous markup from author-supplied post content
// while keeping common formatting tags.
func SanitizeContent(s string) string {
	return contentPolicy.Sanitize(s)
}

// SanitizeText strips all markup from a single-line text field.
func SanitizeText(s string) string {
	return strictPolicy.Sanitize(s)
}
