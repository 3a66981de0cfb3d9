package blogservice

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// embedded active content is removed from stored Markdown outright
	activeBlockRX = regexp.MustCompile(`(?is)<\s*(script|iframe|object|embed)\b[^>]*>.*?<\s*/\s*(?:script|iframe|object|embed)\s*>`)
	activeTagRX   = regexp.MustCompile(`(?is)<\s*(?:script|iframe|object|embed)\b[^>]*/?\s*>`)
	eventAttrRX   = regexp.MustCompile(`(?i)(<[a-z][^>]*?)\s+on[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)

	ugcPolicy = bluemonday.UGCPolicy()
)

// sanitizeMarkdown removes script, iframe, object and embed elements and
// inline event handlers from Markdown before it is stored.
func sanitizeMarkdown(markdown string) string {
	s := activeBlockRX.ReplaceAllString(markdown, "")
	s = activeTagRX.ReplaceAllString(s, "")

	// one handler per tag is removed each pass
	for eventAttrRX.MatchString(s) {
		s = eventAttrRX.ReplaceAllString(s, "$1")
	}

	return s
}

// sanitizeHTML filters rendered HTML down to the user content allow-list.
func sanitizeHTML(html string) string {
	return ugcPolicy.Sanitize(html)
}
