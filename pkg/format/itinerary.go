package format

import (
	"regexp"
	"strings"
)

var (
	fenceOpener = regexp.MustCompile("^```markdown\\s*")
	fenceCloser = regexp.MustCompile("```$")
)

// ItineraryMarkdown unwraps itinerary text that the search API returns inside
// a ```markdown fenced block. Stripping runs until the text stops changing,
// so ItineraryMarkdown(ItineraryMarkdown(s)) == ItineraryMarkdown(s).
func ItineraryMarkdown(s string) string {
	for {
		next := fenceOpener.ReplaceAllString(s, "")
		next = fenceCloser.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == s {
			return next
		}
		s = next
	}
}
