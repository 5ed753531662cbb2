package postservice

import (
	"regexp"
	"strings"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s]`)
	slugCollapsePattern = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe identifier from a title: lowercase, strip
// everything that is not a word character or whitespace, then collapse
// whitespace runs into single hyphens. Distinct titles may collide.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugCollapsePattern.ReplaceAllString(s, "-")
}
