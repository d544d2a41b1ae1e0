package rendering

import (
	"regexp"
	"strings"
)

var (
	scriptBlockPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	// unterminated or orphaned tags left after block removal
	scriptTagPattern = regexp.MustCompile(`(?i)<script\b[^>]*>|</script\s*>`)
)

// SanitizeHTML removes every <script> element and trims surrounding whitespace.
// Everything outside script elements is kept byte for byte.
func SanitizeHTML(html string) string {
	html = scriptBlockPattern.ReplaceAllString(html, "")
	html = scriptTagPattern.ReplaceAllString(html, "")
	return strings.TrimSpace(html)
}
