package rendering

import (
	"regexp"
	"strings"
)

var (
	// a fence tagged html
	htmlFencePattern = regexp.MustCompile("(?s)```(?i:html)[ \\t]*(.*?)```")
	// any fence, with an optional language tag on the opening line
	anyFencePattern = regexp.MustCompile("(?s)```[A-Za-z0-9_+-]*[ \\t]*(.*?)```")
)

// ExtractHTML returns the trimmed interior of the first ```html fence in raw.
// Without such a fence the raw text is returned unchanged.
func ExtractHTML(raw string) string {
	if m := htmlFencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}

// ExtractAnyFence returns the trimmed interior of the first fenced block of
// any language. Without a fence the raw text is returned unchanged.
func ExtractAnyFence(raw string) string {
	if m := anyFencePattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}
