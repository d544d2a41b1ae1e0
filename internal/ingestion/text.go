// Package ingestion turns each supported profile source into a normalized
// ProfileData: GitHub, LinkedIn URL enrichment, LinkedIn exports, résumé
// text (pasted or extracted from a file), and manually entered fields.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpacePattern   = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLineRunPattern = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted résumé text while preserving line structure:
// line endings become LF, runs of spaces collapse, bullets keep their
// indentation, and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRunPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := ""
	if isBulletLine(trimmed) {
		indent = strings.Repeat(" ", len(line)-len(trimmed))
	}
	return indent + multiSpacePattern.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, bullet := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, bullet) {
			return true
		}
	}
	return false
}
