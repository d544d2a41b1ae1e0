package rendering

import "regexp"

var structureChecks = []struct {
	pattern *regexp.Regexp
	warning string
}{
	{regexp.MustCompile(`(?i)<html`), "missing <html> tag"},
	{regexp.MustCompile(`(?i)<body`), "missing <body> tag"},
	{regexp.MustCompile(`(?i)</body>`), "missing </body> closing tag"},
	{regexp.MustCompile(`(?i)</html>`), "missing </html> closing tag"},
}

// CheckStructure returns one warning per missing <html>/<body> open or close
// tag. It never fails; an empty result means the document looks complete.
func CheckStructure(html string) []string {
	var warnings []string
	for _, check := range structureChecks {
		if !check.pattern.MatchString(html) {
			warnings = append(warnings, check.warning)
		}
	}
	return warnings
}

// IsValidHTML reports whether CheckStructure finds nothing missing
func IsValidHTML(html string) bool {
	return len(CheckStructure(html)) == 0
}
