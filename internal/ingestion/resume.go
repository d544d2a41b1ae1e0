package ingestion

import (
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// NormalizeResume wraps pasted résumé text. The text is passed through verbatim.
func NormalizeResume(text string) *types.ProfileData {
	return &types.ProfileData{
		Source:     types.SourceResume,
		ResumeText: text,
	}
}

// NormalizeManual serializes hand-entered fields into a synthetic résumé so
// manual input follows the résumé path from here on.
func NormalizeManual(m *types.ManualFields) *types.ProfileData {
	return &types.ProfileData{
		Source:     types.SourceManual,
		Name:       strings.TrimSpace(m.Name),
		Title:      strings.TrimSpace(m.Title),
		About:      strings.TrimSpace(m.About),
		ResumeText: ManualResumeText(m),
	}
}

// ManualResumeText renders manual fields with the fixed résumé template
func ManualResumeText(m *types.ManualFields) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", m.Name)
	fmt.Fprintf(&b, "Title: %s\n", m.Title)
	fmt.Fprintf(&b, "About: %s\n", m.About)
	b.WriteString("Experience:\n")
	fmt.Fprintf(&b, "- %s (%s)\n", m.JobTitle, m.JobPeriod)
	fmt.Fprintf(&b, "  %s", m.JobDescription)
	return b.String()
}
