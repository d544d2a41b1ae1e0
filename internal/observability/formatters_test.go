package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintProfile_GitHub(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.ProfileData{
		Source:      types.SourceGitHub,
		Name:        "Ada Lovelace",
		Username:    "ada",
		PublicRepos: 12,
		Repositories: []types.Repository{
			{Name: "engine", Language: "Go", Stars: 5},
		},
		Languages: []string{"Go"},
	})
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED PROFILE")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "12 public, 1 shown")
	assert.Contains(t, output, "engine (Go, ★5)")
}

func TestPrintProfile_LinkedInDemo(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.ProfileData{
		Source:     types.SourceLinkedIn,
		Name:       "LinkedIn User",
		Demo:       true,
		Experience: []types.Experience{{Title: "Engineer", Company: "Acme"}},
		Skills:     []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	output := buf.String()

	assert.Contains(t, output, "illustrative data")
	assert.Contains(t, output, "Engineer at Acme")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintProfile_Resume(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(&types.ProfileData{Source: types.SourceResume, ResumeText: "héllo"})
	assert.Contains(t, buf.String(), "5 characters")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&types.GenerationResult{
		HTML: "<html></html>",
		Metadata: types.Metadata{
			Name:   "Ada",
			Title:  "Software Developer (Go)",
			Source: "github",
			GitHub: "ada",
			Skills: []string{"Go"},
		},
		Warnings: []string{"missing <body> tag"},
	})
	output := buf.String()

	assert.Contains(t, output, "GENERATED PORTFOLIO")
	assert.Contains(t, output, "Software Developer (Go)")
	assert.Contains(t, output, "13 bytes")
	assert.Contains(t, output, "missing <body> tag")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(&rendering.Summary{
		Title:    "Ada",
		Sections: 3,
		Headings: []string{"About", "Projects"},
	})
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT OUTLINE")
	assert.Contains(t, output, "Sections: 3")
	assert.Contains(t, output, "Projects")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
