// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		runes := []rune(line)
		if len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes at most maxItemsToShow items under a heading
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", heading)
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintProfile outputs a summary of a normalized profile.
func (p *Printer) PrintProfile(profile *types.ProfileData) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:   %s\n", profile.Source)
	fmt.Fprintf(&sb, "Name:     %s\n", profile.Name)
	if profile.Title != "" {
		fmt.Fprintf(&sb, "Title:    %s\n", profile.Title)
	}
	if profile.Demo {
		sb.WriteString("Demo:     yes (illustrative data)\n")
	}

	switch profile.Source {
	case types.SourceGitHub:
		fmt.Fprintf(&sb, "Username: %s\n", profile.Username)
		fmt.Fprintf(&sb, "Repos:    %d public, %d shown\n", profile.PublicRepos, len(profile.Repositories))
		repos := make([]string, 0, len(profile.Repositories))
		for _, r := range profile.Repositories {
			repos = append(repos, fmt.Sprintf("%s (%s, ★%d)", r.Name, r.Language, r.Stars))
		}
		writeList(&sb, "Repositories", repos)
		writeList(&sb, "Languages", profile.Languages)
	case types.SourceLinkedIn, types.SourceLinkedInExport:
		positions := make([]string, 0, len(profile.Experience))
		for _, e := range profile.Experience {
			positions = append(positions, fmt.Sprintf("%s at %s", e.Title, e.Company))
		}
		writeList(&sb, "Experience", positions)
		writeList(&sb, "Skills", profile.Skills)
	default:
		fmt.Fprintf(&sb, "Text:     %d characters\n", len([]rune(profile.ResumeText)))
	}

	p.printBox("NORMALIZED PROFILE", sb.String())
}

// PrintResult outputs the metadata and warnings of a generation.
func (p *Printer) PrintResult(result *types.GenerationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	md := result.Metadata
	fmt.Fprintf(&sb, "Name:     %s\n", md.Name)
	fmt.Fprintf(&sb, "Title:    %s\n", md.Title)
	fmt.Fprintf(&sb, "Source:   %s\n", md.Source)
	if md.GitHub != "" {
		fmt.Fprintf(&sb, "GitHub:   %s\n", md.GitHub)
	}
	fmt.Fprintf(&sb, "HTML:     %d bytes\n", len(result.HTML))
	writeList(&sb, "Skills", md.Skills)
	writeList(&sb, "Warnings", result.Warnings)

	p.printBox("GENERATED PORTFOLIO", sb.String())
}

// PrintSummary outputs the outline of a portfolio document.
func (p *Printer) PrintSummary(summary *rendering.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:    %s\n", summary.Title)
	fmt.Fprintf(&sb, "Sections: %d\n", summary.Sections)
	fmt.Fprintf(&sb, "Links:    %d\n", summary.Links)
	writeList(&sb, "Headings", summary.Headings)

	p.printBox("DOCUMENT OUTLINE", sb.String())
}
