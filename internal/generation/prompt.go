// Package generation builds the completion prompts for portfolio generation
// and for chat-driven updates of an existing portfolio.
package generation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/prompts"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// SystemPrompt returns the system prompt for portfolio generation
func SystemPrompt() string {
	return prompts.MustGet(prompts.PortfolioFile, "generate-system")
}

// BuildPrompt renders the user prompt for a normalized profile.
// Manual profiles share the résumé branch; both LinkedIn sources share the LinkedIn branch.
func BuildPrompt(profile *types.ProfileData) (string, error) {
	if profile == nil {
		return "", fmt.Errorf("profile is nil")
	}

	switch profile.Source {
	case types.SourceGitHub:
		return buildGitHubPrompt(profile), nil
	case types.SourceResume, types.SourceManual:
		return buildResumePrompt(profile), nil
	case types.SourceLinkedIn, types.SourceLinkedInExport:
		return buildLinkedInPrompt(profile), nil
	default:
		return "", fmt.Errorf("unsupported profile source %q", profile.Source)
	}
}

func buildGitHubPrompt(p *types.ProfileData) string {
	template := prompts.MustGet(prompts.PortfolioFile, "github-portfolio")
	return prompts.Format(template, map[string]string{
		"Name":         orNotSpecified(p.Name),
		"Username":     orNotSpecified(p.Username),
		"Bio":          orNotSpecified(p.Bio),
		"Location":     orNotSpecified(p.Location),
		"Company":      orNotSpecified(p.Company),
		"Blog":         orNotSpecified(p.Blog),
		"Twitter":      orNotSpecified(p.Twitter),
		"Followers":    strconv.Itoa(p.Followers),
		"Following":    strconv.Itoa(p.Following),
		"PublicRepos":  strconv.Itoa(p.PublicRepos),
		"Joined":       joinedString(p.Joined),
		"Repositories": formatRepositories(p.Repositories),
		"Skills":       joinOrNotSpecified(p.Languages),
	})
}

func buildResumePrompt(p *types.ProfileData) string {
	template := prompts.MustGet(prompts.PortfolioFile, "resume-portfolio")
	return prompts.Format(template, map[string]string{
		"ResumeText": p.ResumeText,
	})
}

func buildLinkedInPrompt(p *types.ProfileData) string {
	template := prompts.MustGet(prompts.PortfolioFile, "linkedin-portfolio")
	return prompts.Format(template, map[string]string{
		"Name":       orNotSpecified(p.Name),
		"Title":      orNotSpecified(p.Title),
		"About":      orNotSpecified(p.About),
		"Experience": formatExperience(p.Experience),
		"Education":  formatEducation(p.Education),
		"Skills":     joinOrNotSpecified(p.Skills),
	})
}

func formatRepositories(repos []types.Repository) string {
	if len(repos) == 0 {
		return "- " + types.NotSpecified
	}

	lines := make([]string, 0, len(repos))
	for _, r := range repos {
		description := r.Description
		if description == "" {
			description = "No description"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s\n  Language: %s, Stars: %d, Forks: %d\n  URL: %s",
			r.Name, description, r.Language, r.Stars, r.Forks, r.URL))
	}
	return strings.Join(lines, "\n")
}

func formatExperience(entries []types.Experience) string {
	if len(entries) == 0 {
		return "- " + types.NotSpecified
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s at %s (%s): %s", e.Title, e.Company, e.Duration, e.Description))
	}
	return strings.Join(lines, "\n")
}

func formatEducation(entries []types.Education) string {
	if len(entries) == 0 {
		return "- " + types.NotSpecified
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- %s from %s (%s)", e.Degree, e.Institution, e.Years))
	}
	return strings.Join(lines, "\n")
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return types.NotSpecified
	}
	return s
}

func joinOrNotSpecified(items []string) string {
	if len(items) == 0 {
		return types.NotSpecified
	}
	return strings.Join(items, ", ")
}

func joinedString(year int) string {
	if year == 0 {
		return types.NotSpecified
	}
	return strconv.Itoa(year)
}
