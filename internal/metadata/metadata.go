// Package metadata derives the small name/title/skills summary that
// accompanies a generated portfolio.
package metadata

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Fallback values used when nothing can be scraped from the HTML
const (
	DefaultName  = "Portfolio Owner"
	DefaultTitle = "Professional"
)

const (
	maxScrapedSkills  = 10
	maxTitleLanguages = 3
)

var (
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<h1\b[^>]*>(.*?)</h1>`),
		regexp.MustCompile(`(?is)<h2\b[^>]*>(.*?)</h2>`),
		regexp.MustCompile(`(?is)<h3\b[^>]*>(.*?)</h3>`),
	}
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<h2\b[^>]*>(.*?)</h2>`),
		regexp.MustCompile(`(?is)class="[^"]*title[^"]*"[^>]*>(.*?)</`),
		regexp.MustCompile(`(?is)class="[^"]*profession[^"]*"[^>]*>(.*?)</`),
		regexp.MustCompile(`(?is)class="[^"]*role[^"]*"[^>]*>(.*?)</`),
	}
	sectionPattern = regexp.MustCompile(`(?is)<section\b[^>]*>(.*?)</section>`)
	headingPattern = regexp.MustCompile(`(?is)<h[1-3]\b[^>]*>(.*?)</h[1-3]>`)
	skillPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<li\b[^>]*>(.*?)</li>`),
		regexp.MustCompile(`(?is)<div\b[^>]*class="[^"]*skill[^"]*"[^>]*>(.*?)</div>`),
		regexp.MustCompile(`(?is)<span\b[^>]*class="[^"]*skill[^"]*"[^>]*>(.*?)</span>`),
	}
	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

// Derive builds metadata for a generated portfolio, stamping time.Now.
func Derive(html string, profile *types.ProfileData) types.Metadata {
	return DeriveAt(html, profile, time.Now().UTC())
}

// DeriveAt builds metadata from structured profile data when the source has
// it, and otherwise scrapes the generated HTML. It never fails.
func DeriveAt(html string, profile *types.ProfileData, now time.Time) types.Metadata {
	if profile == nil {
		return fallback(now)
	}

	switch profile.Source {
	case types.SourceGitHub:
		return fromGitHub(profile)
	case types.SourceLinkedIn, types.SourceLinkedInExport:
		return fromLinkedIn(profile)
	case types.SourceResume, types.SourceManual:
		return scrape(html, profile, now)
	default:
		log.Printf("[WARN] [metadata] unknown profile source %q, using defaults", profile.Source)
		return fallback(now)
	}
}

// GitHubTitle renders "Software Developer (lang1, lang2, lang3)"
func GitHubTitle(languages []string) string {
	if len(languages) == 0 {
		return "Software Developer"
	}
	if len(languages) > maxTitleLanguages {
		languages = languages[:maxTitleLanguages]
	}
	return fmt.Sprintf("Software Developer (%s)", strings.Join(languages, ", "))
}

func fromGitHub(profile *types.ProfileData) types.Metadata {
	return types.Metadata{
		Name:   profile.Name,
		Title:  GitHubTitle(profile.Languages),
		Skills: nonBlank(profile.Languages),
		Source: string(types.SourceGitHub),
		GitHub: profile.Username,
	}
}

// fromLinkedIn fills a missing name or headline with the defaults so the
// result always satisfies the metadata schema
func fromLinkedIn(profile *types.ProfileData) types.Metadata {
	md := types.Metadata{
		Name:   strings.TrimSpace(profile.Name),
		Title:  strings.TrimSpace(profile.Title),
		Skills: nonBlank(profile.Skills),
		Source: string(types.SourceLinkedIn),
	}
	if md.Name == "" {
		md.Name = DefaultName
	}
	if md.Title == "" {
		md.Title = DefaultTitle
	}
	return md
}

// scrape is a best-effort heuristic over model-written markup. A panic
// anywhere in it yields the fallback metadata.
func scrape(html string, profile *types.ProfileData, now time.Time) (md types.Metadata) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] [metadata] extraction failed: %v", r)
			md = fallback(now)
		}
	}()

	name := firstMatch(html, namePatterns, "")
	title := firstMatch(html, titlePatterns, name)

	// manual entries know their own name and title
	if name == "" {
		name = profile.Name
	}
	if title == "" {
		title = profile.Title
	}

	md = fallback(now)
	if name != "" {
		md.Name = name
	}
	if title != "" {
		md.Title = title
	}
	md.Skills = scrapeSkills(html)
	return md
}

// firstMatch returns the first non-empty stripped capture that differs from exclude
func firstMatch(html string, patterns []*regexp.Regexp, exclude string) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		text := stripTags(m[1])
		if text != "" && text != exclude {
			return text
		}
	}
	return ""
}

// scrapeSkills finds the first section with a heading mentioning "skills"
// and lists the items that follow that heading
func scrapeSkills(html string) []string {
	for _, section := range sectionPattern.FindAllStringSubmatch(html, -1) {
		body := section[1]
		start := -1
		for _, loc := range headingPattern.FindAllStringSubmatchIndex(body, -1) {
			if strings.Contains(strings.ToLower(stripTags(body[loc[2]:loc[3]])), "skills") {
				start = loc[1]
				break
			}
		}
		if start < 0 {
			continue
		}

		rest := body[start:]
		for _, p := range skillPatterns {
			matches := p.FindAllStringSubmatch(rest, -1)
			if len(matches) == 0 {
				continue
			}
			skills := make([]string, 0, maxScrapedSkills)
			for _, m := range matches {
				if s := stripTags(m[1]); s != "" {
					skills = append(skills, s)
				}
				if len(skills) == maxScrapedSkills {
					break
				}
			}
			return skills
		}
		return []string{}
	}
	return []string{}
}

func stripTags(s string) string {
	return strings.Join(strings.Fields(tagPattern.ReplaceAllString(s, "")), " ")
}

func fallback(now time.Time) types.Metadata {
	generatedAt := now
	return types.Metadata{
		Name:        DefaultName,
		Title:       DefaultTitle,
		Skills:      []string{},
		Source:      string(types.SourceResume),
		GeneratedAt: &generatedAt,
	}
}

// nonBlank trims entries and drops empty ones; the result is never nil
func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
