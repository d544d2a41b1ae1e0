// Package types provides type definitions for structured data used throughout the portfolio builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Source identifies which normalization path produced a ProfileData
type Source string

// Source constants for every supported profile origin
const (
	SourceGitHub         Source = "github"
	SourceLinkedIn       Source = "linkedin"
	SourceLinkedInExport Source = "linkedin-export"
	SourceResume         Source = "resume"
	SourceManual         Source = "manual"
)

// NotSpecified is the language placeholder for repositories without a detected language
const NotSpecified = "Not specified"

// ProfileData is the canonical normalized profile. Exactly one normalizer
// populates it per request; Source says which variant fields are meaningful.
type ProfileData struct {
	Source Source   `json:"source"`
	Name   string   `json:"name,omitempty"`
	Title  string   `json:"title,omitempty"`
	About  string   `json:"about,omitempty"`
	Skills []string `json:"skills,omitempty"`

	// Résumé and manual variants
	ResumeText string `json:"resumeText,omitempty"`

	// LinkedIn variants
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	// Demo is set when the profile is illustrative placeholder data rather than a real fetch
	Demo bool `json:"demo,omitempty"`

	// GitHub variant
	Username     string       `json:"username,omitempty"`
	AvatarURL    string       `json:"avatarUrl,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Location     string       `json:"location,omitempty"`
	Company      string       `json:"company,omitempty"`
	Blog         string       `json:"blog,omitempty"`
	Twitter      string       `json:"twitter,omitempty"`
	GitHubURL    string       `json:"githubUrl,omitempty"`
	Followers    int          `json:"followers,omitempty"`
	Following    int          `json:"following,omitempty"`
	PublicRepos  int          `json:"publicRepos,omitempty"`
	Repositories []Repository `json:"repositories,omitempty"`
	Languages    []string     `json:"languages,omitempty"`
	Joined       int          `json:"joined,omitempty"`
}

// Experience is a single position from a LinkedIn profile
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is a single school entry from a LinkedIn profile
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Years       string `json:"years"`
}

// Repository is a public, non-forked GitHub repository
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
	IsForked    bool   `json:"isForked"`
}

// Metadata is the display summary derived from a generation result
type Metadata struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Skills      []string   `json:"skills"`
	Source      string     `json:"source"`
	GitHub      string     `json:"github,omitempty"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
}

// GenerationResult is the output of the generate pipeline
type GenerationResult struct {
	HTML     string   `json:"html"`
	Metadata Metadata `json:"metadata"`
	// Warnings holds non-fatal problems such as validity-check failures or demo data
	Warnings []string `json:"warnings,omitempty"`
	// Demo is set when the profile behind the result was illustrative demo data
	Demo bool `json:"-"`
}

// UpdateResult is the output of the update pipeline
type UpdateResult struct {
	UpdatedCode string `json:"updatedCode"`
	AIMessage   string `json:"aiMessage"`
}
