package types

import "encoding/json"

// InputKind tags the variant held by a ProfileInput
type InputKind string

// InputKind constants in resolution priority order
const (
	InputGitHub         InputKind = "github"
	InputLinkedInExport InputKind = "linkedin-export"
	InputLinkedInURL    InputKind = "linkedin-url"
	InputResume         InputKind = "resume"
	InputManual         InputKind = "manual"
)

// GenerateRequest is the body accepted by POST /generate
type GenerateRequest struct {
	ResumeText     string          `json:"resumeText,omitempty"`
	LinkedInURL    string          `json:"linkedInUrl,omitempty"`
	LinkedInData   json.RawMessage `json:"linkedInData,omitempty"`
	GitHubUsername string          `json:"githubUsername,omitempty"`

	// Manually entered fields, used only when no other source is present
	Name           string `json:"name,omitempty"`
	Title          string `json:"title,omitempty"`
	About          string `json:"about,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	JobPeriod      string `json:"jobPeriod,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// ManualFields holds a hand-entered profile
type ManualFields struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	About          string `json:"about"`
	JobTitle       string `json:"jobTitle"`
	JobPeriod      string `json:"jobPeriod"`
	JobDescription string `json:"jobDescription"`
}

// ProfileInput is the tagged union a GenerateRequest resolves to.
// Only the field matching Kind is set.
type ProfileInput struct {
	Kind           InputKind
	GitHubUsername string
	LinkedInURL    string
	LinkedInExport []byte
	ResumeText     string
	Manual         *ManualFields
}

// UpdateRequest is the body accepted by POST /update
type UpdateRequest struct {
	Message     string `json:"message" validate:"required"`
	CurrentCode string `json:"currentCode" validate:"required"`
}

// PublishRequest is the body accepted by POST /publish
type PublishRequest struct {
	Title      string    `json:"title" validate:"required"`
	Slug       string    `json:"slug" validate:"required,slug"`
	Visibility string    `json:"visibility" validate:"required,oneof=public private unlisted"`
	Domain     string    `json:"domain,omitempty" validate:"omitempty,hostname_pattern"`
	Code       string    `json:"code" validate:"required"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// PublishedPortfolio describes the simulated publish result
type PublishedPortfolio struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	CustomDomain  string `json:"customDomain,omitempty"`
	Visibility    string `json:"visibility"`
	PublishedAt   string `json:"publishedAt"`
	DocumentTitle string `json:"documentTitle,omitempty"`
	Sections      int    `json:"sections"`
}
