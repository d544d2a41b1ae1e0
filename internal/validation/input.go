// Package validation guards request shape before any network call is made.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// DefaultMaxResumeLength is the maximum résumé length in characters
const DefaultMaxResumeLength = 10000

// maxGitHubUsernameLength is GitHub's own username limit
const maxGitHubUsernameLength = 39

var (
	// https, optional www., linkedin.com/in/<token>, optional trailing slash
	linkedInURLPattern = regexp.MustCompile(`(?i)^https://(www\.)?linkedin\.com/in/[\w\-.]+/?$`)
	// alphanumeric runs separated by single hyphens; length is checked separately
	gitHubUsernamePattern = regexp.MustCompile(`(?i)^[a-z\d]+(-[a-z\d]+)*$`)
	slugPattern           = regexp.MustCompile(`^[a-z0-9-]+$`)
	hostnamePattern       = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
)

// Validator checks generate, update, and publish requests.
type Validator struct {
	validate        *validator.Validate
	maxResumeLength int
}

// New creates a Validator. A non-positive maxResumeLength uses DefaultMaxResumeLength.
func New(maxResumeLength int) *Validator {
	if maxResumeLength <= 0 {
		maxResumeLength = DefaultMaxResumeLength
	}

	v := validator.New()
	_ = v.RegisterValidation("linkedin_url", func(fl validator.FieldLevel) bool {
		return IsValidLinkedInURL(fl.Field().String())
	})
	_ = v.RegisterValidation("github_username", func(fl validator.FieldLevel) bool {
		return IsValidGitHubUsername(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hostname_pattern", func(fl validator.FieldLevel) bool {
		return hostnamePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v, maxResumeLength: maxResumeLength}
}

// MaxResumeLength returns the configured résumé limit
func (v *Validator) MaxResumeLength() int {
	return v.maxResumeLength
}

// IsValidLinkedInURL reports whether url is a LinkedIn public profile URL
func IsValidLinkedInURL(url string) bool {
	return linkedInURLPattern.MatchString(url)
}

// IsValidGitHubUsername reports whether username follows GitHub's username rules:
// 1-39 characters, alphanumeric and hyphens, no leading, trailing, or doubled hyphen.
func IsValidGitHubUsername(username string) bool {
	if len(username) == 0 || len(username) > maxGitHubUsernameLength {
		return false
	}
	return gitHubUsernamePattern.MatchString(username)
}

// ValidateGenerate checks a generate request. It is pure: no I/O happens here.
func (v *Validator) ValidateGenerate(req *types.GenerateRequest) error {
	if req == nil || !hasAnyInput(req) {
		return &types.ValidationError{
			Field:   "input",
			Message: "Either resume text, LinkedIn URL, LinkedIn data, or GitHub username is required",
		}
	}

	// counted in code points: an emoji is one character, not two UTF-16 units
	if n := utf8.RuneCountInString(req.ResumeText); n > v.maxResumeLength {
		return &types.ValidationError{
			Field:   "resumeText",
			Message: fmt.Sprintf("Resume text exceeds maximum length of %d characters", v.maxResumeLength),
		}
	}

	if req.LinkedInURL != "" {
		if err := v.validate.Var(req.LinkedInURL, "linkedin_url"); err != nil {
			return &types.ValidationError{Field: "linkedInUrl", Message: "Invalid LinkedIn URL format"}
		}
	}

	if req.GitHubUsername != "" {
		if err := v.validate.Var(req.GitHubUsername, "github_username"); err != nil {
			return &types.ValidationError{Field: "githubUsername", Message: "Invalid GitHub username format"}
		}
	}

	return nil
}

// ValidateUpdate checks an update request
func (v *Validator) ValidateUpdate(req *types.UpdateRequest) error {
	if req == nil {
		return &types.ValidationError{Message: "Both message and currentCode are required"}
	}
	if err := v.validate.Struct(req); err != nil {
		return &types.ValidationError{
			Field:   firstInvalidField(err),
			Message: "Both message and currentCode are required",
		}
	}
	return nil
}

// ValidatePublish checks a publish request
func (v *Validator) ValidatePublish(req *types.PublishRequest) error {
	if req == nil {
		return &types.ValidationError{Message: "Missing required fields"}
	}
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &types.ValidationError{Message: "Missing required fields"}
	}

	fe := validationErrors[0]
	switch {
	case fe.Tag() == "required":
		return &types.ValidationError{Field: jsonName(fe), Message: "Missing required fields"}
	case fe.Tag() == "slug":
		return &types.ValidationError{Field: "slug", Message: "Slug can only contain lowercase letters, numbers, and hyphens"}
	case fe.Tag() == "hostname_pattern":
		return &types.ValidationError{Field: "domain", Message: "Invalid domain format"}
	case fe.Tag() == "oneof":
		return &types.ValidationError{Field: "visibility", Message: "Visibility must be one of: public, private, unlisted"}
	default:
		return &types.ValidationError{Field: jsonName(fe), Message: fmt.Sprintf("%s is invalid", jsonName(fe))}
	}
}

// hasAnyInput reports whether at least one profile source is present
func hasAnyInput(req *types.GenerateRequest) bool {
	if strings.TrimSpace(req.ResumeText) != "" {
		return true
	}
	if req.LinkedInURL != "" || strings.TrimSpace(req.GitHubUsername) != "" {
		return true
	}
	if data := bytes.TrimSpace(req.LinkedInData); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		return true
	}
	return strings.TrimSpace(req.Name) != ""
}

// firstInvalidField returns the name of the first field that failed validation
func firstInvalidField(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return jsonName(validationErrors[0])
	}
	return ""
}

// jsonName lower-cases the first letter of a struct field name to match the JSON body
func jsonName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
