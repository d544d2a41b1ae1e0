package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// ResolveInput picks the single profile source a generate request uses.
// Priority: GitHub, LinkedIn export, LinkedIn URL, résumé text, manual fields.
func ResolveInput(req *types.GenerateRequest) (*types.ProfileInput, error) {
	if username := strings.TrimSpace(req.GitHubUsername); username != "" {
		return &types.ProfileInput{Kind: types.InputGitHub, GitHubUsername: username}, nil
	}

	export, err := linkedInExportContent(req.LinkedInData)
	if err != nil {
		return nil, err
	}
	if len(export) > 0 {
		return &types.ProfileInput{Kind: types.InputLinkedInExport, LinkedInExport: export}, nil
	}

	if req.LinkedInURL != "" {
		return &types.ProfileInput{Kind: types.InputLinkedInURL, LinkedInURL: req.LinkedInURL}, nil
	}

	if strings.TrimSpace(req.ResumeText) != "" {
		return &types.ProfileInput{Kind: types.InputResume, ResumeText: req.ResumeText}, nil
	}

	if strings.TrimSpace(req.Name) != "" {
		return &types.ProfileInput{
			Kind: types.InputManual,
			Manual: &types.ManualFields{
				Name:           req.Name,
				Title:          req.Title,
				About:          req.About,
				JobTitle:       req.JobTitle,
				JobPeriod:      req.JobPeriod,
				JobDescription: req.JobDescription,
			},
		}, nil
	}

	return nil, &types.ValidationError{Field: "input", Message: "no profile source provided"}
}

// linkedInExportContent unwraps linkedInData. A JSON string carries the raw
// file text (JSON or CSV); an object or array is the parsed JSON export itself.
func linkedInExportContent(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] != '"' {
		return raw, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, &types.ParseError{Format: "linkedin-export", Message: "linkedInData is not a valid string", Cause: err}
	}
	return []byte(strings.TrimSpace(text)), nil
}

// Normalizer dispatches a resolved ProfileInput to its source.
type Normalizer struct {
	GitHub   *GitHubClient
	LinkedIn LinkedInEnricher
}

// NewNormalizer creates a Normalizer. A nil enricher uses the demo provider.
func NewNormalizer(github *GitHubClient, linkedIn LinkedInEnricher) *Normalizer {
	if github == nil {
		github = NewGitHubClient("", "")
	}
	if linkedIn == nil {
		linkedIn = DemoLinkedInEnricher{}
	}
	return &Normalizer{GitHub: github, LinkedIn: linkedIn}
}

// Normalize produces ProfileData from exactly one source.
func (n *Normalizer) Normalize(ctx context.Context, in *types.ProfileInput) (*types.ProfileData, error) {
	switch in.Kind {
	case types.InputGitHub:
		return n.GitHub.FetchProfile(ctx, in.GitHubUsername)
	case types.InputLinkedInExport:
		return ParseLinkedInExport(in.LinkedInExport)
	case types.InputLinkedInURL:
		return n.LinkedIn.Enrich(ctx, in.LinkedInURL)
	case types.InputResume:
		return NormalizeResume(in.ResumeText), nil
	case types.InputManual:
		if in.Manual == nil {
			return nil, &types.ValidationError{Field: "name", Message: "manual fields are missing"}
		}
		return NormalizeManual(in.Manual), nil
	default:
		return nil, fmt.Errorf("unknown profile input kind %q", in.Kind)
	}
}
