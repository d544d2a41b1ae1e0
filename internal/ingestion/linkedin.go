package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/fetch"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// LinkedInEnricher resolves a LinkedIn profile URL into profile data.
// Scraping LinkedIn directly is not supported; a licensed enrichment
// provider sits behind this interface.
type LinkedInEnricher interface {
	Enrich(ctx context.Context, profileURL string) (*types.ProfileData, error)
}

// DemoLinkedInEnricher returns a fixed illustrative profile without any
// network call. Profiles it returns have Demo set so callers can surface it.
type DemoLinkedInEnricher struct{}

// Enrich implements LinkedInEnricher
func (DemoLinkedInEnricher) Enrich(_ context.Context, profileURL string) (*types.ProfileData, error) {
	log.Printf("[WARN] [linkedin] no enrichment provider configured, returning demo data for %s", profileURL)
	return &types.ProfileData{
		Source: types.SourceLinkedIn,
		Name:   "LinkedIn User",
		Title:  "Professional from LinkedIn",
		About:  "This profile was extracted from LinkedIn",
		Experience: []types.Experience{
			{
				Title:       "Senior Developer",
				Company:     "Tech Company",
				Duration:    "2020 - Present",
				Description: "Led development of key projects",
			},
		},
		Education: []types.Education{
			{Institution: "University", Degree: "Computer Science", Years: "2014 - 2018"},
		},
		Skills: []string{"JavaScript", "React", "Node.js"},
		Demo:   true,
	}, nil
}

// HTTPLinkedInEnricher calls a Proxycurl-style enrichment endpoint:
// GET <Endpoint>?url=<profile url> with a bearer API key.
type HTTPLinkedInEnricher struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// NewHTTPLinkedInEnricher creates an enricher for endpoint
func NewHTTPLinkedInEnricher(endpoint, apiKey string) *HTTPLinkedInEnricher {
	return &HTTPLinkedInEnricher{Endpoint: endpoint, APIKey: apiKey}
}

type enrichDate struct {
	Year int `json:"year"`
}

type enrichResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Headline    string `json:"headline"`
	Summary     string `json:"summary"`
	Experiences []struct {
		Title       string      `json:"title"`
		Company     string      `json:"company"`
		Description string      `json:"description"`
		StartsAt    *enrichDate `json:"starts_at"`
		EndsAt      *enrichDate `json:"ends_at"`
	} `json:"experiences"`
	Education []struct {
		School     string      `json:"school"`
		DegreeName string      `json:"degree_name"`
		StartsAt   *enrichDate `json:"starts_at"`
		EndsAt     *enrichDate `json:"ends_at"`
	} `json:"education"`
	Skills []string `json:"skills"`
}

// Enrich implements LinkedInEnricher
func (e *HTTPLinkedInEnricher) Enrich(ctx context.Context, profileURL string) (*types.ProfileData, error) {
	endpoint, err := url.Parse(e.Endpoint)
	if err != nil {
		return nil, &types.UpstreamError{Service: types.ServiceLinkedIn, Message: "invalid enrichment endpoint", Cause: err}
	}
	query := endpoint.Query()
	query.Set("url", profileURL)
	endpoint.RawQuery = query.Encode()

	opts := &fetch.Options{
		Timeout:     fetch.DefaultTimeout,
		UserAgent:   fetch.DefaultUserAgent,
		BearerToken: e.APIKey,
		Headers:     map[string]string{"Accept": "application/json"},
		Client:      e.HTTPClient,
	}

	var resp enrichResponse
	if err := fetch.JSON(ctx, endpoint.String(), opts, &resp); err != nil {
		upstream := &types.UpstreamError{
			Service: types.ServiceLinkedIn,
			Message: "failed to fetch LinkedIn profile",
			Cause:   err,
		}
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			upstream.StatusCode = fetchErr.StatusCode
		}
		return nil, upstream
	}

	profile := &types.ProfileData{
		Source: types.SourceLinkedIn,
		Name:   joinName(resp.FirstName, resp.LastName),
		Title:  resp.Headline,
		About:  resp.Summary,
		Skills: resp.Skills,
	}
	if profile.Name == "" {
		profile.Name = strings.TrimSpace(resp.FullName)
	}
	if profile.Name == "" {
		return nil, &types.UpstreamError{Service: types.ServiceLinkedIn, Message: "enrichment response has no profile name"}
	}

	for _, exp := range resp.Experiences {
		profile.Experience = append(profile.Experience, types.Experience{
			Title:       exp.Title,
			Company:     exp.Company,
			Duration:    yearRange(exp.StartsAt, exp.EndsAt),
			Description: exp.Description,
		})
	}
	for _, edu := range resp.Education {
		profile.Education = append(profile.Education, types.Education{
			Institution: edu.School,
			Degree:      edu.DegreeName,
			Years:       yearRange(edu.StartsAt, edu.EndsAt),
		})
	}

	return profile, nil
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// yearRange renders "start - end", with a missing end shown as Present
func yearRange(start, end *enrichDate) string {
	if start == nil || start.Year == 0 {
		return ""
	}
	if end == nil || end.Year == 0 {
		return fmt.Sprintf("%d - Present", start.Year)
	}
	return fmt.Sprintf("%d - %d", start.Year, end.Year)
}
