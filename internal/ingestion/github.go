package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/portfolio-builder/internal/fetch"
	"github.com/jonathan/portfolio-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultGitHubAPIURL is the public GitHub REST API base URL
const DefaultGitHubAPIURL = "https://api.github.com"

const (
	// repoPageSize is how many recently updated repositories are requested
	repoPageSize = 10
	// maxRepositories is how many non-fork repositories are kept
	maxRepositories = 6
)

// GitHubClient fetches a user profile and repositories from the GitHub REST API.
type GitHubClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Verbose    bool
}

// NewGitHubClient creates a client. An empty baseURL uses DefaultGitHubAPIURL.
func NewGitHubClient(baseURL, token string) *GitHubClient {
	if baseURL == "" {
		baseURL = DefaultGitHubAPIURL
	}
	return &GitHubClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
	}
}

type gitHubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Company     string `json:"company"`
	Blog        string `json:"blog"`
	Twitter     string `json:"twitter_username"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at"`
	HTMLURL     string `json:"html_url"`
}

type gitHubRepo struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HTMLURL     string  `json:"html_url"`
	Stars       int     `json:"stargazers_count"`
	Forks       int     `json:"forks_count"`
	Language    *string `json:"language"`
	Fork        bool    `json:"fork"`
}

// FetchProfile issues the user and repository lookups concurrently and
// normalizes them into a github ProfileData.
func (c *GitHubClient) FetchProfile(ctx context.Context, username string) (*types.ProfileData, error) {
	escaped := url.PathEscape(username)
	userURL := fmt.Sprintf("%s/users/%s", c.BaseURL, escaped)
	reposURL := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", c.BaseURL, escaped, repoPageSize)

	opts := &fetch.Options{
		Timeout:     fetch.DefaultTimeout,
		UserAgent:   fetch.DefaultUserAgent,
		BearerToken: c.Token,
		Headers:     map[string]string{"Accept": "application/vnd.github.v3+json"},
		Client:      c.HTTPClient,
	}

	if c.Verbose {
		log.Printf("[VERBOSE] Fetching GitHub profile for %s", username)
	}

	var user gitHubUser
	var repos []gitHubRepo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := fetch.JSON(gctx, userURL, opts, &user); err != nil {
			return upstreamFromFetch("failed to fetch GitHub user", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := fetch.JSON(gctx, reposURL, opts, &repos); err != nil {
			return upstreamFromFetch("failed to fetch GitHub repositories", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile := normalizeGitHub(username, &user, repos)
	if c.Verbose {
		log.Printf("[VERBOSE] GitHub profile for %s: %d repositories, %d languages",
			username, len(profile.Repositories), len(profile.Languages))
	}
	return profile, nil
}

// normalizeGitHub drops forks, keeps the first maxRepositories, and derives the language set
func normalizeGitHub(username string, user *gitHubUser, repos []gitHubRepo) *types.ProfileData {
	kept := make([]types.Repository, 0, maxRepositories)
	for _, r := range repos {
		if r.Fork {
			continue
		}
		if len(kept) == maxRepositories {
			break
		}
		repo := types.Repository{
			Name:     r.Name,
			URL:      r.HTMLURL,
			Stars:    r.Stars,
			Forks:    r.Forks,
			Language: types.NotSpecified,
		}
		if r.Description != nil {
			repo.Description = *r.Description
		}
		if r.Language != nil && *r.Language != "" {
			repo.Language = *r.Language
		}
		kept = append(kept, repo)
	}

	languages := make([]string, 0, len(kept))
	seen := make(map[string]bool, len(kept))
	for _, r := range kept {
		if r.Language == types.NotSpecified || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		languages = append(languages, r.Language)
	}

	name := user.Name
	if name == "" {
		name = username
	}
	login := user.Login
	if login == "" {
		login = username
	}

	return &types.ProfileData{
		Source:       types.SourceGitHub,
		Name:         name,
		Username:     login,
		AvatarURL:    user.AvatarURL,
		Bio:          user.Bio,
		Location:     user.Location,
		Company:      user.Company,
		Blog:         user.Blog,
		Twitter:      user.Twitter,
		GitHubURL:    user.HTMLURL,
		Followers:    user.Followers,
		Following:    user.Following,
		PublicRepos:  user.PublicRepos,
		Repositories: kept,
		Languages:    languages,
		Skills:       languages,
		Joined:       joinedYear(user.CreatedAt),
	}
}

func joinedYear(createdAt string) int {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return 0
	}
	return t.Year()
}

// upstreamFromFetch converts a fetch failure into an UpstreamError for the github service
func upstreamFromFetch(message string, err error) error {
	upstream := &types.UpstreamError{
		Service: types.ServiceGitHub,
		Message: message,
		Cause:   err,
	}
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		upstream.StatusCode = fetchErr.StatusCode
	}
	return upstream
}
