package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/server/middleware"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// SlugChecker reports whether a publish slug is free
type SlugChecker interface {
	SlugAvailable(ctx context.Context, slug string) (bool, error)
}

// ReservedSlugChecker rejects slugs that collide with site routes.
// Nothing is persisted, so every other slug is available.
type ReservedSlugChecker struct {
	Reserved map[string]bool
}

// NewReservedSlugChecker reserves the site's own top-level paths
func NewReservedSlugChecker() *ReservedSlugChecker {
	reserved := map[string]bool{}
	for _, slug := range []string{"api", "admin", "dashboard", "login", "signup", "publish", "generate", "update", "health"} {
		reserved[slug] = true
	}
	return &ReservedSlugChecker{Reserved: reserved}
}

// SlugAvailable implements SlugChecker
func (c *ReservedSlugChecker) SlugAvailable(_ context.Context, slug string) (bool, error) {
	return !c.Reserved[slug], nil
}

// PublishResponse is the body returned by /publish
type PublishResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Data    *types.PublishedPortfolio `json:"data"`
}

// handlePublish validates a portfolio and simulates publishing it.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req types.PublishRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, OpPublish, err)
		return
	}

	published, err := s.publish(r.Context(), &req)
	if err != nil {
		s.failure(w, r, OpPublish, err)
		return
	}

	if subject, err := middleware.GetSubject(r); err == nil {
		log.Printf("[publish] %s published %s as %s", subject, published.URL, published.ID)
	} else {
		log.Printf("[publish] published %s as %s", published.URL, published.ID)
	}

	s.jsonResponse(w, http.StatusOK, PublishResponse{
		Success: true,
		Message: "Portfolio successfully published",
		Data:    published,
	})
}

func (s *Server) publish(ctx context.Context, req *types.PublishRequest) (*types.PublishedPortfolio, error) {
	if err := s.service.Validator.ValidatePublish(req); err != nil {
		return nil, err
	}

	if req.Metadata != nil {
		if err := schemas.ValidateMetadata(*req.Metadata); err != nil {
			log.Printf("[publish] rejected metadata: %v", err)
			return nil, &types.ValidationError{Field: "metadata", Message: "Invalid portfolio metadata"}
		}
	}

	available, err := s.slugChecker.SlugAvailable(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, &ErrSlugTaken{Slug: req.Slug}
	}

	published := &types.PublishedPortfolio{
		ID:          uuid.NewString(),
		Title:       req.Title,
		URL:         strings.TrimRight(s.publishBaseURL, "/") + "/" + req.Slug,
		Visibility:  req.Visibility,
		PublishedAt: s.now().Format(time.RFC3339),
	}
	if req.Domain != "" {
		published.CustomDomain = "https://" + req.Domain
	}

	if summary, err := rendering.Inspect(req.Code); err == nil {
		published.DocumentTitle = summary.Title
		published.Sections = summary.Sections
	} else {
		log.Printf("[WARN] [publish] could not inspect portfolio HTML: %v", err)
	}
	for _, warning := range rendering.CheckStructure(req.Code) {
		log.Printf("[WARN] [publish] portfolio HTML may be incomplete: %s", warning)
	}

	if err := schemas.ValidatePublished(published); err != nil {
		return nil, err
	}
	return published, nil
}
