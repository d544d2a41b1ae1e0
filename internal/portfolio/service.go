// Package portfolio orchestrates the generate and update pipelines:
// validate, normalize the profile source, prompt the completion service
// under a deadline, then extract, sanitize, and summarize the HTML.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/portfolio-builder/internal/generation"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/metadata"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/jonathan/portfolio-builder/internal/validation"
)

// DefaultTimeout is the wall-clock limit for a single completion call
const DefaultTimeout = 60 * time.Second

// DemoWarning is attached to results built from illustrative LinkedIn data
const DemoWarning = "linkedin profile is illustrative demo data; connect an enrichment provider"

// ProgressEvent reports a pipeline step
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Service runs the generate and update pipelines.
type Service struct {
	Validator       *validation.Validator
	Normalizer      *ingestion.Normalizer
	LLM             llm.Client
	GenerateTimeout time.Duration
	UpdateTimeout   time.Duration
	Verbose         bool
	OnProgress      ProgressCallback

	now func() time.Time
}

// NewService creates a Service with default timeouts
func NewService(validator *validation.Validator, normalizer *ingestion.Normalizer, client llm.Client) *Service {
	if validator == nil {
		validator = validation.New(0)
	}
	if normalizer == nil {
		normalizer = ingestion.NewNormalizer(nil, nil)
	}
	return &Service{
		Validator:       validator,
		Normalizer:      normalizer,
		LLM:             client,
		GenerateTimeout: DefaultTimeout,
		UpdateTimeout:   DefaultTimeout,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) emit(progress ProgressCallback, step, message string) {
	if s.Verbose {
		log.Printf("[VERBOSE] [%s] %s", step, message)
	}
	if progress != nil {
		progress(ProgressEvent{Step: step, Message: message})
	}
}

// Generate validates req, normalizes the chosen source, and builds a portfolio.
// Validation and format errors are returned before any network call.
func (s *Service) Generate(ctx context.Context, req *types.GenerateRequest) (*types.GenerationResult, error) {
	return s.GenerateWithProgress(ctx, req, s.OnProgress)
}

// GenerateWithProgress is Generate with a per-call progress callback.
func (s *Service) GenerateWithProgress(ctx context.Context, req *types.GenerateRequest, progress ProgressCallback) (*types.GenerationResult, error) {
	if err := s.Validator.ValidateGenerate(req); err != nil {
		return nil, err
	}

	input, err := ingestion.ResolveInput(req)
	if err != nil {
		return nil, err
	}
	s.emit(progress, "ingest", fmt.Sprintf("Using %s input", input.Kind))

	profile, err := s.Normalizer.Normalize(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s profile: %w", input.Kind, err)
	}

	return s.generateFromProfile(ctx, profile, progress)
}

// GenerateFromProfile runs prompt building, completion, extraction, and
// metadata derivation for an already normalized profile.
func (s *Service) GenerateFromProfile(ctx context.Context, profile *types.ProfileData) (*types.GenerationResult, error) {
	return s.generateFromProfile(ctx, profile, s.OnProgress)
}

func (s *Service) generateFromProfile(ctx context.Context, profile *types.ProfileData, progress ProgressCallback) (*types.GenerationResult, error) {
	prompt, err := generation.BuildPrompt(profile)
	if err != nil {
		return nil, err
	}
	s.emit(progress, "prompt", fmt.Sprintf("Built %s prompt (%d chars)", profile.Source, len(prompt)))

	raw, err := s.complete(ctx, "portfolio generation", s.GenerateTimeout, &llm.Request{
		System:  generation.SystemPrompt(),
		Prompt:  prompt,
		Purpose: llm.PurposeGenerate,
	})
	if err != nil {
		return nil, err
	}
	s.emit(progress, "complete", fmt.Sprintf("Received %d chars from completion service", len(raw)))

	html := rendering.SanitizeHTML(rendering.ExtractHTML(raw))

	result := &types.GenerationResult{
		HTML:     html,
		Metadata: metadata.DeriveAt(html, profile, s.now()),
		Demo:     profile.Demo,
	}

	for _, warning := range rendering.CheckStructure(html) {
		log.Printf("[WARN] [generate] generated HTML may be incomplete: %s", warning)
		result.Warnings = append(result.Warnings, warning)
	}
	if profile.Demo {
		result.Warnings = append(result.Warnings, DemoWarning)
	}

	s.emit(progress, "metadata", fmt.Sprintf("Derived metadata for %q", result.Metadata.Name))
	return result, nil
}

// Update applies a chat instruction to existing HTML. Scripts are kept.
func (s *Service) Update(ctx context.Context, req *types.UpdateRequest) (*types.UpdateResult, error) {
	if err := s.Validator.ValidateUpdate(req); err != nil {
		return nil, err
	}

	raw, err := s.complete(ctx, "portfolio update", s.UpdateTimeout, &llm.Request{
		System:  generation.UpdateSystemPrompt(),
		Prompt:  generation.BuildUpdatePrompt(req.Message, req.CurrentCode),
		Purpose: llm.PurposeUpdate,
	})
	if err != nil {
		return nil, err
	}

	return &types.UpdateResult{
		UpdatedCode: rendering.ExtractAnyFence(raw),
		AIMessage:   generation.ChangeSummary(req.Message),
	}, nil
}

type completion struct {
	text string
	err  error
}

// complete races the completion call against timeout. On timeout the call
// is abandoned and a TimeoutError is returned even if the client ignores
// cancellation.
func (s *Service) complete(ctx context.Context, operation string, timeout time.Duration, req *llm.Request) (string, error) {
	if s.LLM == nil {
		return "", fmt.Errorf("no completion client configured")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan completion, 1)
	go func() {
		text, err := s.LLM.Complete(callCtx, req)
		done <- completion{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", &types.TimeoutError{Operation: operation, After: timeout}
		}
		return r.text, r.err
	case <-callCtx.Done():
		if err := ctx.Err(); err != nil {
			return "", err
		}
		log.Printf("[%s] completion timed out after %s", operation, timeout)
		return "", &types.TimeoutError{Operation: operation, After: timeout}
	}
}
