package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/validation"
)

// loadConfig resolves the layered configuration and applies --verbose
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// llmConfig maps the application config onto provider model settings
func llmConfig(cfg *config.Config) *llm.Config {
	lc := llm.DefaultConfigFor(llm.Provider(cfg.LLMProvider))
	if cfg.LLMBaseURL != "" {
		lc.BaseURL = cfg.LLMBaseURL
	}
	if cfg.GenerateModel != "" {
		lc = lc.WithModel(llm.PurposeGenerate, cfg.GenerateModel)
	}
	if cfg.UpdateModel != "" {
		lc = lc.WithModel(llm.PurposeUpdate, cfg.UpdateModel)
	}
	return lc
}

// newNormalizer builds the profile sources from config
func newNormalizer(cfg *config.Config) *ingestion.Normalizer {
	github := ingestion.NewGitHubClient(cfg.GitHubAPIURL, cfg.GitHubToken)
	github.Verbose = cfg.Verbose

	var linkedIn ingestion.LinkedInEnricher
	if cfg.LinkedInProvider == "http" {
		linkedIn = ingestion.NewHTTPLinkedInEnricher(cfg.LinkedInEnrichURL, cfg.LinkedInEnrichAPIKey)
	}
	return ingestion.NewNormalizer(github, linkedIn)
}

// newService wires the completion client, validator, and normalizer.
// The caller must Close the returned client.
func newService(ctx context.Context, cfg *config.Config) (*portfolio.Service, llm.Client, error) {
	if cfg.LLMAPIKey == "" {
		return nil, nil, fmt.Errorf("LLM API key is required (set LLM_API_KEY or the provider's key variable)")
	}

	client, err := llm.NewClient(ctx, llmConfig(cfg), cfg.LLMAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	svc := portfolio.NewService(validation.New(cfg.MaxResumeLength), newNormalizer(cfg), client)
	svc.GenerateTimeout = time.Duration(cfg.GenerationTimeout)
	svc.UpdateTimeout = time.Duration(cfg.UpdateTimeout)
	svc.Verbose = cfg.Verbose
	return svc, client, nil
}
