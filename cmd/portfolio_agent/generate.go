package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a portfolio website from a profile source",
	Long: `Generate a single-file HTML portfolio. Exactly one source is used, in priority order:
--github, --linkedin-export, --linkedin-url, --resume/--resume-text, then the manual fields.`,
	RunE: runGenerate,
}

var (
	genGitHub         string
	genLinkedInURL    string
	genLinkedInExport string
	genResumeFile     string
	genResumeText     string
	genName           string
	genTitle          string
	genAbout          string
	genJobTitle       string
	genJobPeriod      string
	genJobDescription string
	genOutputFile     string
)

func init() {
	generateCmd.Flags().StringVar(&genGitHub, "github", "", "GitHub username")
	generateCmd.Flags().StringVar(&genLinkedInURL, "linkedin-url", "", "LinkedIn profile URL")
	generateCmd.Flags().StringVar(&genLinkedInExport, "linkedin-export", "", "Path to LinkedIn data export (JSON or CSV)")
	generateCmd.Flags().StringVarP(&genResumeFile, "resume", "r", "", "Path to résumé file (txt, md, pdf, docx)")
	generateCmd.Flags().StringVar(&genResumeText, "resume-text", "", "Résumé text")
	generateCmd.Flags().StringVar(&genName, "name", "", "Full name (manual entry)")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "Professional title (manual entry)")
	generateCmd.Flags().StringVar(&genAbout, "about", "", "About text (manual entry)")
	generateCmd.Flags().StringVar(&genJobTitle, "job-title", "", "Current job title (manual entry)")
	generateCmd.Flags().StringVar(&genJobPeriod, "job-period", "", "Current job period (manual entry)")
	generateCmd.Flags().StringVar(&genJobDescription, "job-description", "", "Current job description (manual entry)")
	generateCmd.Flags().StringVarP(&genOutputFile, "out", "o", "portfolio.html", "Path to output HTML file; metadata is written alongside as .json")

	rootCmd.AddCommand(generateCmd)
}

// buildGenerateRequest assembles a request from flags, reading any file inputs
func buildGenerateRequest() (*types.GenerateRequest, error) {
	req := &types.GenerateRequest{
		GitHubUsername: genGitHub,
		LinkedInURL:    genLinkedInURL,
		ResumeText:     genResumeText,
		Name:           genName,
		Title:          genTitle,
		About:          genAbout,
		JobTitle:       genJobTitle,
		JobPeriod:      genJobPeriod,
		JobDescription: genJobDescription,
	}

	if genLinkedInExport != "" {
		content, err := os.ReadFile(genLinkedInExport)
		if err != nil {
			return nil, fmt.Errorf("failed to read LinkedIn export: %w", err)
		}
		// JSON exports pass through as-is; CSV travels as a JSON string
		if json.Valid(content) {
			req.LinkedInData = content
		} else {
			encoded, err := json.Marshal(string(content))
			if err != nil {
				return nil, fmt.Errorf("failed to encode LinkedIn export: %w", err)
			}
			req.LinkedInData = encoded
		}
	}

	if genResumeFile != "" {
		text, err := ingestion.ReadResumeFile(genResumeFile)
		if err != nil {
			return nil, err
		}
		req.ResumeText = text
	}

	return req, nil
}

// metadataPath returns the sidecar path for an HTML output file
func metadataPath(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".json"
}

// writeGeneration writes the HTML and its metadata sidecar
func writeGeneration(htmlPath string, result *types.GenerationResult) error {
	if err := os.MkdirAll(filepath.Dir(htmlPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(htmlPath, []byte(result.HTML), 0o644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	data, err := json.MarshalIndent(result.Metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metadataPath(htmlPath), data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req, err := buildGenerateRequest()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, client, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := svc.Validator.ValidateGenerate(req); err != nil {
		return err
	}
	input, err := ingestion.ResolveInput(req)
	if err != nil {
		return err
	}
	profile, err := svc.Normalizer.Normalize(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to load %s profile: %w", input.Kind, err)
	}

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		printer.PrintProfile(profile)
	}

	result, err := svc.GenerateFromProfile(ctx, profile)
	if err != nil {
		return err
	}

	if err := schemas.ValidateMetadata(result.Metadata); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := writeGeneration(genOutputFile, result); err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintResult(result)
		if summary, err := rendering.Inspect(result.HTML); err == nil {
			printer.PrintSummary(summary)
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	fmt.Printf("Successfully generated portfolio for %s\n", result.Metadata.Name)
	fmt.Printf("  HTML:     %s\n", genOutputFile)
	fmt.Printf("  Metadata: %s\n", metadataPath(genOutputFile))
	return nil
}
