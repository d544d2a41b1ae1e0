package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/observability"
	"github.com/jonathan/portfolio-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a portfolio to PDF or PNG in headless Chrome",
	RunE:  runExport,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.html>",
	Short: "Print the outline of a portfolio and any structural problems",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var (
	exportInputFile  string
	exportOutputFile string
	exportFormat     string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInputFile, "in", "i", "", "Path to portfolio HTML (required)")
	exportCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Path to output file (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "pdf or png (defaults to the --out extension)")

	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(inspectCmd)
}

// exportFormatFor picks the explicit format or falls back to the output extension
func exportFormatFor(format, outPath string) (string, error) {
	if format == "" {
		format = filepath.Ext(outPath)
	}
	return rendering.ParseFormat(format)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := exportFormatFor(exportFormat, exportOutputFile)
	if err != nil {
		return err
	}

	html, err := os.ReadFile(exportInputFile)
	if err != nil {
		return fmt.Errorf("failed to read portfolio file: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	exporter := rendering.NewExporter()
	exporter.Verbose = verbose
	data, err := exporter.Export(ctx, string(html), format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(exportOutputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", strings.ToUpper(format), err)
	}
	fmt.Printf("Exported %s (%d bytes)\n", exportOutputFile, len(data))
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	html, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read portfolio file: %w", err)
	}

	summary, err := rendering.Inspect(string(html))
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSummary(summary)

	problems := rendering.CheckStructure(string(html))
	for _, p := range problems {
		fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", p)
	}
	return nil
}
