package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Apply a requested change to an existing portfolio",
	RunE:  runUpdate,
}

var (
	updateInputFile  string
	updateMessage    string
	updateOutputFile string
)

func init() {
	updateCmd.Flags().StringVarP(&updateInputFile, "in", "i", "", "Path to current portfolio HTML (required)")
	updateCmd.Flags().StringVarP(&updateMessage, "message", "m", "", "Requested change (required)")
	updateCmd.Flags().StringVarP(&updateOutputFile, "out", "o", "", "Path to output HTML file (defaults to overwriting --in)")

	if err := updateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := updateCmd.MarkFlagRequired("message"); err != nil {
		panic(fmt.Sprintf("failed to mark message flag as required: %v", err))
	}

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	current, err := os.ReadFile(updateInputFile)
	if err != nil {
		return fmt.Errorf("failed to read portfolio file: %w", err)
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

	result, err := svc.Update(ctx, &types.UpdateRequest{Message: updateMessage, CurrentCode: string(current)})
	if err != nil {
		return err
	}

	out := updateOutputFile
	if out == "" {
		out = updateInputFile
	}
	if err := os.WriteFile(out, []byte(result.UpdatedCode), 0o644); err != nil {
		return fmt.Errorf("failed to write updated portfolio: %w", err)
	}

	fmt.Println(result.AIMessage)
	fmt.Printf("  HTML: %s\n", out)
	return nil
}
