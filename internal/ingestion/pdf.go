package ingestion

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/ledongthuc/pdf"
)

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// ExtractResumeText returns cleaned plain text from an uploaded résumé file.
// The format is chosen by the filename extension: .pdf, .docx, or plain text.
func ExtractResumeText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	case ".txt", ".md", "":
		text = string(data)
	default:
		return "", &types.ParseError{Format: "resume", Message: fmt.Sprintf("unsupported file type %q", filepath.Ext(filename))}
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", &types.ParseError{Format: "resume", Message: "no text could be extracted from file"}
	}
	return text, nil
}

// ReadResumeFile reads a résumé from disk and extracts its text
func ReadResumeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	return ExtractResumeText(path, data)
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &types.ParseError{Format: "pdf", Message: "failed to open PDF", Cause: err}
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", &types.ParseError{Format: "pdf", Message: "failed to extract PDF text", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &types.ParseError{Format: "pdf", Message: "failed to read PDF text", Cause: err}
	}
	return buf.String(), nil
}

func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &types.ParseError{Format: "docx", Message: "failed to open document", Cause: err}
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &types.ParseError{Format: "docx", Message: "failed to open document body", Cause: err}
		}
		body, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", &types.ParseError{Format: "docx", Message: "failed to read document body", Cause: err}
		}

		xml := strings.ReplaceAll(string(body), "</w:p>", "\n")
		xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
		return html.UnescapeString(xmlTagPattern.ReplaceAllString(xml, "")), nil
	}

	return "", &types.ParseError{Format: "docx", Message: "document body not found"}
}
