package rendering

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Export formats
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// DefaultExportTimeout bounds a single headless render
const DefaultExportTimeout = 60 * time.Second

// Exporter renders portfolio HTML in headless Chrome.
// Requires Chrome/Chromium on the host; CHROME_PATH overrides the binary.
type Exporter struct {
	Timeout time.Duration
	Verbose bool
}

// NewExporter creates an Exporter with the default timeout
func NewExporter() *Exporter {
	return &Exporter{Timeout: DefaultExportTimeout}
}

// ParseFormat normalizes a format name or file extension
func ParseFormat(s string) (string, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case FormatPDF:
		return FormatPDF, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want pdf or png)", s)
	}
}

// Export renders html to the requested format and returns the file bytes.
func (e *Exporter) Export(ctx context.Context, html, format string) ([]byte, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultExportTimeout
	}

	tmpDir, err := os.MkdirTemp("", "portfolio-")
	if err != nil {
		return nil, &RenderError{Format: format, Message: "failed to create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Format: format, Message: "failed to write HTML", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if e.Verbose {
		log.Printf("[BROWSER] Rendering %d bytes of HTML to %s", len(html), format)
	}

	var out []byte
	var capture chromedp.Action
	switch format {
	case FormatPDF:
		capture = chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27 x 11.69 inches
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		})
	default:
		capture = chromedp.FullScreenshot(&out, 100)
	}

	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1280, 800),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		capture,
	)
	if err != nil {
		return nil, &RenderError{Format: format, Message: "browser rendering failed", Cause: err}
	}

	if e.Verbose {
		log.Printf("[BROWSER] Rendered %s: %d bytes", format, len(out))
	}
	return out, nil
}
