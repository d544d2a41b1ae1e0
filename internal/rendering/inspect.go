package rendering

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Summary describes a portfolio document's outline
type Summary struct {
	Title    string
	Sections int
	Headings []string
	Links    int
}

// Inspect parses html and summarizes its outline. The document title falls
// back to the first h1 when <title> is empty.
func Inspect(html string) (*Summary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	summary := &Summary{
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Sections: doc.Find("section").Length(),
		Links:    doc.Find("a[href]").Length(),
	}
	if summary.Title == "" {
		summary.Title = collapseSpace(doc.Find("h1").First().Text())
	}

	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpace(s.Text()); text != "" {
			summary.Headings = append(summary.Headings, text)
		}
	})

	return summary, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
