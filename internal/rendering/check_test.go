package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckStructure(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		warnings []string
	}{
		{name: "complete", html: "<!DOCTYPE html><HTML lang=\"en\"><Body></BODY></html>", warnings: nil},
		{name: "fragment", html: "<div>hi</div>", warnings: []string{
			"missing <html> tag", "missing <body> tag", "missing </body> closing tag", "missing </html> closing tag",
		}},
		{name: "unclosed", html: "<html><body><p>x</p>", warnings: []string{
			"missing </body> closing tag", "missing </html> closing tag",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.warnings, CheckStructure(tt.html))
			assert.Equal(t, len(tt.warnings) == 0, IsValidHTML(tt.html))
		})
	}
}
