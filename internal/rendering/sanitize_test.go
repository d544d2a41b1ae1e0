package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML_RemovesScript(t *testing.T) {
	before := `<html><head><title>Ada</title></head><body><h1 class="text-xl">Ada</h1>`
	after := `<p>Analyst</p></body></html>`
	html := before + `<script>alert(1)</script>` + after

	result := SanitizeHTML(html)
	assert.NotContains(t, result, "<script")
	assert.Equal(t, before+after, result)
}

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no scripts", input: "  <p>x</p>\n", expected: "<p>x</p>"},
		{name: "attributes and case", input: `<p>a</p><SCRIPT type="text/javascript" src="x.js"></SCRIPT><p>b</p>`, expected: "<p>a</p><p>b</p>"},
		{name: "multiline body", input: "<p>a</p><script>\nvar x = 1;\nconsole.log(x);\n</script>\n<p>b</p>", expected: "<p>a</p>\n<p>b</p>"},
		{name: "multiple blocks", input: "<script>1</script><p>a</p><script>2</script>", expected: "<p>a</p>"},
		{name: "unterminated", input: "<p>a</p><script>alert(1)", expected: "<p>a</p>alert(1)"},
		{name: "closing with space", input: "<p>a</p><script>x</script ><p>b</p>", expected: "<p>a</p><p>b</p>"},
		{name: "similar tag kept", input: "<noscript>hi</noscript>", expected: "<noscript>hi</noscript>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeHTML(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.NotContains(t, result, "<script")
		})
	}
}
