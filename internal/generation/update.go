package generation

import (
	"hash/fnv"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/prompts"
)

// UpdateSystemPrompt returns the system prompt for portfolio edits
func UpdateSystemPrompt() string {
	return prompts.MustGet(prompts.PortfolioFile, "update-system")
}

// BuildUpdatePrompt embeds the current HTML and the requested change
func BuildUpdatePrompt(message, currentCode string) string {
	template := prompts.MustGet(prompts.PortfolioFile, "update-portfolio")
	return prompts.Format(template, map[string]string{
		"CurrentCode": currentCode,
		"Message":     message,
	})
}

// ChangeSummary returns the confirmation shown after an update. The phrasing
// is picked from a fixed set by hashing the request, so the same request
// always gets the same message.
func ChangeSummary(message string) string {
	raw := prompts.MustGet(prompts.PortfolioFile, "update-confirmations")
	templates := strings.Split(raw, "\n")

	h := fnv.New32a()
	_, _ = h.Write([]byte(message))
	template := templates[int(h.Sum32()%uint32(len(templates)))]

	return prompts.Format(template, map[string]string{
		"Message":      message,
		"LowerMessage": strings.ToLower(message),
	})
}
