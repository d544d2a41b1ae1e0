// Package rendering turns raw completion text into portfolio HTML and
// renders that HTML to other formats.
package rendering

import "fmt"

// RenderError represents a failure rendering HTML in the headless browser
type RenderError struct {
	Format  string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
