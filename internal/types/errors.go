package types

import (
	"fmt"
	"time"
)

// ValidationError indicates client input violated a presence, size, or format rule
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Service names used in UpstreamError
const (
	ServiceGitHub     = "github"
	ServiceLinkedIn   = "linkedin"
	ServiceCompletion = "completion"
)

// UpstreamError indicates a third-party service returned a failure or an unusable payload
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s upstream error: %s", e.Service, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// IsSource reports whether the failing service is a profile source rather than the completion service
func (e *UpstreamError) IsSource() bool {
	return e.Service == ServiceGitHub || e.Service == ServiceLinkedIn
}

// TimeoutError indicates an operation exceeded its wall-clock deadline
type TimeoutError struct {
	Operation string
	After     time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.After)
}

// ParseError indicates malformed export or upload content
type ParseError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
