package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// ErrSlugTaken indicates the requested publish slug is already in use
type ErrSlugTaken struct {
	Slug string
}

func (e *ErrSlugTaken) Error() string {
	return "slug already taken: " + e.Slug
}

// Operation names the pipeline an error came from; it selects the fallback message.
type Operation string

// Operations
const (
	OpGenerate Operation = "generate"
	OpUpdate   Operation = "update"
	OpPublish  Operation = "publish"
	OpResume   Operation = "resume"
)

// Classified is the client-facing form of an error
type Classified struct {
	Status  int
	Message string
	// Detail is the raw error text, attached for upstream and unclassified failures
	Detail string
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	return Classify(OpGenerate, err).Status
}

// Classify maps an error to a status and user-facing message.
func Classify(op Operation, err error) Classified {
	var (
		validationErr *types.ValidationError
		timeoutErr    *types.TimeoutError
		upstreamErr   *types.UpstreamError
		parseErr      *types.ParseError
		slugErr       *ErrSlugTaken
	)

	switch {
	case errors.As(err, &validationErr):
		return Classified{Status: http.StatusBadRequest, Message: validationErr.Message}
	case errors.As(err, &slugErr):
		return Classified{Status: http.StatusConflict, Message: "This URL is already taken. Please choose another one."}
	case errors.As(err, &timeoutErr):
		if op == OpUpdate {
			return Classified{Status: http.StatusRequestTimeout, Message: "Portfolio update timed out. Please try a smaller change."}
		}
		return Classified{Status: http.StatusRequestTimeout, Message: "Portfolio generation timed out. Please try with shorter text or fewer details."}
	case errors.As(err, &upstreamErr):
		switch upstreamErr.Service {
		case types.ServiceGitHub:
			return Classified{
				Status:  http.StatusUnprocessableEntity,
				Message: "Could not extract profile from GitHub. Please verify your username is correct or try another input method.",
				Detail:  err.Error(),
			}
		case types.ServiceLinkedIn:
			return linkedInFailure(err)
		default:
			return Classified{
				Status:  http.StatusServiceUnavailable,
				Message: "Error connecting to AI service. Please try again later.",
				Detail:  err.Error(),
			}
		}
	case errors.As(err, &parseErr):
		if op == OpResume {
			return Classified{
				Status:  http.StatusUnprocessableEntity,
				Message: "Could not extract text from the uploaded file. Please paste your resume text instead.",
				Detail:  err.Error(),
			}
		}
		return linkedInFailure(err)
	}

	return Classified{Status: http.StatusInternalServerError, Message: fallbackMessage(op), Detail: err.Error()}
}

func linkedInFailure(err error) Classified {
	return Classified{
		Status:  http.StatusUnprocessableEntity,
		Message: "Could not extract profile from LinkedIn. Please try pasting your resume text instead.",
		Detail:  err.Error(),
	}
}

func fallbackMessage(op Operation) string {
	switch op {
	case OpUpdate:
		return "Error updating portfolio"
	case OpPublish:
		return "Failed to publish portfolio"
	case OpResume:
		return "Error reading resume file"
	default:
		return "Error generating portfolio"
	}
}
