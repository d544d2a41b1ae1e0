package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		op         Operation
		err        error
		wantStatus int
		wantMsg    string
		wantDetail bool
	}{
		{
			name:       "validation",
			op:         OpGenerate,
			err:        &types.ValidationError{Field: "githubUsername", Message: "Invalid GitHub username format"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid GitHub username format",
		},
		{
			name:       "generate timeout",
			op:         OpGenerate,
			err:        &types.TimeoutError{Operation: "portfolio generation", After: time.Minute},
			wantStatus: http.StatusRequestTimeout,
			wantMsg:    "Portfolio generation timed out. Please try with shorter text or fewer details.",
		},
		{
			name:       "update timeout",
			op:         OpUpdate,
			err:        &types.TimeoutError{Operation: "portfolio update", After: time.Minute},
			wantStatus: http.StatusRequestTimeout,
			wantMsg:    "Portfolio update timed out. Please try a smaller change.",
		},
		{
			name:       "wrapped github failure",
			op:         OpGenerate,
			err:        fmt.Errorf("failed to load github profile: %w", &types.UpstreamError{Service: types.ServiceGitHub, StatusCode: 404, Message: "not found"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Could not extract profile from GitHub. Please verify your username is correct or try another input method.",
			wantDetail: true,
		},
		{
			name:       "linkedin failure",
			op:         OpGenerate,
			err:        &types.UpstreamError{Service: types.ServiceLinkedIn, Message: "enrichment failed"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Could not extract profile from LinkedIn. Please try pasting your resume text instead.",
			wantDetail: true,
		},
		{
			name:       "linkedin export parse failure",
			op:         OpGenerate,
			err:        &types.ParseError{Format: "csv", Message: "no rows"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Could not extract profile from LinkedIn. Please try pasting your resume text instead.",
			wantDetail: true,
		},
		{
			name:       "resume parse failure",
			op:         OpResume,
			err:        &types.ParseError{Format: "pdf", Message: "corrupt"},
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Could not extract text from the uploaded file. Please paste your resume text instead.",
			wantDetail: true,
		},
		{
			name:       "completion failure",
			op:         OpUpdate,
			err:        &types.UpstreamError{Service: types.ServiceCompletion, StatusCode: 500, Message: "boom"},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Error connecting to AI service. Please try again later.",
			wantDetail: true,
		},
		{
			name:       "slug taken",
			op:         OpPublish,
			err:        &ErrSlugTaken{Slug: "ada"},
			wantStatus: http.StatusConflict,
			wantMsg:    "This URL is already taken. Please choose another one.",
		},
		{
			name:       "unclassified generate",
			op:         OpGenerate,
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Error generating portfolio",
			wantDetail: true,
		},
		{
			name:       "unclassified update",
			op:         OpUpdate,
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Error updating portfolio",
			wantDetail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.op, tt.err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
			if tt.wantDetail {
				assert.Equal(t, tt.err.Error(), got.Detail)
			} else {
				assert.Empty(t, got.Detail)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&types.ValidationError{Message: "x"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
}

func TestErrSlugTaken(t *testing.T) {
	assert.Equal(t, "slug already taken: ada", (&ErrSlugTaken{Slug: "ada"}).Error())
}
