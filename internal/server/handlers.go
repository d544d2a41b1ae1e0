package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// GenerateResponse is the body returned by /generate
type GenerateResponse struct {
	Success  bool           `json:"success"`
	Code     string         `json:"code"`
	Metadata types.Metadata `json:"metadata"`
	Warnings []string       `json:"warnings,omitempty"`
}

// UpdateResponse is the body returned by /update
type UpdateResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResumeTextResponse is the body returned by /resume/pdf
type ResumeTextResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// decodeJSON reads a bounded JSON body into v
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &types.ValidationError{Message: fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit)}
		}
		return &types.ValidationError{Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

// failure logs err and writes the classified error body
func (s *Server) failure(w http.ResponseWriter, r *http.Request, op Operation, err error) {
	c := Classify(op, err)
	log.Printf("[%s] %s failed (%d, %s): %v", op, r.URL.Path, c.Status, requestID(r), err)
	s.jsonResponse(w, c.Status, ErrorResponse{Success: false, Message: c.Message, Error: c.Detail})
}

// handleGenerate builds a portfolio from one profile source
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, OpGenerate, err)
		return
	}

	result, err := s.service.Generate(r.Context(), &req)
	if err != nil {
		s.failure(w, r, OpGenerate, err)
		return
	}

	s.checkMetadata(result.Metadata)
	if result.Demo {
		w.Header().Set("X-Profile-Demo", "true")
	}

	s.jsonResponse(w, http.StatusOK, generateResponse(result))
}

func generateResponse(result *types.GenerationResult) GenerateResponse {
	return GenerateResponse{
		Success:  true,
		Code:     result.HTML,
		Metadata: result.Metadata,
		Warnings: result.Warnings,
	}
}

// checkMetadata logs metadata that would not be accepted by /publish
func (s *Server) checkMetadata(md types.Metadata) {
	if err := schemas.ValidateMetadata(md); err != nil {
		log.Printf("[WARN] [generate] metadata does not match schema: %v", err)
	}
}

// handleUpdate applies a chat instruction to existing portfolio HTML
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, OpUpdate, err)
		return
	}

	result, err := s.service.Update(r.Context(), &req)
	if err != nil {
		s.failure(w, r, OpUpdate, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, UpdateResponse{
		Success: true,
		Code:    result.UpdatedCode,
		Message: result.AIMessage,
	})
}

// handleResumeFile extracts text from an uploaded PDF, DOCX, or text résumé.
// The multipart field is "file".
func (s *Server) handleResumeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.failure(w, r, OpResume, &types.ValidationError{Field: "file", Message: "A resume file upload is required"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.failure(w, r, OpResume, &types.ValidationError{Field: "file", Message: "A resume file upload is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.failure(w, r, OpResume, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	text, err := ingestion.ExtractResumeText(header.Filename, data)
	if err != nil {
		s.failure(w, r, OpResume, err)
		return
	}

	if limit := s.service.Validator.MaxResumeLength(); len([]rune(text)) > limit {
		log.Printf("[WARN] [resume] extracted text from %s exceeds %d characters", header.Filename, limit)
	}

	s.jsonResponse(w, http.StatusOK, ResumeTextResponse{Success: true, Text: text})
}
