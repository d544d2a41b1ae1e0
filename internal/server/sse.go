package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event carrying the classified status
func (s *SSEWriter) WriteError(c Classified) {
	s.WriteEvent("error", map[string]any{ //nolint:errcheck
		"success": false,
		"status":  c.Status,
		"message": c.Message,
		"error":   c.Detail,
	})
}

// WriteComplete sends the final generation result
func (s *SSEWriter) WriteComplete(resp GenerateResponse) {
	s.WriteEvent("complete", resp) //nolint:errcheck
}

// handleGenerateStream runs generation and streams progress via SSE.
// Validation failures are returned as plain JSON before the stream opens.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, OpGenerate, err)
		return
	}
	if err := s.service.Validator.ValidateGenerate(&req); err != nil {
		s.failure(w, r, OpGenerate, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.service.GenerateWithProgress(r.Context(), &req, func(event portfolio.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	if err != nil {
		c := Classify(OpGenerate, err)
		log.Printf("[generate] stream failed (%d, %s): %v", c.Status, requestID(r), err)
		sse.WriteError(c)
		return
	}

	s.checkMetadata(result.Metadata)
	sse.WriteComplete(generateResponse(result))
}
