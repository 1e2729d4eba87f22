package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Error code constants for structured API error responses.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeInternal         = "internal"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyInstalled = "already_installed"
)

// APIError is the structured error body returned by the install service.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a JSON error response with the given HTTP status code.
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Code: code, Message: message}); err != nil {
		s.log.Error("write error response", zap.Error(err))
	}
}

// writeJSON writes a JSON response with the given HTTP status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("write json response", zap.Error(err))
	}
}
