// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses and standardized error responses.
package response

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse represents a structured error response returned by the API.
// Success is always false so clients can branch on one field for every reply.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// encodeFailure is written when a response body cannot be encoded.
const encodeFailure = `{"success":false,"error":"failed to encode response"}` + "\n"

// RespondJSON sends a JSON response with the given status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// The body is encoded before the header is written; data that cannot be
// encoded is logged and answered with 500 Internal Server Error.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.WriteHeader(status)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailure))
		return
	}

	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// RespondError sends a structured error response with the given status code.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "lot not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
