package utils

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError replies with an [ErrorResponse]. field names the offending
// input for validation failures and may be empty.
func WriteError(w http.ResponseWriter, message, field string, statusCode int) {
	_, _ = WriteJSON(w, ErrorResponse{Error: message, Field: field}, statusCode)
}

// WriteAttachment sends body as a downloadable file.
func WriteAttachment(w http.ResponseWriter, fileName, contentType string, body []byte) (int, error) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)

	return w.Write(body)
}
