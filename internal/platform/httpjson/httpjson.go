// Package httpjson holds shared helpers for the JSON surfaces exposed by
// the catalog and translation services. Centralizing the envelope keeps
// error bodies identical across service boundaries.
package httpjson

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// maxRequestBodyBytes caps how much of a request body a handler will read.
const maxRequestBodyBytes = 1 << 20

// ErrorBody is the wire form of an error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps ErrorBody under the top-level "error" key.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Write encodes payload as JSON with the given status code.
func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

// WriteError writes the shared error envelope with the given status code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, ErrorEnvelope{Error: ErrorBody{Code: code, Message: message}})
}

// MethodNotAllowed sets the Allow header and writes a 405 envelope.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// Decode reads a JSON request body into dst. The body size is capped so a
// misbehaving client cannot hold a handler open indefinitely.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
