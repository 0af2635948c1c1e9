// Package handlers holds response helpers shared by every HTTP handler
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Decode failures, callers map them to 400 or 413
var (
	ErrEmptyBody     = errors.New("request body is empty")
	ErrMalformedBody = errors.New("invalid request body")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response, data may be nil for an empty body
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err), zap.Int("status", status))
	}
}

// RespondError sends {"error": message}
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondValidationError sends 400 with a message per invalid field
func (h *BaseHandler) RespondValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	h.RespondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  message,
		"fields": fields,
	})
}

// DecodeJSON decodes exactly one JSON value from the body into dst.
// Unknown fields and trailing data are rejected.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return classifyDecodeError(err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after the JSON value", ErrMalformedBody)
	}
	return nil
}

// BodyTooLarge reports whether err comes from a body cut by http.MaxBytesReader
func BodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || errors.Is(err, ErrBodyTooLarge)
}

func classifyDecodeError(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	case BodyTooLarge(err):
		return fmt.Errorf("%w: %w", ErrBodyTooLarge, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
}
