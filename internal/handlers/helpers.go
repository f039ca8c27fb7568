package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/benvon/trackme/internal/logger"
	"github.com/benvon/trackme/internal/store"
	"github.com/benvon/trackme/internal/telemetry"
	"github.com/benvon/trackme/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// sanitizeErrorMessage truncates messages so internal detail stays bounded
func sanitizeErrorMessage(message string) string {
	if len(message) > 200 {
		return message[:200] + "..."
	}
	return message
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   sanitizeErrorMessage(message),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondStoreError maps store errors to status codes. Unexpected errors are
// logged and reported without detail.
func respondStoreError(w http.ResponseWriter, log *zap.Logger, err error, resource, id string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondJSONError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("%s not found", resource))
	case errors.Is(err, store.ErrInvalid):
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		log.Error("store_operation_failed",
			zap.String("resource", resource),
			zap.String("id", logger.SanitizeID(id)),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", fmt.Sprintf("Failed to save %s", resource))
	}
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
// Unknown fields and mistyped values are rejected.
func decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return validation.Struct(dst)
}

// pathID returns the {id} route variable
func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

// sanitizePatchText cleans the text fields of a patch in place. nil fields
// are not being patched. The named field may not be blank after cleaning.
func sanitizePatchText(name string, required *string, optional ...*string) error {
	if required != nil {
		*required = validation.SanitizeText(*required)
		if *required == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}
	for _, v := range optional {
		if v != nil {
			*v = validation.SanitizeText(*v)
		}
	}
	return nil
}

// numberInput accepts a JSON number or a numeric string. Anything else is an
// error rather than zero.
type numberInput float64

func (n *numberInput) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = s
	}
	v, err := validation.ParseNumber(raw)
	if err != nil {
		return err
	}
	*n = numberInput(v)
	return nil
}

// float returns the value as a *float64, nil when n is nil
func (n *numberInput) float() *float64 {
	if n == nil {
		return nil
	}
	v := float64(*n)
	return &v
}

// traced runs fn inside a store span named after operation
func traced(ctx context.Context, collection, operation string, fn func(context.Context) error) error {
	ctx, span := telemetry.StartStoreSpan(ctx, collection, operation)
	err := fn(ctx)
	telemetry.EndSpan(span, err)
	return err
}
