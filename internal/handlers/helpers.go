package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stormnotes/suite/internal/extract"
	"github.com/stormnotes/suite/internal/services/ai"
	"github.com/stormnotes/suite/internal/services/mail"
	"github.com/stormnotes/suite/internal/workflows"
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

// sanitizeErrorMessage removes internal details from error messages
func sanitizeErrorMessage(message string) string {
	sanitized := message
	if len(sanitized) > 200 {
		sanitized = sanitized[:200] + "..."
	}
	return sanitized
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Sanitize error message to prevent information disclosure
	sanitizedMessage := sanitizeErrorMessage(message)

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   sanitizedMessage,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondWorkflowError maps the typed errors raised at the orchestrator
// boundary to HTTP statuses. Unrecognized errors become a generic 500.
func respondWorkflowError(w http.ResponseWriter, err error) {
	var (
		dupErr    *workflows.DuplicateError
		valErr    *workflows.ValidationError
		attErr    *ai.AttachmentError
		extErr    *extract.ExtractionError
		policyErr *ai.ContentPolicyError
		malErr    *ai.MalformedResponseError
		delErr    *mail.DeliveryError
		apiErr    *ai.APIError
	)

	switch {
	case errors.As(err, &dupErr):
		respondJSONError(w, http.StatusConflict, "Duplicate", dupErr.Error())
	case errors.As(err, &valErr):
		respondJSONError(w, http.StatusBadRequest, "Validation Error", valErr.Error())
	case errors.As(err, &attErr):
		respondJSONError(w, http.StatusBadRequest, "Invalid Attachment", attErr.Error())
	case errors.As(err, &extErr):
		respondJSONError(w, http.StatusUnprocessableEntity, "Extraction Failed", extErr.Error())
	case errors.As(err, &policyErr):
		respondJSONError(w, http.StatusUnprocessableEntity, "Content Policy", "The AI service declined to respond to this content")
	case errors.As(err, &malErr):
		respondJSONError(w, http.StatusBadGateway, "Malformed AI Response", "The AI service returned an unexpected response; please try again")
	case errors.As(err, &delErr):
		respondJSONError(w, http.StatusBadGateway, "Delivery Failed", delErr.Error())
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests:
		respondJSONError(w, http.StatusTooManyRequests, "AI Quota Exceeded", "The AI service rate limit was hit; please retry later")
	case errors.Is(err, workflows.ErrNoPendingAmbiguity):
		respondJSONError(w, http.StatusConflict, "No Pending Ambiguity", err.Error())
	default:
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
