package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MalformedResponseError indicates the model's free-text output did not
// match the shape the operation expected. The raw response is retained for
// diagnosis; it is never silently retried.
type MalformedResponseError struct {
	Op  string
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: could not parse model response: %q", e.Op, e.Raw)
}

// AmbiguousLocationError carries the candidate locations returned for an
// ambiguous timezone lookup. It is a distinct outcome routed to ambiguity
// resolution, not a failure.
type AmbiguousLocationError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousLocationError) Error() string {
	return fmt.Sprintf("ambiguous location %q: choose one of: %s", e.Query, strings.Join(e.Candidates, ", "))
}

// ContentPolicyError indicates the model declined to respond because of a
// safety filter. Distinct from MalformedResponseError so callers can show
// a different message.
type ContentPolicyError struct {
	Op string
}

func (e *ContentPolicyError) Error() string {
	return fmt.Sprintf("%s: response blocked by content policy", e.Op)
}

// AttachmentError indicates a chat attachment could not be processed
// before any model call was made.
type AttachmentError struct {
	Name   string
	Reason string
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %q: %s", e.Name, e.Reason)
}

// IsAmbiguous reports whether err is an ambiguous-location outcome and
// returns the candidate list.
func IsAmbiguous(err error) (*AmbiguousLocationError, bool) {
	var ambErr *AmbiguousLocationError
	if errors.As(err, &ambErr) {
		return ambErr, true
	}
	return nil, false
}

// APIError represents an error surfaced by the completion provider's API.
type APIError struct {
	Message    string
	Type       string
	Code       string
	StatusCode int
	RetryAfter *time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d, type %s): %s", e.StatusCode, e.Type, e.Message)
}

// ExtractAPIError pulls structured details out of a provider error. OpenAI
// SDK errors often embed a JSON body in the message; rate-limit responses
// are the common case worth decoding.
func ExtractAPIError(err error) *APIError {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "429") {
		return nil
	}

	apiErr := &APIError{
		StatusCode: 429,
		Message:    errStr,
		Type:       "rate_limit_error",
	}

	if jsonStart := strings.Index(errStr, "{"); jsonStart != -1 {
		jsonStr := errStr[jsonStart:]
		if jsonEnd := strings.LastIndex(jsonStr, "}"); jsonEnd != -1 {
			var errorData struct {
				Message string `json:"message"`
				Type    string `json:"type"`
				Code    string `json:"code"`
			}
			if json.Unmarshal([]byte(jsonStr[:jsonEnd+1]), &errorData) == nil {
				apiErr.Message = errorData.Message
				apiErr.Type = errorData.Type
				apiErr.Code = errorData.Code
			}
		}
	}

	retryAfter := 60 * time.Second
	apiErr.RetryAfter = &retryAfter

	return apiErr
}
