package ai

import (
	"github.com/stormnotes/suite/internal/logger"
)

const (
	// MaxPreviewLength is the maximum length for preview strings in logs.
	MaxPreviewLength = 200
	// RedactedValue replaces sensitive data in logs.
	RedactedValue = "[REDACTED]"
)

// SanitizeAPIKey sanitizes an API key for logging.
func SanitizeAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return RedactedValue
	}
	return apiKey[:4] + RedactedValue + apiKey[len(apiKey)-4:]
}

// SanitizePrompt creates a safe preview of a prompt for debug logging.
func SanitizePrompt(prompt string) string {
	return logger.SanitizeString(prompt, MaxPreviewLength)
}

// SanitizeResponse creates a safe preview of a model response for debug
// logging.
func SanitizeResponse(response string) string {
	return logger.SanitizeString(response, MaxPreviewLength)
}
