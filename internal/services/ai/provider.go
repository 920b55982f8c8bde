package ai

import (
	"context"
	"time"

	"github.com/stormnotes/suite/internal/models"
)

// TimezoneData is the typed result of a timezone lookup.
type TimezoneData struct {
	Location         string                   `json:"location"`
	Timezone         string                   `json:"timezone"`
	UTCOffset        string                   `json:"utc_offset"`
	IsDST            bool                     `json:"is_dst"`
	DSTInfo          string                   `json:"dst_info"`
	InitialTime      time.Time                `json:"initial_time"`
	GroundingSources []models.GroundingSource `json:"grounding_sources"`
}

// Conversion is the typed result of a time conversion.
type Conversion struct {
	ConvertedTime    string                   `json:"converted_time"`
	Explanation      string                   `json:"explanation"`
	GroundingSources []models.GroundingSource `json:"grounding_sources"`
}

// EmailDraft is a composed email ready for delivery.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Analysis is the summary and one-word sentiment of a document.
type Analysis struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
}

// Provider is the gateway to the AI completion service, one operation per
// intent. Implementations build the prompt, invoke the service, and parse
// the free-text response into typed values, raising MalformedResponseError,
// ContentPolicyError, or AmbiguousLocationError as appropriate.
type Provider interface {
	// LookupTimezone resolves a location to its timezone details. Returns
	// AmbiguousLocationError when the model lists candidate locations.
	LookupTimezone(ctx context.Context, location string) (*TimezoneData, error)

	// ConvertTime converts a date/time between two timezones.
	ConvertTime(ctx context.Context, dateTime, fromZone, toZone string) (*Conversion, error)

	// ReminderDelay computes how long from now until the given local time
	// in the given zone.
	ReminderDelay(ctx context.Context, reminderDateTime, zone string) (time.Duration, error)

	// ComposeReminderEmail drafts the reminder notification email.
	ComposeReminderEmail(ctx context.Context, message, timezone string) (*EmailDraft, error)

	// AnalyzeDocument produces a summary and one-word sentiment.
	AnalyzeDocument(ctx context.Context, content string) (*Analysis, error)

	// ComposeAnalysisEmail drafts the email reporting a document analysis.
	ComposeAnalysisEmail(ctx context.Context, summary, sentiment, filename string) (*EmailDraft, error)

	// GenerateText runs a free-form prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Chat sends the prior transcript plus a new message and returns the
	// model's reply.
	Chat(ctx context.Context, history []models.ChatMessage, newMessage models.ChatMessage) (string, error)
}
