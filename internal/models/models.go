package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GroundingSource is a web citation returned alongside an AI response when
// search-augmented generation was used.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// TimezoneCard is a tracked location with its resolved timezone details.
// Cards are immutable once created; the only mutation is deletion.
type TimezoneCard struct {
	ID               uuid.UUID         `json:"id"`
	Location         string            `json:"location"`
	Timezone         string            `json:"timezone"`
	UTCOffset        string            `json:"utc_offset"`
	IsDST            bool              `json:"is_dst"`
	DSTInfo          string            `json:"dst_info"`
	InitialTime      time.Time         `json:"initial_time"`
	GroundingSources []GroundingSource `json:"grounding_sources"`
}

// MinReminderLead is the minimum gap between scheduling a reminder and its
// fire time.
const MinReminderLead = time.Minute

// Reminder is a deferred email notification. Reminders live only in process
// memory and are lost on restart.
type Reminder struct {
	ID             uuid.UUID `json:"id"`
	Message        string    `json:"message"`
	RecipientEmail string    `json:"recipient_email"`
	FireDate       time.Time `json:"fire_date"`
	Location       string    `json:"location"`
}

// Contact is an address-book entry. Emails are unique case-insensitively.
type Contact struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// EmailEquals reports whether the contact's email matches other,
// case-insensitively.
func (c *Contact) EmailEquals(other string) bool {
	return strings.EqualFold(c.Email, other)
}

// Document is the stored output of a document analysis workflow.
// Documents are append-only.
type Document struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalText string    `json:"original_text"`
	Summary      string    `json:"summary"`
	Sentiment    string    `json:"sentiment"`
}

// Chat message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Attachment types.
const (
	AttachmentImage = "image"
	AttachmentText  = "text"
)

// FileAttachment is an optional payload on a chat message. Image
// attachments carry a data URL; text attachments carry the raw content.
type FileAttachment struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// ChatMessage is one turn of a conversation transcript, oldest first.
type ChatMessage struct {
	Role       string          `json:"role"`
	Text       string          `json:"text"`
	Attachment *FileAttachment `json:"attachment,omitempty"`
}

// Receipt is the acknowledgement returned by the email delivery provider.
// Dry-run sends return a synthetic receipt.
type Receipt struct {
	ID string `json:"id"`
}
