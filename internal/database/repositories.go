package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/stormnotes/suite/internal/models"
)

// TimezoneCardRepositoryInterface defines the interface for timezone card
// repository operations. This interface enables better testability by
// allowing mock implementations.
type TimezoneCardRepositoryInterface interface {
	List(ctx context.Context) ([]*models.TimezoneCard, error)
	Add(ctx context.Context, card *models.TimezoneCard) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepositoryInterface defines the interface for contact repository
// operations.
type ContactRepositoryInterface interface {
	List(ctx context.Context) ([]*models.Contact, error)
	Add(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentRepositoryInterface defines the interface for document repository
// operations. Documents are append-only, so there is no delete.
type DocumentRepositoryInterface interface {
	List(ctx context.Context) ([]*models.Document, error)
	Add(ctx context.Context, doc *models.Document) error
}

// ChatHistoryRepositoryInterface defines the interface for chat transcript
// operations. The transcript is loaded and replaced as a whole, oldest
// message first.
type ChatHistoryRepositoryInterface interface {
	Load(ctx context.Context) ([]models.ChatMessage, error)
	Replace(ctx context.Context, messages []models.ChatMessage) error
}

// Ensure concrete types implement the interfaces
var (
	_ TimezoneCardRepositoryInterface = (*TimezoneCardRepository)(nil)
	_ ContactRepositoryInterface      = (*ContactRepository)(nil)
	_ DocumentRepositoryInterface     = (*DocumentRepository)(nil)
	_ ChatHistoryRepositoryInterface  = (*ChatHistoryRepository)(nil)

	_ TimezoneCardRepositoryInterface = (*MemoryTimezoneCardRepository)(nil)
	_ ContactRepositoryInterface      = (*MemoryContactRepository)(nil)
	_ DocumentRepositoryInterface     = (*MemoryDocumentRepository)(nil)
	_ ChatHistoryRepositoryInterface  = (*MemoryChatHistoryRepository)(nil)
)
