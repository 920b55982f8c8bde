package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/stormnotes/suite/internal/models"
)

// In-memory repository implementations. Used when no DATABASE_URL is
// configured and by tests. All methods return copies so callers cannot
// mutate stored state.

// MemoryTimezoneCardRepository stores timezone cards in process memory.
type MemoryTimezoneCardRepository struct {
	mu    sync.RWMutex
	cards []*models.TimezoneCard
}

// NewMemoryTimezoneCardRepository creates an empty in-memory card store.
func NewMemoryTimezoneCardRepository() *MemoryTimezoneCardRepository {
	return &MemoryTimezoneCardRepository{}
}

func (r *MemoryTimezoneCardRepository) List(_ context.Context) ([]*models.TimezoneCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.TimezoneCard, len(r.cards))
	for i, card := range r.cards {
		c := *card
		c.GroundingSources = append([]models.GroundingSource(nil), card.GroundingSources...)
		out[i] = &c
	}
	return out, nil
}

func (r *MemoryTimezoneCardRepository) Add(_ context.Context, card *models.TimezoneCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *card
	c.GroundingSources = append([]models.GroundingSource(nil), card.GroundingSources...)
	r.cards = append(r.cards, &c)
	return nil
}

func (r *MemoryTimezoneCardRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, card := range r.cards {
		if card.ID == id {
			r.cards = append(r.cards[:i], r.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("timezone card not found: %s", id)
}

// MemoryContactRepository stores contacts in process memory.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	contacts []*models.Contact
}

// NewMemoryContactRepository creates an empty in-memory contact store.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

func (r *MemoryContactRepository) List(_ context.Context) ([]*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Contact, len(r.contacts))
	for i, contact := range r.contacts {
		c := *contact
		out[i] = &c
	}
	return out, nil
}

func (r *MemoryContactRepository) Add(_ context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *contact
	r.contacts = append(r.contacts, &c)
	return nil
}

func (r *MemoryContactRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, contact := range r.contacts {
		if contact.ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contact not found: %s", id)
}

// MemoryDocumentRepository stores analyzed documents in process memory.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs []*models.Document
}

// NewMemoryDocumentRepository creates an empty in-memory document store.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{}
}

func (r *MemoryDocumentRepository) List(_ context.Context) ([]*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first, matching the Postgres implementation.
	out := make([]*models.Document, len(r.docs))
	for i, doc := range r.docs {
		d := *doc
		out[len(r.docs)-1-i] = &d
	}
	return out, nil
}

func (r *MemoryDocumentRepository) Add(_ context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := *doc
	r.docs = append(r.docs, &d)
	return nil
}

// MemoryChatHistoryRepository stores the chat transcript in process memory.
type MemoryChatHistoryRepository struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
}

// NewMemoryChatHistoryRepository creates an empty in-memory transcript.
func NewMemoryChatHistoryRepository() *MemoryChatHistoryRepository {
	return &MemoryChatHistoryRepository{}
}

func (r *MemoryChatHistoryRepository) Load(_ context.Context) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ChatMessage(nil), r.messages...), nil
}

func (r *MemoryChatHistoryRepository) Replace(_ context.Context, messages []models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append([]models.ChatMessage(nil), messages...)
	return nil
}
