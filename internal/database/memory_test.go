package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stormnotes/suite/internal/models"
)

func TestMemoryTimezoneCardRepository(t *testing.T) {
	t.Parallel()

	repo := NewMemoryTimezoneCardRepository()
	ctx := context.Background()

	card := &models.TimezoneCard{
		ID:       uuid.New(),
		Location: "Tokyo",
		Timezone: "Asia/Tokyo",
		GroundingSources: []models.GroundingSource{
			{URI: "https://example.com", Title: "Example"},
		},
	}
	if err := repo.Add(ctx, card); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	cards, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("List() returned %d cards, want 1", len(cards))
	}
	if cards[0].Location != "Tokyo" {
		t.Errorf("Location = %q, want %q", cards[0].Location, "Tokyo")
	}

	// Mutating the returned copy must not touch stored state.
	cards[0].Location = "changed"
	cards[0].GroundingSources[0].URI = "changed"

	again, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if again[0].Location != "Tokyo" {
		t.Errorf("stored card mutated through returned copy: Location = %q", again[0].Location)
	}
	if again[0].GroundingSources[0].URI != "https://example.com" {
		t.Errorf("stored grounding sources mutated through returned copy: URI = %q", again[0].GroundingSources[0].URI)
	}

	if err := repo.Delete(ctx, card.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, card.ID); err == nil {
		t.Error("Delete() of missing card expected error, got nil")
	}

	cards, _ = repo.List(ctx)
	if len(cards) != 0 {
		t.Errorf("List() after Delete returned %d cards, want 0", len(cards))
	}
}

func TestMemoryContactRepository(t *testing.T) {
	t.Parallel()

	repo := NewMemoryContactRepository()
	ctx := context.Background()

	first := &models.Contact{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	second := &models.Contact{ID: uuid.New(), Name: "Grace", Email: "grace@example.com"}

	if err := repo.Add(ctx, first); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := repo.Add(ctx, second); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	contacts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("List() returned %d contacts, want 2", len(contacts))
	}
	if contacts[0].Name != "Ada" || contacts[1].Name != "Grace" {
		t.Errorf("List() order = %q, %q; want insertion order", contacts[0].Name, contacts[1].Name)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	contacts, _ = repo.List(ctx)
	if len(contacts) != 1 || contacts[0].Name != "Grace" {
		t.Errorf("List() after Delete = %+v, want only Grace", contacts)
	}
}

func TestMemoryDocumentRepositoryNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewMemoryDocumentRepository()
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := repo.Add(ctx, &models.Document{ID: uuid.New(), Filename: name}); err != nil {
			t.Fatalf("Add(%s) error = %v", name, err)
		}
	}

	docs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("List() returned %d documents, want 3", len(docs))
	}
	if docs[0].Filename != "c.txt" || docs[2].Filename != "a.txt" {
		t.Errorf("List() order = %q..%q, want newest first", docs[0].Filename, docs[2].Filename)
	}
}

func TestMemoryChatHistoryRepository(t *testing.T) {
	t.Parallel()

	repo := NewMemoryChatHistoryRepository()
	ctx := context.Background()

	messages, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("Load() of empty transcript returned %d messages", len(messages))
	}

	transcript := []models.ChatMessage{
		{Role: models.RoleUser, Text: "hello"},
		{Role: models.RoleModel, Text: "hi there"},
	}
	if err := repo.Replace(ctx, transcript); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	// Mutating the caller's slice after Replace must not leak through.
	transcript[0].Text = "changed"

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d messages, want 2", len(loaded))
	}
	if loaded[0].Text != "hello" {
		t.Errorf("stored transcript mutated through caller slice: Text = %q", loaded[0].Text)
	}
	if loaded[1].Role != models.RoleModel {
		t.Errorf("Role = %q, want %q", loaded[1].Role, models.RoleModel)
	}
}
