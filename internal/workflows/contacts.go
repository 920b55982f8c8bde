package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stormnotes/suite/internal/models"
)

// ListContacts returns the address book.
func (o *Orchestrator) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	return o.contacts.List(ctx)
}

// AddContact adds an address-book entry. Emails are unique
// case-insensitively; a match leaves the list unchanged.
func (o *Orchestrator) AddContact(ctx context.Context, name, email string) (*models.Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, &ValidationError{Message: "contact name and email are both required"}
	}

	existing, err := o.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing contacts: %w", err)
	}
	for _, contact := range existing {
		if contact.EmailEquals(email) {
			return nil, &DuplicateError{Resource: "contact", Value: contact.Email}
		}
	}

	contact := &models.Contact{ID: uuid.New(), Name: name, Email: email}
	if err := o.contacts.Add(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to persist contact: %w", err)
	}
	return contact, nil
}

// DeleteContact removes a contact by ID.
func (o *Orchestrator) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return o.contacts.Delete(ctx, id)
}
