package database

import (
	"context"
	"fmt"

	"github.com/stormnotes/suite/internal/models"
)

// DocumentRepository handles document database operations
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List retrieves all analyzed documents, newest first.
func (r *DocumentRepository) List(ctx context.Context) ([]*models.Document, error) {
	query := `
		SELECT id, filename, original_text, summary, sentiment
		FROM documents
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(&doc.ID, &doc.Filename, &doc.OriginalText, &doc.Summary, &doc.Sentiment)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// Add inserts a new analyzed document.
func (r *DocumentRepository) Add(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, filename, original_text, summary, sentiment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.Filename,
		doc.OriginalText,
		doc.Summary,
		doc.Sentiment,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}
