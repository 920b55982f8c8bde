package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stormnotes/suite/internal/models"
)

// ChatHistoryRepository persists the assistant conversation transcript.
// The transcript is stored as a single JSON document and swapped out
// whole on every turn.
type ChatHistoryRepository struct {
	db *DB
}

// NewChatHistoryRepository creates a new chat history repository
func NewChatHistoryRepository(db *DB) *ChatHistoryRepository {
	return &ChatHistoryRepository{db: db}
}

// Load returns the full transcript, oldest message first. A missing row
// is an empty transcript, not an error.
func (r *ChatHistoryRepository) Load(ctx context.Context) ([]models.ChatMessage, error) {
	var transcriptJSON []byte
	err := r.db.QueryRowContext(ctx, `SELECT transcript FROM chat_history WHERE id = 1`).Scan(&transcriptJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	var messages []models.ChatMessage
	if err := json.Unmarshal(transcriptJSON, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat history: %w", err)
	}

	return messages, nil
}

// Replace overwrites the stored transcript with the given messages.
func (r *ChatHistoryRepository) Replace(ctx context.Context, messages []models.ChatMessage) error {
	transcriptJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}

	query := `
		INSERT INTO chat_history (id, transcript, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET transcript = EXCLUDED.transcript, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, transcriptJSON); err != nil {
		return fmt.Errorf("failed to replace chat history: %w", err)
	}

	return nil
}
