package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/stormnotes/suite/internal/models"
)

// TimezoneCardRepository handles timezone card database operations
type TimezoneCardRepository struct {
	db *DB
}

// NewTimezoneCardRepository creates a new timezone card repository
func NewTimezoneCardRepository(db *DB) *TimezoneCardRepository {
	return &TimezoneCardRepository{db: db}
}

// List retrieves all timezone cards ordered by creation time.
func (r *TimezoneCardRepository) List(ctx context.Context) ([]*models.TimezoneCard, error) {
	query := `
		SELECT id, location, timezone, utc_offset, is_dst, dst_info, initial_time, grounding_sources
		FROM timezone_cards
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list timezone cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.TimezoneCard
	for rows.Next() {
		card := &models.TimezoneCard{}
		var sourcesJSON []byte

		err := rows.Scan(
			&card.ID,
			&card.Location,
			&card.Timezone,
			&card.UTCOffset,
			&card.IsDST,
			&card.DSTInfo,
			&card.InitialTime,
			&sourcesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timezone card: %w", err)
		}

		if len(sourcesJSON) > 0 {
			if err := json.Unmarshal(sourcesJSON, &card.GroundingSources); err != nil {
				return nil, fmt.Errorf("failed to unmarshal grounding sources: %w", err)
			}
		}

		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timezone cards: %w", err)
	}

	return cards, nil
}

// Add inserts a new timezone card.
func (r *TimezoneCardRepository) Add(ctx context.Context, card *models.TimezoneCard) error {
	query := `
		INSERT INTO timezone_cards (id, location, timezone, utc_offset, is_dst, dst_info, initial_time, grounding_sources, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	sourcesJSON, err := json.Marshal(card.GroundingSources)
	if err != nil {
		return fmt.Errorf("failed to marshal grounding sources: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		card.ID,
		card.Location,
		card.Timezone,
		card.UTCOffset,
		card.IsDST,
		card.DSTInfo,
		card.InitialTime,
		sourcesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create timezone card: %w", err)
	}

	return nil
}

// Delete removes a timezone card by ID.
func (r *TimezoneCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM timezone_cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timezone card: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("timezone card not found: %s", id)
	}

	return nil
}
