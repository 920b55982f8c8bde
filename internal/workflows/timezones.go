package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/models"
	"github.com/stormnotes/suite/internal/services/ai"
)

// AddTimezoneResult is the tagged outcome of the add-timezone pipeline.
// Exactly one of Card or Candidates is set: Candidates means the lookup
// halted on an ambiguous location and awaits a user pick.
type AddTimezoneResult struct {
	Card       *models.TimezoneCard `json:"card,omitempty"`
	Candidates []string             `json:"candidates,omitempty"`
}

// Ambiguous reports whether the pipeline halted awaiting disambiguation.
func (r *AddTimezoneResult) Ambiguous() bool {
	return len(r.Candidates) > 0
}

// ListTimezones returns the tracked timezone cards.
func (o *Orchestrator) ListTimezones(ctx context.Context) ([]*models.TimezoneCard, error) {
	return o.cards.List(ctx)
}

// AddTimezone runs the add-timezone pipeline: duplicate check, cache
// lookup, AI lookup on miss. An ambiguous location halts the pipeline and
// returns the candidates; ResolveAmbiguity re-enters it with the pick.
func (o *Orchestrator) AddTimezone(ctx context.Context, location string) (*AddTimezoneResult, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &ValidationError{Message: "location must not be empty"}
	}

	existing, err := o.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cards: %w", err)
	}
	for _, card := range existing {
		if strings.EqualFold(card.Location, location) {
			return nil, &DuplicateError{Resource: "timezone card", Value: card.Location}
		}
	}

	cacheKey := strings.ToLower(location)

	var data ai.TimezoneData
	if o.cache.Get(ctx, cacheKey, &data) {
		o.logger.Debug("timezone_cache_hit", zap.String("location", location))
		return o.storeCard(ctx, &data)
	}

	result, err := o.ai.LookupTimezone(ctx, location)
	if err != nil {
		if ambErr, ok := ai.IsAmbiguous(err); ok {
			o.mu.Lock()
			o.ambiguity = &ambiguityState{query: location, candidates: ambErr.Candidates}
			o.mu.Unlock()
			return &AddTimezoneResult{Candidates: ambErr.Candidates}, nil
		}
		return nil, err
	}

	o.cache.Set(ctx, cacheKey, result)
	return o.storeCard(ctx, result)
}

// storeCard persists a resolved lookup as a new card.
func (o *Orchestrator) storeCard(ctx context.Context, data *ai.TimezoneData) (*AddTimezoneResult, error) {
	card := &models.TimezoneCard{
		ID:               uuid.New(),
		Location:         data.Location,
		Timezone:         data.Timezone,
		UTCOffset:        data.UTCOffset,
		IsDST:            data.IsDST,
		DSTInfo:          data.DSTInfo,
		InitialTime:      data.InitialTime,
		GroundingSources: data.GroundingSources,
	}
	if err := o.cards.Add(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to persist timezone card: %w", err)
	}
	return &AddTimezoneResult{Card: card}, nil
}

// PendingAmbiguity returns the halted lookup's query and candidates, if
// one is awaiting resolution.
func (o *Orchestrator) PendingAmbiguity() (string, []string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ambiguity == nil {
		return "", nil, false
	}
	return o.ambiguity.query, append([]string(nil), o.ambiguity.candidates...), true
}

// ResolveAmbiguity re-enters the add-timezone pipeline with the chosen
// candidate. A resolution arriving after the state was cleared is ignored
// with ErrNoPendingAmbiguity, so a cancelled pick never creates a card.
func (o *Orchestrator) ResolveAmbiguity(ctx context.Context, chosen string) (*AddTimezoneResult, error) {
	o.mu.Lock()
	if o.ambiguity == nil {
		o.mu.Unlock()
		return nil, ErrNoPendingAmbiguity
	}
	o.ambiguity = nil
	o.mu.Unlock()

	return o.AddTimezone(ctx, chosen)
}

// CancelAmbiguity abandons a halted lookup.
func (o *Orchestrator) CancelAmbiguity() {
	o.mu.Lock()
	o.ambiguity = nil
	o.mu.Unlock()
}

// DeleteTimezone removes a card by ID.
func (o *Orchestrator) DeleteTimezone(ctx context.Context, id uuid.UUID) error {
	return o.cards.Delete(ctx, id)
}

// ConvertTime converts a date/time between two timezones through the AI
// provider.
func (o *Orchestrator) ConvertTime(ctx context.Context, dateTime, fromZone, toZone string) (*ai.Conversion, error) {
	if strings.TrimSpace(dateTime) == "" || strings.TrimSpace(fromZone) == "" || strings.TrimSpace(toZone) == "" {
		return nil, &ValidationError{Message: "date/time, source zone, and target zone are all required"}
	}
	return o.ai.ConvertTime(ctx, dateTime, fromZone, toZone)
}
