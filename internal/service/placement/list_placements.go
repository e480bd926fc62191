package placement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rotalog/rotalog/internal/domain"
)

const defaultListLimit = 50

// List returns placements sorted descending by time, filtered and paginated.
// Returns the page and the total match count.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Placement, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	placements, total, err := s.placements.List(ctx, domain.PlacementFilter{
		From:    input.From,
		To:      input.To,
		SiteKey: input.SiteKey,
		Limit:   limit,
		Offset:  input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list placements: %w", err)
	}

	return placements, total, nil
}

// Get returns a single placement by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Placement, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	p, err := s.placements.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get placement: %w", err)
	}
	return p, nil
}
