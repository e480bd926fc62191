package placement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rotalog/rotalog/internal/domain"
)

// Update edits a placement's site, timestamp, or note.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Placement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.placements.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get placement: %w", err)
	}

	if input.SiteKey != nil {
		ok, err := s.siteExists(ctx, *input.SiteKey)
		if err != nil {
			return nil, fmt.Errorf("check site: %w", err)
		}
		if !ok {
			return nil, domain.NewValidationError("site_key", "unknown site")
		}
		current.SiteKey = *input.SiteKey
	}
	if input.OccurredAt != nil {
		current.OccurredAt = *input.OccurredAt
	}
	if input.ClearNote {
		current.Note = nil
	} else if input.Note != nil {
		current.Note = input.Note
	}

	updated, err := s.placements.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("update placement: %w", err)
	}

	if err := s.refreshDerived(ctx); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "placement updated",
		slog.String("placement_id", updated.ID.String()),
		slog.String("site_key", updated.SiteKey),
	)

	return updated, nil
}
