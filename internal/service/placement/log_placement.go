package placement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rotalog/rotalog/internal/domain"
)

// Log records a placement. The timestamp defaults to the injected clock's
// "now"; out-of-order and even future timestamps are accepted — device
// clocks and manual edits legitimately produce them.
func (s *Service) Log(ctx context.Context, input LogInput) (*domain.Placement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.siteExists(ctx, input.SiteKey)
	if err != nil {
		return nil, fmt.Errorf("check site: %w", err)
	}
	if !ok {
		return nil, domain.NewValidationError("site_key", "unknown site")
	}

	occurredAt := s.clock.Now()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	created, err := s.placements.Create(ctx, &domain.Placement{
		ID:         uuid.New(),
		SiteKey:    input.SiteKey,
		OccurredAt: occurredAt,
		Note:       input.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("create placement: %w", err)
	}

	if err := s.refreshDerived(ctx); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "placement logged",
		slog.String("placement_id", created.ID.String()),
		slog.String("site_key", created.SiteKey),
		slog.Time("occurred_at", created.OccurredAt),
	)

	return created, nil
}
