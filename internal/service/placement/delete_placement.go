package placement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rotalog/rotalog/internal/domain"
)

// Delete permanently removes a placement. The record simply disappears from
// every derived aggregate; nothing cascades.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.placements.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete placement: %w", err)
	}

	if err := s.refreshDerived(ctx); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "placement deleted", slog.String("placement_id", id.String()))
	return nil
}
