// Package placement implements the placement-log business logic: logging,
// editing, deleting, and listing placements. Every mutation eagerly
// refreshes the derived rotation state so readers never see stale values.
package placement

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/rotalog/rotalog/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type placementRepo interface {
	Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Placement, error)
	Update(ctx context.Context, p *domain.Placement) (*domain.Placement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.PlacementFilter) ([]domain.Placement, int, error)
}

type siteCatalog interface {
	Catalog(ctx context.Context) ([]domain.Site, error)
}

type rotationRefresher interface {
	Refresh(ctx context.Context) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements placement-log operations.
type Service struct {
	placements placementRepo
	sites      siteCatalog
	rotation   rotationRefresher
	clock      clockwork.Clock
	log        *slog.Logger
}

// NewService creates a new placement service.
func NewService(
	log *slog.Logger,
	placements placementRepo,
	sites siteCatalog,
	rotation rotationRefresher,
	clock clockwork.Clock,
) *Service {
	return &Service{
		placements: placements,
		sites:      sites,
		rotation:   rotation,
		clock:      clock,
		log:        log.With("service", "placement"),
	}
}

// siteExists checks the key against the full catalog, disabled sites
// included — history may legitimately reference a site disabled later.
func (s *Service) siteExists(ctx context.Context, key string) (bool, error) {
	catalog, err := s.sites.Catalog(ctx)
	if err != nil {
		return false, err
	}
	for _, site := range catalog {
		if site.Key == key {
			return true, nil
		}
	}
	return false, nil
}

// refreshDerived recomputes the rotation snapshot after a mutation.
// A refresh failure does not undo the write; it is logged and surfaced.
func (s *Service) refreshDerived(ctx context.Context) error {
	if err := s.rotation.Refresh(ctx); err != nil {
		s.log.ErrorContext(ctx, "refresh rotation state", slog.String("error", err.Error()))
		return err
	}
	return nil
}
