// Package site implements the site-catalog business logic: merging the
// built-in catalog with user-defined custom sites, enabling and disabling
// sites, and maintaining the rotation settings.
package site

import (
	"context"
	"log/slog"

	"github.com/rotalog/rotalog/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type customSiteRepo interface {
	List(ctx context.Context) ([]domain.Site, error)
	GetByKey(ctx context.Context, key string) (*domain.Site, error)
	Create(ctx context.Context, site *domain.Site) (*domain.Site, error)
	Rename(ctx context.Context, key, name string) (*domain.Site, error)
	Delete(ctx context.Context, key string) error
}

type settingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
}

type rotationRefresher interface {
	Refresh(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements site-catalog and settings operations.
type Service struct {
	custom   customSiteRepo
	settings settingsRepo
	rotation rotationRefresher
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new site service.
func NewService(
	log *slog.Logger,
	custom customSiteRepo,
	settings settingsRepo,
	rotation rotationRefresher,
	tx txManager,
) *Service {
	return &Service{
		custom:   custom,
		settings: settings,
		rotation: rotation,
		tx:       tx,
		log:      log.With("service", "site"),
	}
}

func (s *Service) refreshDerived(ctx context.Context) error {
	if err := s.rotation.Refresh(ctx); err != nil {
		s.log.ErrorContext(ctx, "refresh rotation state", slog.String("error", err.Error()))
		return err
	}
	return nil
}
