package site

import (
	"context"
	"fmt"

	"github.com/rotalog/rotalog/internal/domain"
)

// Catalog returns every known site — the built-in catalog followed by
// custom sites in creation order — with enabled flags applied from the
// settings' enabled-site set. Key uniqueness across the two kinds holds by
// construction: custom keys are uuid-derived and can never collide with the
// fixed built-in keys.
func (s *Service) Catalog(ctx context.Context) ([]domain.Site, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	custom, err := s.custom.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list custom sites: %w", err)
	}

	enabled := settings.EnabledSet()
	catalog := domain.DefaultSites()
	catalog = append(catalog, custom...)
	for i := range catalog {
		catalog[i].Enabled = enabled[catalog[i].Key]
	}
	return catalog, nil
}

// GetSettings returns the current rotation settings.
func (s *Service) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}
