package site

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rotalog/rotalog/internal/domain"
)

// SetSiteEnabled toggles a site's membership in the enabled set.
// Disabling the last enabled site is rejected — the recommendation engine
// guarantees an answer only while at least one site stays enabled.
func (s *Service) SetSiteEnabled(ctx context.Context, key string, enabled bool) error {
	if key == "" {
		return domain.NewValidationError("key", "required")
	}

	known, err := s.siteKnown(ctx, key)
	if err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("site %s: %w", key, domain.ErrNotFound)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	switch {
	case enabled && !settings.IsEnabled(key):
		settings.EnabledSiteKeys = append(settings.EnabledSiteKeys, key)
	case !enabled && settings.IsEnabled(key):
		if len(settings.EnabledSiteKeys) == 1 {
			return fmt.Errorf("at least one site must remain enabled: %w", domain.ErrConflict)
		}
		settings.EnabledSiteKeys = slices.DeleteFunc(settings.EnabledSiteKeys, func(k string) bool {
			return k == key
		})
	default:
		// Already in the requested state.
		return nil
	}

	if _, err := s.settings.Update(ctx, settings); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	if err := s.refreshDerived(ctx); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "site enabled flag changed",
		slog.String("site_key", key),
		slog.Bool("enabled", enabled),
	)
	return nil
}

// UpdateSettings changes the rotation settings. Nil input fields are left
// unchanged.
func (s *Service) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.Settings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if input.MinRestDays != nil {
		settings.MinRestDays = *input.MinRestDays
	}
	if input.ShowDisabledSites != nil {
		settings.ShowDisabledSites = *input.ShowDisabledSites
	}

	updated, err := s.settings.Update(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	if err := s.refreshDerived(ctx); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.Int("min_rest_days", updated.MinRestDays),
		slog.Bool("show_disabled_sites", updated.ShowDisabledSites),
	)
	return updated, nil
}

func (s *Service) siteKnown(ctx context.Context, key string) (bool, error) {
	if domain.IsDefaultSiteKey(key) {
		return true, nil
	}
	_, err := s.custom.GetByKey(ctx, key)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("get custom site: %w", err)
}
