package site

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/rotalog/rotalog/internal/domain"
)

// CreateCustomSite adds a user-defined site and enables it immediately.
// The site row and the enabled-set update commit in one transaction.
func (s *Service) CreateCustomSite(ctx context.Context, input CreateCustomSiteInput) (*domain.Site, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	site := &domain.Site{
		Key:  "custom_" + uuid.New().String(),
		Name: strings.TrimSpace(input.Name),
		Icon: input.Icon,
		Kind: domain.SiteKindCustom,
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.custom.Create(ctx, site)
		if err != nil {
			return fmt.Errorf("create custom site: %w", err)
		}
		site = created

		settings, err := s.settings.Get(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		settings.EnabledSiteKeys = append(settings.EnabledSiteKeys, site.Key)
		if _, err := s.settings.Update(ctx, settings); err != nil {
			return fmt.Errorf("enable new site: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	site.Enabled = true

	if err := s.refreshDerived(ctx); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "custom site created",
		slog.String("site_key", site.Key),
		slog.String("name", site.Name),
	)
	return site, nil
}

// RenameCustomSite changes a custom site's display name. Built-in sites
// cannot be renamed.
func (s *Service) RenameCustomSite(ctx context.Context, input RenameCustomSiteInput) (*domain.Site, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if domain.IsDefaultSiteKey(input.Key) {
		return nil, domain.NewValidationError("key", "built-in sites cannot be renamed")
	}

	renamed, err := s.custom.Rename(ctx, input.Key, strings.TrimSpace(input.Name))
	if err != nil {
		return nil, fmt.Errorf("rename custom site: %w", err)
	}

	if err := s.refreshDerived(ctx); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "custom site renamed", slog.String("site_key", renamed.Key))
	return renamed, nil
}

// DeleteCustomSite removes a custom site and drops it from the enabled set.
// Deleting the only enabled site is rejected: the catalog must always keep
// at least one site enabled. Historical placements keep referencing the
// deleted key; derived views simply stop listing it.
func (s *Service) DeleteCustomSite(ctx context.Context, key string) error {
	if key == "" {
		return domain.NewValidationError("key", "required")
	}
	if domain.IsDefaultSiteKey(key) {
		return domain.NewValidationError("key", "built-in sites cannot be deleted")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		if settings.IsEnabled(key) && len(settings.EnabledSiteKeys) == 1 {
			return fmt.Errorf("at least one site must remain enabled: %w", domain.ErrConflict)
		}

		if err := s.custom.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete custom site: %w", err)
		}

		if settings.IsEnabled(key) {
			settings.EnabledSiteKeys = slices.DeleteFunc(settings.EnabledSiteKeys, func(k string) bool {
				return k == key
			})
			if _, err := s.settings.Update(ctx, settings); err != nil {
				return fmt.Errorf("update enabled sites: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.refreshDerived(ctx); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "custom site deleted", slog.String("site_key", key))
	return nil
}
