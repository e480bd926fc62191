package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotalog/rotalog/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedPlacement inserts a placement for the given site at the given time.
// Returns the filled domain.Placement.
func SeedPlacement(t *testing.T, pool *pgxpool.Pool, siteKey string, occurredAt time.Time) domain.Placement {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Placement{
		ID:         uuid.New(),
		SiteKey:    siteKey,
		OccurredAt: occurredAt.UTC().Truncate(time.Microsecond),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO placements (id, site_key, occurred_at, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.SiteKey, p.OccurredAt, p.Note, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPlacement insert: %v", err)
	}

	return p
}

// SeedCustomSite inserts a custom site row. Returns the filled domain.Site.
// The site is NOT added to the enabled set; use SeedSettings for that.
func SeedCustomSite(t *testing.T, pool *pgxpool.Pool, name string) domain.Site {
	t.Helper()
	ctx := context.Background()

	site := domain.Site{
		Key:  "custom_" + uuid.New().String(),
		Name: name + " " + uniqueSuffix(),
		Kind: domain.SiteKindCustom,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO custom_sites (key, name, icon, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())`,
		site.Key, site.Name, site.Icon,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCustomSite insert: %v", err)
	}

	return site
}

// SeedSettings overwrites the singleton settings row.
func SeedSettings(t *testing.T, pool *pgxpool.Pool, settings domain.Settings) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`UPDATE settings
		 SET min_rest_days = $1, enabled_site_keys = $2, show_disabled_sites = $3, updated_at = now()
		 WHERE id = 1`,
		settings.MinRestDays, settings.EnabledSiteKeys, settings.ShowDisabledSites,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSettings update: %v", err)
	}
}
