// Package settings implements the settings repository using PostgreSQL.
// The settings table holds exactly one row (id = 1), seeded by migration;
// reads and writes always target that row.
package settings

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/rotalog/rotalog/internal/adapter/postgres"
	"github.com/rotalog/rotalog/internal/domain"
)

// Repo provides settings persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new settings repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// row mirrors the settings table for pgxscan.
type row struct {
	ID                int16     `db:"id"`
	MinRestDays       int       `db:"min_rest_days"`
	EnabledSiteKeys   []string  `db:"enabled_site_keys"`
	ShowDisabledSites bool      `db:"show_disabled_sites"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Settings {
	return domain.Settings{
		MinRestDays:       r.MinRestDays,
		EnabledSiteKeys:   r.EnabledSiteKeys,
		ShowDisabledSites: r.ShowDisabledSites,
		UpdatedAt:         r.UpdatedAt,
	}
}

const columns = "id, min_rest_days, enabled_site_keys, show_disabled_sites, updated_at"

const getSQL = `
SELECT ` + columns + `
FROM settings
WHERE id = 1`

const updateSQL = `
UPDATE settings
SET min_rest_days = $1, enabled_site_keys = $2, show_disabled_sites = $3, updated_at = now()
WHERE id = 1
RETURNING ` + columns

// Get returns the settings row.
func (r *Repo) Get(ctx context.Context) (*domain.Settings, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	if err := pgxscan.Get(ctx, q, &stored, getSQL); err != nil {
		return nil, postgres.MapError(err, "settings", "settings")
	}

	settings := stored.toDomain()
	return &settings, nil
}

// Update overwrites the settings row and returns the stored state.
func (r *Repo) Update(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	err := pgxscan.Get(ctx, q, &stored, updateSQL,
		settings.MinRestDays, settings.EnabledSiteKeys, settings.ShowDisabledSites)
	if err != nil {
		return nil, postgres.MapError(err, "settings", "settings")
	}

	updated := stored.toDomain()
	return &updated, nil
}
