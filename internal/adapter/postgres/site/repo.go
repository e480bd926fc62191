// Package site implements the custom-site repository using PostgreSQL.
// Built-in sites never touch the database; only user-defined sites have rows.
package site

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/rotalog/rotalog/internal/adapter/postgres"
	"github.com/rotalog/rotalog/internal/domain"
)

// Repo provides custom-site persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new custom-site repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// row mirrors the custom_sites table for pgxscan.
type row struct {
	Key       string    `db:"key"`
	Name      string    `db:"name"`
	Icon      string    `db:"icon"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Site {
	return domain.Site{
		Key:  r.Key,
		Name: r.Name,
		Icon: r.Icon,
		Kind: domain.SiteKindCustom,
	}
}

const columns = "key, name, icon, created_at, updated_at"

const listSQL = `
SELECT ` + columns + `
FROM custom_sites
ORDER BY created_at ASC`

const getByKeySQL = `
SELECT ` + columns + `
FROM custom_sites
WHERE key = $1`

const insertSQL = `
INSERT INTO custom_sites (key, name, icon, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
RETURNING ` + columns

const renameSQL = `
UPDATE custom_sites
SET name = $2, updated_at = now()
WHERE key = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM custom_sites WHERE key = $1`

// List returns all custom sites in creation order.
func (r *Repo) List(ctx context.Context) ([]domain.Site, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, listSQL); err != nil {
		return nil, postgres.MapError(err, "custom site", "all")
	}

	sites := make([]domain.Site, len(rows))
	for i, rw := range rows {
		sites[i] = rw.toDomain()
	}
	return sites, nil
}

// GetByKey returns a custom site by key.
func (r *Repo) GetByKey(ctx context.Context, key string) (*domain.Site, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	if err := pgxscan.Get(ctx, q, &stored, getByKeySQL, key); err != nil {
		return nil, postgres.MapError(err, "custom site", key)
	}

	site := stored.toDomain()
	return &site, nil
}

// Create inserts a custom site and returns the stored row.
func (r *Repo) Create(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	err := pgxscan.Get(ctx, q, &stored, insertSQL, site.Key, site.Name, site.Icon)
	if err != nil {
		return nil, postgres.MapError(err, "custom site", site.Key)
	}

	created := stored.toDomain()
	return &created, nil
}

// Rename changes a custom site's display name. Returns domain.ErrNotFound
// when the key is unknown.
func (r *Repo) Rename(ctx context.Context, key, name string) (*domain.Site, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	if err := pgxscan.Get(ctx, q, &stored, renameSQL, key, name); err != nil {
		return nil, postgres.MapError(err, "custom site", key)
	}

	renamed := stored.toDomain()
	return &renamed, nil
}

// Delete removes a custom site. Returns domain.ErrNotFound when the key is
// unknown.
func (r *Repo) Delete(ctx context.Context, key string) error {
	q := postgres.QuerierFromCtx(ctx, r.q)

	tag, err := q.Exec(ctx, deleteSQL, key)
	if err != nil {
		return postgres.MapError(err, "custom site", key)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("custom site %s: %w", key, domain.ErrNotFound)
	}
	return nil
}
