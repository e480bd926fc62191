// Package placement implements the placement repository using PostgreSQL.
// Fixed-shape queries use raw SQL consts; the filtered history listing is
// built dynamically with squirrel.
package placement

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/rotalog/rotalog/internal/adapter/postgres"
	"github.com/rotalog/rotalog/internal/domain"
)

// Repo provides placement persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new placement repository. q is normally the pgx pool; a
// transaction in the context takes precedence per query.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// row mirrors the placements table for pgxscan.
type row struct {
	ID         uuid.UUID `db:"id"`
	SiteKey    string    `db:"site_key"`
	OccurredAt time.Time `db:"occurred_at"`
	Note       *string   `db:"note"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Placement {
	return domain.Placement{
		ID:         r.ID,
		SiteKey:    r.SiteKey,
		OccurredAt: r.OccurredAt,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

const columns = "id, site_key, occurred_at, note, created_at, updated_at"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Raw SQL for fixed-shape queries
// ---------------------------------------------------------------------------

const insertSQL = `
INSERT INTO placements (id, site_key, occurred_at, note, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING ` + columns

const getByIDSQL = `
SELECT ` + columns + `
FROM placements
WHERE id = $1`

const updateSQL = `
UPDATE placements
SET site_key = $2, occurred_at = $3, note = $4, updated_at = now()
WHERE id = $1
RETURNING ` + columns

const deleteSQL = `DELETE FROM placements WHERE id = $1`

const listAllSQL = `
SELECT ` + columns + `
FROM placements
ORDER BY occurred_at DESC, created_at DESC`

const countAllSQL = `SELECT count(*) FROM placements`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a placement and returns the stored row.
func (r *Repo) Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	err := pgxscan.Get(ctx, q, &stored, insertSQL, p.ID, p.SiteKey, p.OccurredAt, p.Note)
	if err != nil {
		return nil, postgres.MapError(err, "placement", p.ID.String())
	}

	result := stored.toDomain()
	return &result, nil
}

// Update overwrites the mutable fields of a placement and returns the
// stored row. Returns domain.ErrNotFound when the ID is unknown.
func (r *Repo) Update(ctx context.Context, p *domain.Placement) (*domain.Placement, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	err := pgxscan.Get(ctx, q, &stored, updateSQL, p.ID, p.SiteKey, p.OccurredAt, p.Note)
	if err != nil {
		return nil, postgres.MapError(err, "placement", p.ID.String())
	}

	result := stored.toDomain()
	return &result, nil
}

// Delete removes a placement. Returns domain.ErrNotFound when the ID is
// unknown.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.q)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "placement", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("placement %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a placement by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Placement, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var stored row
	if err := pgxscan.Get(ctx, q, &stored, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "placement", id.String())
	}

	result := stored.toDomain()
	return &result, nil
}

// ListAll returns every placement sorted descending by occurrence time.
// The rotation calculators consume the full history.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Placement, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, listAllSQL); err != nil {
		return nil, postgres.MapError(err, "placement", "all")
	}

	return toDomainList(rows), nil
}

// CountAll returns the total number of placements.
func (r *Repo) CountAll(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	var count int
	if err := q.QueryRow(ctx, countAllSQL).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "placement", "all")
	}
	return count, nil
}

// List returns placements matching the filter, newest first, plus the
// total count matching the filter without pagination.
func (r *Repo) List(ctx context.Context, filter domain.PlacementFilter) ([]domain.Placement, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.q)

	where := filterConditions(filter)

	countQuery := builder.Select("count(*)").From("placements").Where(where)
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "placement", "list")
	}

	listQuery := builder.Select(columns).
		From("placements").
		Where(where).
		OrderBy("occurred_at DESC", "created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, listSQL, listArgs...); err != nil {
		return nil, 0, postgres.MapError(err, "placement", "list")
	}

	return toDomainList(rows), total, nil
}

func filterConditions(filter domain.PlacementFilter) squirrel.And {
	cond := squirrel.And{}
	if filter.From != nil {
		cond = append(cond, squirrel.GtOrEq{"occurred_at": *filter.From})
	}
	if filter.To != nil {
		cond = append(cond, squirrel.LtOrEq{"occurred_at": *filter.To})
	}
	if filter.SiteKey != nil {
		cond = append(cond, squirrel.Eq{"site_key": *filter.SiteKey})
	}
	return cond
}

func toDomainList(rows []row) []domain.Placement {
	placements := make([]domain.Placement, len(rows))
	for i, r := range rows {
		placements[i] = r.toDomain()
	}
	return placements
}
