package placement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/rotalog/rotalog/internal/domain"
)

var placementColumns = []string{"id", "site_key", "occurred_at", "note", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		mock.Close()
	})
	return New(mock), mock
}

func TestRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	now := time.Now().UTC()
	note := "left side"

	rows := pgxmock.NewRows(placementColumns).
		AddRow(id, "abdomen_left", now, &note, now, now)
	mock.ExpectQuery(`INSERT INTO placements`).
		WithArgs(id, "abdomen_left", now, &note).
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), &domain.Placement{
		ID:         id,
		SiteKey:    "abdomen_left",
		OccurredAt: now,
		Note:       &note,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != id {
		t.Errorf("ID = %s, want %s", created.ID, id)
	}
	if created.SiteKey != "abdomen_left" {
		t.Errorf("SiteKey = %s, want abdomen_left", created.SiteKey)
	}
	if created.Note == nil || *created.Note != note {
		t.Errorf("Note = %v, want %q", created.Note, note)
	}
}

func TestRepo_GetByID(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(placementColumns).
					AddRow(id, "thigh_right", now, (*string)(nil), now, now)
				mock.ExpectQuery(`SELECT`).WithArgs(id).WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT`).WithArgs(id).WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.GetByID(context.Background(), id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetByID() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID() error = %v", err)
			}
			if got.ID != id || got.SiteKey != "thigh_right" {
				t.Errorf("GetByID() = %+v", got)
			}
			if got.Note != nil {
				t.Errorf("Note = %v, want nil", got.Note)
			}
		})
	}
}

func TestRepo_Update(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	now := time.Now().UTC()

	rows := pgxmock.NewRows(placementColumns).
		AddRow(id, "arm_left", now, (*string)(nil), now, now)
	mock.ExpectQuery(`UPDATE placements`).
		WithArgs(id, "arm_left", now, (*string)(nil)).
		WillReturnRows(rows)

	updated, err := repo.Update(context.Background(), &domain.Placement{
		ID:         id,
		SiteKey:    "arm_left",
		OccurredAt: now,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.SiteKey != "arm_left" {
		t.Errorf("SiteKey = %s, want arm_left", updated.SiteKey)
	}
}

func TestRepo_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM placements`).
					WithArgs(id).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM placements`).
					WithArgs(id).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			err := repo.Delete(context.Background(), id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Delete() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
		})
	}
}

func TestRepo_ListAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(placementColumns).
		AddRow(uuid.New(), "abdomen_left", now, (*string)(nil), now, now).
		AddRow(uuid.New(), "thigh_left", now.Add(-24*time.Hour), (*string)(nil), now, now)
	mock.ExpectQuery(`SELECT(.|\n)*FROM placements(.|\n)*ORDER BY occurred_at DESC`).
		WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SiteKey != "abdomen_left" || got[1].SiteKey != "thigh_left" {
		t.Errorf("unexpected order: %s, %s", got[0].SiteKey, got[1].SiteKey)
	}
}

func TestRepo_CountAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM placements`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountAll(context.Background())
	if err != nil {
		t.Fatalf("CountAll() error = %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
}

func TestRepo_List_WithFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	from := now.Add(-7 * 24 * time.Hour)
	siteKey := "arm_right"

	mock.ExpectQuery(`SELECT count\(\*\) FROM placements WHERE`).
		WithArgs(from, siteKey).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	rows := pgxmock.NewRows(placementColumns).
		AddRow(uuid.New(), siteKey, now, (*string)(nil), now, now)
	mock.ExpectQuery(`SELECT(.|\n)*FROM placements WHERE(.|\n)*LIMIT 20 OFFSET 0`).
		WithArgs(from, siteKey).
		WillReturnRows(rows)

	got, total, err := repo.List(context.Background(), domain.PlacementFilter{
		From:    &from,
		SiteKey: &siteKey,
		Limit:   20,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	if len(got) != 1 || got[0].SiteKey != siteKey {
		t.Errorf("List() = %+v", got)
	}
}
