package site

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/rotalog/rotalog/internal/domain"
)

var siteColumns = []string{"key", "name", "icon", "created_at", "updated_at"}

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

func TestRepo_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(siteColumns).
		AddRow("custom_a", "Calf (left)", "", now.Add(-time.Hour), now).
		AddRow("custom_b", "Calf (right)", "", now, now)
	mock.ExpectQuery(`SELECT(.|\n)*FROM custom_sites(.|\n)*ORDER BY created_at ASC`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, s := range got {
		if s.Kind != domain.SiteKindCustom {
			t.Errorf("site %s kind = %s, want CUSTOM", s.Key, s.Kind)
		}
	}
}

func TestRepo_GetByKey_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT`).WithArgs("custom_ghost").WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByKey(context.Background(), "custom_ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(siteColumns).
		AddRow("custom_a", "Calf (left)", "leg", now, now)
	mock.ExpectQuery(`INSERT INTO custom_sites`).
		WithArgs("custom_a", "Calf (left)", "leg").
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), &domain.Site{
		Key:  "custom_a",
		Name: "Calf (left)",
		Icon: "leg",
		Kind: domain.SiteKindCustom,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Key != "custom_a" || created.Kind != domain.SiteKindCustom {
		t.Errorf("Create() = %+v", created)
	}
}

func TestRepo_Rename(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(siteColumns).
		AddRow("custom_a", "Upper calf", "", now, now)
	mock.ExpectQuery(`UPDATE custom_sites`).
		WithArgs("custom_a", "Upper calf").
		WillReturnRows(rows)

	renamed, err := repo.Rename(context.Background(), "custom_a", "Upper calf")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if renamed.Name != "Upper calf" {
		t.Errorf("name = %q", renamed.Name)
	}
}

func TestRepo_Delete(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "deleted", rows: 1},
		{name: "not found", rows: 0, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(`DELETE FROM custom_sites`).
				WithArgs("custom_a").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.rows))

			err := repo.Delete(context.Background(), "custom_a")
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
