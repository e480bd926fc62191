package rotation

import (
	"context"

	"github.com/rotalog/rotalog/internal/domain"
)

type placementRepoMock struct {
	ListAllFunc  func(ctx context.Context) ([]domain.Placement, error)
	CountAllFunc func(ctx context.Context) (int, error)
}

func (m *placementRepoMock) ListAll(ctx context.Context) ([]domain.Placement, error) {
	return m.ListAllFunc(ctx)
}

func (m *placementRepoMock) CountAll(ctx context.Context) (int, error) {
	if m.CountAllFunc == nil {
		p, err := m.ListAllFunc(ctx)
		return len(p), err
	}
	return m.CountAllFunc(ctx)
}

type siteCatalogMock struct {
	CatalogFunc func(ctx context.Context) ([]domain.Site, error)
}

func (m *siteCatalogMock) Catalog(ctx context.Context) ([]domain.Site, error) {
	return m.CatalogFunc(ctx)
}

type settingsProviderMock struct {
	GetFunc func(ctx context.Context) (*domain.Settings, error)
}

func (m *settingsProviderMock) Get(ctx context.Context) (*domain.Settings, error) {
	return m.GetFunc(ctx)
}
