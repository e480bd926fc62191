package site

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rotalog/rotalog/internal/domain"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type customSiteRepoMock struct {
	ListFunc     func(ctx context.Context) ([]domain.Site, error)
	GetByKeyFunc func(ctx context.Context, key string) (*domain.Site, error)
	CreateFunc   func(ctx context.Context, site *domain.Site) (*domain.Site, error)
	RenameFunc   func(ctx context.Context, key, name string) (*domain.Site, error)
	DeleteFunc   func(ctx context.Context, key string) error
}

func (m *customSiteRepoMock) List(ctx context.Context) ([]domain.Site, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx)
}

func (m *customSiteRepoMock) GetByKey(ctx context.Context, key string) (*domain.Site, error) {
	return m.GetByKeyFunc(ctx, key)
}

func (m *customSiteRepoMock) Create(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	return m.CreateFunc(ctx, site)
}

func (m *customSiteRepoMock) Rename(ctx context.Context, key, name string) (*domain.Site, error) {
	return m.RenameFunc(ctx, key, name)
}

func (m *customSiteRepoMock) Delete(ctx context.Context, key string) error {
	return m.DeleteFunc(ctx, key)
}

type settingsRepoMock struct {
	settings domain.Settings
	updates  int
}

func (m *settingsRepoMock) Get(ctx context.Context) (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *settingsRepoMock) Update(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	m.settings = *settings
	m.updates++
	s := m.settings
	return &s, nil
}

type refresherMock struct{ calls int }

func (m *refresherMock) Refresh(ctx context.Context) error {
	m.calls++
	return nil
}

// txManagerMock runs the callback directly, no transaction.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(custom *customSiteRepoMock, settings *settingsRepoMock, refresher *refresherMock) *Service {
	return NewService(testLogger(), custom, settings, refresher, txManagerMock{})
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func TestService_Catalog_MergesDefaultsAndCustom(t *testing.T) {
	t.Parallel()

	customSite := domain.Site{Key: "custom_abc", Name: "Calf (left)", Kind: domain.SiteKindCustom}
	custom := &customSiteRepoMock{
		ListFunc: func(ctx context.Context) ([]domain.Site, error) {
			return []domain.Site{customSite}, nil
		},
	}
	settings := &settingsRepoMock{settings: domain.DefaultSettings()}
	settings.settings.EnabledSiteKeys = append(settings.settings.EnabledSiteKeys, "custom_abc")

	svc := newTestService(custom, settings, &refresherMock{})

	catalog, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if len(catalog) != len(domain.DefaultSites())+1 {
		t.Fatalf("catalog size = %d", len(catalog))
	}

	last := catalog[len(catalog)-1]
	if last.Key != "custom_abc" || !last.Enabled {
		t.Errorf("custom site = %+v, want enabled custom_abc", last)
	}
	for _, s := range catalog[:len(catalog)-1] {
		if !s.Enabled {
			t.Errorf("default site %s should be enabled by default settings", s.Key)
		}
	}
}

func TestService_Catalog_DisabledFlagApplied(t *testing.T) {
	t.Parallel()

	settings := &settingsRepoMock{settings: domain.DefaultSettings()}
	settings.settings.EnabledSiteKeys = []string{domain.SiteThighLeft}

	svc := newTestService(&customSiteRepoMock{}, settings, &refresherMock{})

	catalog, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	enabledCount := 0
	for _, s := range catalog {
		if s.Enabled {
			enabledCount++
			if s.Key != domain.SiteThighLeft {
				t.Errorf("unexpected enabled site %s", s.Key)
			}
		}
	}
	if enabledCount != 1 {
		t.Errorf("enabled count = %d, want 1", enabledCount)
	}
}

// ---------------------------------------------------------------------------
// Custom sites
// ---------------------------------------------------------------------------

func TestService_CreateCustomSite(t *testing.T) {
	t.Parallel()

	custom := &customSiteRepoMock{
		CreateFunc: func(ctx context.Context, site *domain.Site) (*domain.Site, error) {
			if !strings.HasPrefix(site.Key, "custom_") {
				t.Errorf("key = %q, want custom_ prefix", site.Key)
			}
			if site.Kind != domain.SiteKindCustom {
				t.Errorf("kind = %s, want CUSTOM", site.Kind)
			}
			return site, nil
		},
	}
	settings := &settingsRepoMock{settings: domain.DefaultSettings()}
	refresher := &refresherMock{}

	svc := newTestService(custom, settings, refresher)

	created, err := svc.CreateCustomSite(context.Background(), CreateCustomSiteInput{Name: "  Calf (left) "})
	if err != nil {
		t.Fatalf("CreateCustomSite() error = %v", err)
	}
	if created.Name != "Calf (left)" {
		t.Errorf("name = %q, want trimmed", created.Name)
	}
	if !created.Enabled {
		t.Error("new custom site must be enabled")
	}
	if !settings.settings.IsEnabled(created.Key) {
		t.Error("new site key missing from enabled set")
	}
	if refresher.calls != 1 {
		t.Errorf("refresh calls = %d, want 1", refresher.calls)
	}
}

func TestService_CreateCustomSite_EmptyName(t *testing.T) {
	t.Parallel()

	svc := newTestService(&customSiteRepoMock{}, &settingsRepoMock{settings: domain.DefaultSettings()}, &refresherMock{})

	_, err := svc.CreateCustomSite(context.Background(), CreateCustomSiteInput{Name: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestService_RenameCustomSite_RejectsBuiltIn(t *testing.T) {
	t.Parallel()

	svc := newTestService(&customSiteRepoMock{}, &settingsRepoMock{settings: domain.DefaultSettings()}, &refresherMock{})

	_, err := svc.RenameCustomSite(context.Background(), RenameCustomSiteInput{
		Key:  domain.SiteAbdomenLeft,
		Name: "My abdomen",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestService_DeleteCustomSite_LastEnabledRejected(t *testing.T) {
	t.Parallel()

	custom := &customSiteRepoMock{
		DeleteFunc: func(ctx context.Context, key string) error { return nil },
	}
	settings := &settingsRepoMock{settings: domain.Settings{
		MinRestDays:     3,
		EnabledSiteKeys: []string{"custom_only"},
	}}

	svc := newTestService(custom, settings, &refresherMock{})

	err := svc.DeleteCustomSite(context.Background(), "custom_only")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error = %v, want conflict for last enabled site", err)
	}
}

func TestService_DeleteCustomSite_RemovesFromEnabledSet(t *testing.T) {
	t.Parallel()

	custom := &customSiteRepoMock{
		DeleteFunc: func(ctx context.Context, key string) error { return nil },
	}
	base := domain.DefaultSettings()
	base.EnabledSiteKeys = append(base.EnabledSiteKeys, "custom_abc")
	settings := &settingsRepoMock{settings: base}
	refresher := &refresherMock{}

	svc := newTestService(custom, settings, refresher)

	if err := svc.DeleteCustomSite(context.Background(), "custom_abc"); err != nil {
		t.Fatalf("DeleteCustomSite() error = %v", err)
	}
	if settings.settings.IsEnabled("custom_abc") {
		t.Error("deleted site still in enabled set")
	}
	if refresher.calls != 1 {
		t.Errorf("refresh calls = %d, want 1", refresher.calls)
	}
}

// ---------------------------------------------------------------------------
// Enabled flags and settings
// ---------------------------------------------------------------------------

func TestService_SetSiteEnabled_DisableLastRejected(t *testing.T) {
	t.Parallel()

	settings := &settingsRepoMock{settings: domain.Settings{
		MinRestDays:     3,
		EnabledSiteKeys: []string{domain.SiteArmLeft},
	}}

	svc := newTestService(&customSiteRepoMock{}, settings, &refresherMock{})

	err := svc.SetSiteEnabled(context.Background(), domain.SiteArmLeft, false)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error = %v, want conflict", err)
	}
	if settings.updates != 0 {
		t.Error("settings must not be written on a rejected disable")
	}
}

func TestService_SetSiteEnabled_Toggle(t *testing.T) {
	t.Parallel()

	settings := &settingsRepoMock{settings: domain.DefaultSettings()}
	refresher := &refresherMock{}

	svc := newTestService(&customSiteRepoMock{}, settings, refresher)
	ctx := context.Background()

	if err := svc.SetSiteEnabled(ctx, domain.SiteLowerBack, false); err != nil {
		t.Fatalf("disable error = %v", err)
	}
	if settings.settings.IsEnabled(domain.SiteLowerBack) {
		t.Error("site still enabled after disable")
	}

	if err := svc.SetSiteEnabled(ctx, domain.SiteLowerBack, true); err != nil {
		t.Fatalf("enable error = %v", err)
	}
	if !settings.settings.IsEnabled(domain.SiteLowerBack) {
		t.Error("site not enabled after enable")
	}
	if refresher.calls != 2 {
		t.Errorf("refresh calls = %d, want 2", refresher.calls)
	}
}

func TestService_SetSiteEnabled_NoopWhenAlreadySet(t *testing.T) {
	t.Parallel()

	settings := &settingsRepoMock{settings: domain.DefaultSettings()}
	refresher := &refresherMock{}

	svc := newTestService(&customSiteRepoMock{}, settings, refresher)

	if err := svc.SetSiteEnabled(context.Background(), domain.SiteArmLeft, true); err != nil {
		t.Fatalf("error = %v", err)
	}
	if settings.updates != 0 || refresher.calls != 0 {
		t.Error("no-op toggle must not write or refresh")
	}
}

func TestService_SetSiteEnabled_UnknownSite(t *testing.T) {
	t.Parallel()

	custom := &customSiteRepoMock{
		GetByKeyFunc: func(ctx context.Context, key string) (*domain.Site, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(custom, &settingsRepoMock{settings: domain.DefaultSettings()}, &refresherMock{})

	err := svc.SetSiteEnabled(context.Background(), "custom_ghost", true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestService_UpdateSettings(t *testing.T) {
	t.Parallel()

	settings := &settingsRepoMock{settings: domain.DefaultSettings()}
	refresher := &refresherMock{}

	svc := newTestService(&customSiteRepoMock{}, settings, refresher)

	updated, err := svc.UpdateSettings(context.Background(), UpdateSettingsInput{
		MinRestDays: ptr(7),
	})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if updated.MinRestDays != 7 {
		t.Errorf("min rest days = %d, want 7", updated.MinRestDays)
	}
	if updated.ShowDisabledSites {
		t.Error("untouched field changed")
	}
	if refresher.calls != 1 {
		t.Errorf("refresh calls = %d, want 1", refresher.calls)
	}
}

func TestService_UpdateSettings_BoundsChecked(t *testing.T) {
	t.Parallel()

	svc := newTestService(&customSiteRepoMock{}, &settingsRepoMock{settings: domain.DefaultSettings()}, &refresherMock{})

	for _, bad := range []int{0, -1, 61} {
		_, err := svc.UpdateSettings(context.Background(), UpdateSettingsInput{MinRestDays: ptr(bad)})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("MinRestDays=%d: error = %v, want validation error", bad, err)
		}
	}
}
