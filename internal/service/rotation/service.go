package rotation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rotalog/rotalog/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type placementRepo interface {
	// ListAll returns every placement sorted descending by occurrence time.
	ListAll(ctx context.Context) ([]domain.Placement, error)
	CountAll(ctx context.Context) (int, error)
}

type siteCatalog interface {
	// Catalog returns all known sites (default and custom) in display
	// order with enabled flags applied.
	Catalog(ctx context.Context) ([]domain.Site, error)
}

type settingsProvider interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Params holds the operator-tunable calculator knobs (not user settings).
type Params struct {
	// ScoreMinPlacements is the floor below which scoring returns zero
	// with an explanation instead of a noisy rating.
	ScoreMinPlacements int
	// TrendBucketCap bounds bucket generation on malformed ranges.
	TrendBucketCap int
	// DashboardRangeDays is the scoring window used by the dashboard.
	DashboardRangeDays int
}

func (p Params) withDefaults() Params {
	if p.ScoreMinPlacements <= 0 {
		p.ScoreMinPlacements = 5
	}
	if p.TrendBucketCap <= 0 {
		p.TrendBucketCap = DefaultBucketCap
	}
	if p.DashboardRangeDays <= 0 {
		p.DashboardRangeDays = 90
	}
	return p
}

// Service exposes the rotation calculators over the stored placement history.
// The calculators themselves are pure; the service supplies "now" from an
// injected clock and holds the eagerly-refreshed dashboard snapshot so UI
// reads never observe state stale relative to the last mutation.
type Service struct {
	placements placementRepo
	sites      siteCatalog
	settings   settingsProvider
	clock      clockwork.Clock
	loc        *time.Location
	params     Params
	log        *slog.Logger

	mu       sync.RWMutex
	snapshot *domain.Dashboard
}

// NewService creates the rotation service. loc defaults to time.Local.
func NewService(
	log *slog.Logger,
	placements placementRepo,
	sites siteCatalog,
	settings settingsProvider,
	clock clockwork.Clock,
	loc *time.Location,
	params Params,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		placements: placements,
		sites:      sites,
		settings:   settings,
		clock:      clock,
		loc:        loc,
		params:     params.withDefaults(),
		log:        log.With("service", "rotation"),
	}
}

// load fetches the inputs every calculator needs.
func (s *Service) load(ctx context.Context) ([]domain.Placement, []domain.Site, *domain.Settings, error) {
	placements, err := s.placements.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list placements: %w", err)
	}
	sites, err := s.sites.Catalog(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load site catalog: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load settings: %w", err)
	}
	return placements, sites, settings, nil
}

// visibleSites applies the disabled-site display preference.
func visibleSites(sites []domain.Site, settings *domain.Settings) []domain.Site {
	if settings.ShowDisabledSites {
		return sites
	}
	var out []domain.Site
	for _, site := range sites {
		if site.Enabled {
			out = append(out, site)
		}
	}
	return out
}

func enabledSites(sites []domain.Site) []domain.Site {
	var out []domain.Site
	for _, site := range sites {
		if site.Enabled {
			out = append(out, site)
		}
	}
	return out
}

// GetStatuses returns the per-site rest status in catalog order, honoring
// the disabled-site display preference.
func (s *Service) GetStatuses(ctx context.Context) ([]domain.SiteStatus, error) {
	placements, sites, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	return Statuses(now, visibleSites(sites, settings), LastUsedBySite(placements), settings.MinRestDays, s.loc), nil
}

// Recommend returns the next-site suggestion, or nil when no site is
// enabled (a state the settings invariant should prevent).
func (s *Service) Recommend(ctx context.Context) (*domain.Recommendation, error) {
	placements, sites, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rec := Recommend(s.clock.Now(), placements, enabledSites(sites), settings.MinRestDays, s.loc)
	if rec == nil {
		s.log.WarnContext(ctx, "no enabled sites, nothing to recommend")
		return nil, nil
	}
	return rec, nil
}

// RangeInput is an inclusive calendar-day range.
type RangeInput struct {
	From time.Time
	To   time.Time
}

// Validate checks all fields and collects all errors.
func (i *RangeInput) Validate() error {
	var errs []domain.FieldError

	if i.From.IsZero() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if i.To.IsZero() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Heatmap returns per-site usage over the range, one entry per visible site.
func (s *Service) Heatmap(ctx context.Context, input RangeInput) ([]domain.HeatmapEntry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	placements, sites, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Heatmap(placements, input.From, input.To, visibleSites(sites, settings), s.loc), nil
}

// Score rates rotation discipline over the range. N is the count of
// currently enabled sites.
func (s *Service) Score(ctx context.Context, input RangeInput) (domain.RotationScore, error) {
	if err := input.Validate(); err != nil {
		return domain.RotationScore{}, err
	}

	placements, sites, settings, err := s.load(ctx)
	if err != nil {
		return domain.RotationScore{}, err
	}
	return Score(placements, input.From, input.To, settings.MinRestDays,
		len(enabledSites(sites)), s.params.ScoreMinPlacements, s.loc), nil
}

// TrendInput selects a range and bucket granularity for trend series.
type TrendInput struct {
	From        time.Time
	To          time.Time
	Granularity domain.TrendGranularity
}

// Validate checks all fields and collects all errors.
func (i *TrendInput) Validate() error {
	var errs []domain.FieldError

	if i.From.IsZero() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if i.To.IsZero() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}
	if !i.Granularity.IsValid() {
		errs = append(errs, domain.FieldError{Field: "granularity", Message: "must be DAY or WEEK"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Trend returns the dense aggregate placement-count series over the range.
func (s *Service) Trend(ctx context.Context, input TrendInput) ([]domain.TrendPoint, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	placements, err := s.placements.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	return Trend(placements, input.From, input.To, input.Granularity, s.params.TrendBucketCap, s.loc), nil
}

// TrendBySite returns one dense series per visible site over the range.
func (s *Service) TrendBySite(ctx context.Context, input TrendInput) ([]domain.SiteTrend, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	placements, sites, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return TrendBySite(placements, input.From, input.To, input.Granularity,
		s.params.TrendBucketCap, visibleSites(sites, settings), s.loc), nil
}

// Streak returns the current consecutive-day placement streak.
func (s *Service) Streak(ctx context.Context) (int, error) {
	placements, err := s.placements.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list placements: %w", err)
	}
	return Streak(placements, s.clock.Now(), s.loc), nil
}
