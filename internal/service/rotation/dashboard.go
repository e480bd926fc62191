package rotation

import (
	"context"
	"log/slog"

	"github.com/rotalog/rotalog/internal/domain"
)

// Dashboard returns the aggregated rotation state. The first read after a
// mutation (or after startup) computes it; afterwards reads serve the cached
// snapshot. Mutating services call Refresh, so the snapshot is never stale
// relative to the last completed mutation.
func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil {
		return *snap, nil
	}
	return s.refresh(ctx)
}

// Refresh recomputes the dashboard snapshot. Placement and site mutations
// call this eagerly after every write rather than invalidating lazily, so a
// UI reading from multiple callbacks never sees a half-updated view.
func (s *Service) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

func (s *Service) refresh(ctx context.Context) (domain.Dashboard, error) {
	placements, sites, settings, err := s.load(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}

	now := s.clock.Now()
	enabled := enabledSites(sites)
	lastUsed := LastUsedBySite(placements)

	scoreFrom := now.AddDate(0, 0, -s.params.DashboardRangeDays)

	dashboard := domain.Dashboard{
		Recommendation:  Recommend(now, placements, enabled, settings.MinRestDays, s.loc),
		Statuses:        Statuses(now, visibleSites(sites, settings), lastUsed, settings.MinRestDays, s.loc),
		Streak:          Streak(placements, now, s.loc),
		Score:           Score(placements, scoreFrom, now, settings.MinRestDays, len(enabled), s.params.ScoreMinPlacements, s.loc),
		TotalPlacements: len(placements),
		GeneratedAt:     now,
	}

	s.mu.Lock()
	s.snapshot = &dashboard
	s.mu.Unlock()

	s.log.InfoContext(ctx, "dashboard refreshed",
		slog.Int("total_placements", dashboard.TotalPlacements),
		slog.Int("streak", dashboard.Streak),
		slog.Int("score", dashboard.Score.Total),
	)

	return dashboard, nil
}
