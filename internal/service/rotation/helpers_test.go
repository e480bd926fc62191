package rotation

import (
	"time"

	"github.com/google/uuid"

	"github.com/rotalog/rotalog/internal/domain"
)

// Shared fixtures for the calculator tests. All tests run in UTC with fixed
// dates so results never depend on the host environment.

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func pl(site string, t time.Time) domain.Placement {
	return domain.Placement{ID: uuid.New(), SiteKey: site, OccurredAt: t}
}

// sites builds a minimal enabled catalog from keys.
func sites(keys ...string) []domain.Site {
	out := make([]domain.Site, len(keys))
	for i, k := range keys {
		out[i] = domain.Site{Key: k, Name: k, Kind: domain.SiteKindDefault, Enabled: true}
	}
	return out
}

func ptrTime(t time.Time) *time.Time { return &t }
