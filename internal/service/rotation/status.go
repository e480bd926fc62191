package rotation

import (
	"time"

	"github.com/rotalog/rotalog/internal/domain"
)

// RestFor derives the rest value of a site from its most recent placement
// timestamp. lastUsed == nil means the site has never been used. A future
// timestamp produces a negative day count; it is preserved as-is so the UI
// can surface it, and it naturally fails the rest check.
func RestFor(now time.Time, lastUsed *time.Time, loc *time.Location) domain.Rest {
	if lastUsed == nil {
		return domain.RestNever()
	}
	return domain.RestUsed(DaysBetween(*lastUsed, now, loc))
}

// StateFor maps a rest value to the tri-state site condition.
func StateFor(rest domain.Rest, minRestDays int) domain.RestState {
	switch {
	case rest.Never():
		return domain.RestStateNeverUsed
	case rest.Rested(minRestDays):
		return domain.RestStateReady
	default:
		return domain.RestStateResting
	}
}

// Statuses computes the per-site status for every site in catalog order.
// lastUsed maps site key to the most recent placement timestamp; sites
// absent from the map are never-used.
func Statuses(now time.Time, sites []domain.Site, lastUsed map[string]time.Time, minRestDays int, loc *time.Location) []domain.SiteStatus {
	statuses := make([]domain.SiteStatus, len(sites))
	for i, site := range sites {
		var last *time.Time
		if t, ok := lastUsed[site.Key]; ok {
			last = &t
		}
		rest := RestFor(now, last, loc)
		statuses[i] = domain.SiteStatus{
			Site:  site,
			Rest:  rest,
			State: StateFor(rest, minRestDays),
		}
	}
	return statuses
}

// LastUsedBySite extracts the most recent placement timestamp per site.
// Placements must be sorted descending by time, so the first record seen
// for a site is its latest.
func LastUsedBySite(placements []domain.Placement) map[string]time.Time {
	last := make(map[string]time.Time)
	for _, p := range placements {
		if _, ok := last[p.SiteKey]; !ok {
			last[p.SiteKey] = p.OccurredAt
		}
	}
	return last
}
