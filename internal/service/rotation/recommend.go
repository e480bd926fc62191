package rotation

import (
	"sort"
	"time"

	"github.com/rotalog/rotalog/internal/domain"
)

// Recommend picks the next site to use.
//
// With no placements at all, the fixed starting site is recommended (or the
// first enabled site when the starting site itself is disabled). Otherwise
// enabled sites are ranked most-rested first — never-used ahead of any day
// count — and the first rested one wins. If nothing has met the rest period
// yet, the longest-rested site is returned anyway so the caller always has
// an answer.
//
// Returns nil only when enabled is empty, which the settings invariant
// should prevent.
func Recommend(now time.Time, placements []domain.Placement, enabled []domain.Site, minRestDays int, loc *time.Location) *domain.Recommendation {
	if len(enabled) == 0 {
		return nil
	}

	if len(placements) == 0 {
		site := enabled[0]
		for _, s := range enabled {
			if s.Key == domain.StartingSiteKey {
				site = s
				break
			}
		}
		return &domain.Recommendation{
			Site:   site,
			Rest:   domain.RestNever(),
			Reason: domain.ReasonFirstPlacement,
		}
	}

	lastUsed := LastUsedBySite(placements)

	type candidate struct {
		site domain.Site
		rest domain.Rest
	}
	candidates := make([]candidate, len(enabled))
	for i, site := range enabled {
		var last *time.Time
		if t, ok := lastUsed[site.Key]; ok {
			last = &t
		}
		candidates[i] = candidate{site: site, rest: RestFor(now, last, loc)}
	}

	// Stable keeps catalog order among equally-rested sites.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rest.Compare(candidates[j].rest) > 0
	})

	for _, c := range candidates {
		if !c.rest.Rested(minRestDays) {
			continue
		}
		reason := domain.ReasonLongestRest
		if c.rest.Never() {
			reason = domain.ReasonNeverUsed
		}
		return &domain.Recommendation{Site: c.site, Rest: c.rest, Reason: reason}
	}

	// Every site was used within the rest window: fall back to the one
	// that has rested longest.
	best := candidates[0]
	return &domain.Recommendation{
		Site:   best.site,
		Rest:   best.rest,
		Reason: domain.ReasonAllRecentlyUsed,
	}
}
