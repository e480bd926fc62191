package rotation

import (
	"time"

	"github.com/rotalog/rotalog/internal/domain"
)

// Heatmap buckets placements by site within [start, end] (inclusive calendar
// days) and computes per-site usage. The result always holds one entry per
// site in catalog order, zero-filled for unused sites — charting layers rely
// on the series being dense.
func Heatmap(placements []domain.Placement, start, end time.Time, sites []domain.Site, loc *time.Location) []domain.HeatmapEntry {
	rangeStart := DayStart(start, loc)
	rangeEnd := DayStart(end, loc)

	counts := make(map[string]int)
	lastUsed := make(map[string]time.Time)
	total := 0
	maxCount := 0

	for _, p := range placements {
		day := DayStart(p.OccurredAt, loc)
		if day.Before(rangeStart) || day.After(rangeEnd) {
			continue
		}
		counts[p.SiteKey]++
		total++
		if counts[p.SiteKey] > maxCount {
			maxCount = counts[p.SiteKey]
		}
		if t, ok := lastUsed[p.SiteKey]; !ok || p.OccurredAt.After(t) {
			lastUsed[p.SiteKey] = p.OccurredAt
		}
	}

	entries := make([]domain.HeatmapEntry, len(sites))
	for i, site := range sites {
		count := counts[site.Key]
		entry := domain.HeatmapEntry{
			Site:       site,
			UsageCount: count,
		}
		if maxCount > 0 {
			entry.Intensity = float64(count) / float64(maxCount)
		}
		if total > 0 {
			entry.PercentOfTotal = float64(count) / float64(total) * 100
		}
		if t, ok := lastUsed[site.Key]; ok {
			last := t
			entry.LastUsed = &last
		}
		entries[i] = entry
	}
	return entries
}
