package rotation

import (
	"time"

	"github.com/rotalog/rotalog/internal/domain"
)

// DefaultBucketCap bounds the number of trend buckets generated for a single
// range. Bucket generation walks from start to end; the cap turns a
// malformed or pathologically large range into truncated output instead of
// an unbounded loop.
const DefaultBucketCap = 1000

// autoWeekThresholdDays is the range length at which auto granularity
// switches from daily to weekly buckets.
const autoWeekThresholdDays = 30

// Trend buckets placements into a dense, gap-free, ascending series over
// [start, end]. Granularity GranularityAuto picks day for short ranges and
// week otherwise; weeks are ISO weeks starting Monday. Every generated
// bucket appears in the output, zero-filled when empty.
func Trend(placements []domain.Placement, start, end time.Time, g domain.TrendGranularity, bucketCap int, loc *time.Location) []domain.TrendPoint {
	g = resolveGranularity(g, start, end, loc)
	buckets := bucketStarts(start, end, g, bucketCap, loc)

	counts := make(map[time.Time]int)
	for _, p := range placements {
		counts[bucketStart(p.OccurredAt, g, loc)]++
	}

	points := make([]domain.TrendPoint, len(buckets))
	for i, b := range buckets {
		points[i] = domain.TrendPoint{PeriodStart: b, Count: counts[b]}
	}
	return points
}

// TrendBySite applies the same bucketing independently per site, one dense
// series for each site given.
func TrendBySite(placements []domain.Placement, start, end time.Time, g domain.TrendGranularity, bucketCap int, sites []domain.Site, loc *time.Location) []domain.SiteTrend {
	g = resolveGranularity(g, start, end, loc)
	buckets := bucketStarts(start, end, g, bucketCap, loc)

	counts := make(map[string]map[time.Time]int, len(sites))
	for _, p := range placements {
		m := counts[p.SiteKey]
		if m == nil {
			m = make(map[time.Time]int)
			counts[p.SiteKey] = m
		}
		m[bucketStart(p.OccurredAt, g, loc)]++
	}

	trends := make([]domain.SiteTrend, len(sites))
	for i, site := range sites {
		points := make([]domain.TrendPoint, len(buckets))
		for j, b := range buckets {
			points[j] = domain.TrendPoint{PeriodStart: b, Count: counts[site.Key][b]}
		}
		trends[i] = domain.SiteTrend{Site: site, Points: points}
	}
	return trends
}

func resolveGranularity(g domain.TrendGranularity, start, end time.Time, loc *time.Location) domain.TrendGranularity {
	if g == domain.GranularityDay || g == domain.GranularityWeek {
		return g
	}
	if DaysBetween(start, end, loc) < autoWeekThresholdDays {
		return domain.GranularityDay
	}
	return domain.GranularityWeek
}

func bucketStart(t time.Time, g domain.TrendGranularity, loc *time.Location) time.Time {
	if g == domain.GranularityWeek {
		return WeekStart(t, loc)
	}
	return DayStart(t, loc)
}

// bucketStarts generates the complete ordered bucket sequence spanning
// [start, end], capped. An end before start yields a single bucket, never an
// empty or runaway series.
func bucketStarts(start, end time.Time, g domain.TrendGranularity, bucketCap int, loc *time.Location) []time.Time {
	if bucketCap <= 0 {
		bucketCap = DefaultBucketCap
	}

	step := 1
	if g == domain.GranularityWeek {
		step = 7
	}

	last := bucketStart(end, g, loc)
	var out []time.Time
	for b := bucketStart(start, g, loc); !b.After(last); b = b.AddDate(0, 0, step) {
		out = append(out, b)
		if len(out) >= bucketCap {
			break
		}
	}
	if len(out) == 0 {
		out = append(out, bucketStart(start, g, loc))
	}
	return out
}
