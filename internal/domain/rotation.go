package domain

import "time"

// Rest is a tagged "days since last use" value. A site that has never been
// used is a distinct state, not a number: in ranking it beats any numeric
// rest value, however large. Keeping the comparator here makes that rule
// impossible to lose in a sort call.
type Rest struct {
	never bool
	days  int
}

// RestNever returns the rest value of a site with no placements.
func RestNever() Rest { return Rest{never: true} }

// RestUsed returns the rest value of a site last used the given number of
// whole calendar days ago. Negative values are legal: a placement with a
// future timestamp produces them and they must stay visible.
func RestUsed(days int) Rest { return Rest{days: days} }

// Never reports whether the site has never been used.
func (r Rest) Never() bool { return r.never }

// Days returns the day count and true, or 0 and false for a never-used site.
func (r Rest) Days() (int, bool) {
	if r.never {
		return 0, false
	}
	return r.days, true
}

// Rested reports whether the site satisfies the minimum rest period.
// Never-used sites are always rested; a negative day count never is.
func (r Rest) Rested(minRestDays int) bool {
	return r.never || r.days >= minRestDays
}

// Compare orders rest values by "more rested first": positive if r ranks
// ahead of other, negative if behind, zero if equal.
// never vs never → equal; never vs numeric → never wins; otherwise the
// larger day count wins.
func (r Rest) Compare(other Rest) int {
	switch {
	case r.never && other.never:
		return 0
	case r.never:
		return 1
	case other.never:
		return -1
	case r.days > other.days:
		return 1
	case r.days < other.days:
		return -1
	default:
		return 0
	}
}

// RestState is the tri-state site condition derived from Rest.
type RestState string

const (
	RestStateNeverUsed RestState = "NEVER_USED"
	RestStateResting   RestState = "RESTING"
	RestStateReady     RestState = "READY"
)

func (s RestState) String() string { return string(s) }

// SiteStatus is the per-site view of rest progress.
type SiteStatus struct {
	Site  Site
	Rest  Rest
	State RestState
}

// RecommendationReason explains why a site was recommended.
type RecommendationReason string

const (
	ReasonFirstPlacement  RecommendationReason = "FIRST_PLACEMENT"
	ReasonNeverUsed       RecommendationReason = "NEVER_USED"
	ReasonLongestRest     RecommendationReason = "LONGEST_REST"
	ReasonAllRecentlyUsed RecommendationReason = "ALL_RECENTLY_USED"
)

func (r RecommendationReason) String() string { return string(r) }

// Description returns the user-facing reason text.
func (r RecommendationReason) Description() string {
	switch r {
	case ReasonFirstPlacement:
		return "first placement"
	case ReasonNeverUsed:
		return "never used"
	case ReasonLongestRest:
		return "longest rest among available sites"
	case ReasonAllRecentlyUsed:
		return "all sites used recently"
	default:
		return string(r)
	}
}

// Recommendation is the next-site suggestion.
type Recommendation struct {
	Site   Site
	Rest   Rest
	Reason RecommendationReason
}

// HeatmapEntry is the per-site usage summary over a date range.
// One entry exists for every known site, zero-filled when unused.
type HeatmapEntry struct {
	Site           Site
	UsageCount     int
	Intensity      float64 // usage relative to the busiest site, 0..1
	LastUsed       *time.Time
	PercentOfTotal float64
}

// RotationScore is the 0–100 rotation-discipline rating.
type RotationScore struct {
	Total          int
	Distribution   int // 0–50, evenness of the usage distribution
	RestCompliance int // 0–50, adherence to the minimum rest period
	Explanation    string
}

// TrendGranularity selects the trend bucket size.
type TrendGranularity string

const (
	// GranularityAuto picks day for ranges under 30 days, week otherwise.
	GranularityAuto TrendGranularity = ""
	GranularityDay  TrendGranularity = "DAY"
	GranularityWeek TrendGranularity = "WEEK"
)

func (g TrendGranularity) String() string { return string(g) }

func (g TrendGranularity) IsValid() bool {
	switch g {
	case GranularityAuto, GranularityDay, GranularityWeek:
		return true
	}
	return false
}

// TrendPoint is one bucket of a dense placement-count series.
type TrendPoint struct {
	PeriodStart time.Time
	Count       int
}

// SiteTrend is a dense per-site series over the same buckets.
type SiteTrend struct {
	Site   Site
	Points []TrendPoint
}

// Dashboard aggregates the derived rotation state served to the UI.
type Dashboard struct {
	Recommendation  *Recommendation
	Statuses        []SiteStatus
	Streak          int
	Score           RotationScore
	TotalPlacements int
	GeneratedAt     time.Time
}
