package rotation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rotalog/rotalog/internal/domain"
)

// Score rates rotation discipline over [start, end] on a 0–100 scale:
// up to 50 points for how evenly usage is spread across the N sites and up
// to 50 for how consistently the minimum rest period was respected.
//
// Fewer than minPlacements placements in range is a defined zero result with
// an explanation, not an error — scoring sparse data only produces noise.
func Score(placements []domain.Placement, start, end time.Time, minRestDays, siteCount, minPlacements int, loc *time.Location) domain.RotationScore {
	inRange := filterRange(placements, start, end, loc)

	if len(inRange) < minPlacements {
		return domain.RotationScore{
			Explanation: fmt.Sprintf(
				"Not enough data to rate rotation yet. Log at least %d placements in this period.",
				minPlacements),
		}
	}

	dist := distributionScore(inRange, siteCount)
	compliance := complianceScore(inRange, minRestDays, loc)
	total := dist + compliance

	return domain.RotationScore{
		Total:          total,
		Distribution:   dist,
		RestCompliance: compliance,
		Explanation:    explain(total, dist, compliance),
	}
}

// distributionScore measures evenness as sum-of-squared deviations from the
// ideal per-site count, normalized by the worst case of every placement on a
// single site: total² · (N-1) / N. That normalizer is approximate for small
// totals relative to N, so the result is clamped after rounding.
func distributionScore(placements []domain.Placement, siteCount int) int {
	if siteCount <= 0 {
		return 0
	}

	counts := make(map[string]int)
	for _, p := range placements {
		counts[p.SiteKey]++
	}

	total := float64(len(placements))
	n := float64(siteCount)
	ideal := total / n

	sumSq := 0.0
	for _, c := range counts {
		d := float64(c) - ideal
		sumSq += d * d
	}
	// Sites with zero usage each deviate by the full ideal count.
	sumSq += float64(siteCount-len(counts)) * ideal * ideal

	maxVariance := total * total * (n - 1) / n
	if maxVariance <= 0 {
		if sumSq == 0 {
			return 50
		}
		return 0
	}

	score := int(math.Round(50 * (1 - sumSq/maxVariance)))
	return clamp(score, 0, 50)
}

// complianceScore checks every consecutive same-site pair: a whole-day gap
// below the rest period is a violation. No site reused in range means there
// was nothing to violate, which is perfect compliance.
func complianceScore(placements []domain.Placement, minRestDays int, loc *time.Location) int {
	bySite := make(map[string][]time.Time)
	for _, p := range placements {
		bySite[p.SiteKey] = append(bySite[p.SiteKey], p.OccurredAt)
	}

	violations := 0
	checks := 0
	for _, times := range bySite {
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
		for i := 1; i < len(times); i++ {
			checks++
			if DaysBetween(times[i-1], times[i], loc) < minRestDays {
				violations++
			}
		}
	}

	if checks == 0 {
		return 50
	}

	rate := 1 - float64(violations)/float64(checks)
	return clamp(int(math.Round(50*rate)), 0, 50)
}

func explain(total, dist, compliance int) string {
	var overall string
	switch {
	case total >= 80:
		overall = "Excellent rotation."
	case total >= 60:
		overall = "Good rotation."
	case total >= 40:
		overall = "Fair rotation, with room to improve."
	default:
		overall = "Poor rotation: sites are being overused."
	}

	var distPhrase string
	switch {
	case dist >= 40:
		distPhrase = "Usage is spread evenly across sites."
	case dist >= 25:
		distPhrase = "Usage leans on a few favorite sites."
	default:
		distPhrase = "Usage is concentrated on too few sites."
	}

	var compliancePhrase string
	switch {
	case compliance >= 40:
		compliancePhrase = "Rest periods are almost always respected."
	case compliance >= 25:
		compliancePhrase = "Rest periods are sometimes cut short."
	default:
		compliancePhrase = "Sites are often reused before they have rested."
	}

	return overall + " " + distPhrase + " " + compliancePhrase
}

func filterRange(placements []domain.Placement, start, end time.Time, loc *time.Location) []domain.Placement {
	rangeStart := DayStart(start, loc)
	rangeEnd := DayStart(end, loc)
	var out []domain.Placement
	for _, p := range placements {
		day := DayStart(p.OccurredAt, loc)
		if day.Before(rangeStart) || day.After(rangeEnd) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
