package rotation

import (
	"time"

	"github.com/rotalog/rotalog/internal/domain"
)

// Streak counts consecutive calendar days with at least one placement,
// ending today or yesterday. A most recent placement older than yesterday
// means the streak is broken and the count is zero.
func Streak(placements []domain.Placement, now time.Time, loc *time.Location) int {
	if len(placements) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(placements))
	latest := DayStart(placements[0].OccurredAt, loc)
	for _, p := range placements {
		day := DayStart(p.OccurredAt, loc)
		days[day] = true
		if day.After(latest) {
			latest = day
		}
	}

	yesterday := DayStart(now, loc).AddDate(0, 0, -1)
	if latest.Before(yesterday) {
		return 0
	}

	streak := 0
	for day := latest; days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
