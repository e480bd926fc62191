package rotation

import "time"

// Calendar-day math for the calculators. All comparisons are whole calendar
// days in a single location, never elapsed hours: a placement at 23:50
// yesterday is one day ago at 00:10 today.

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns midnight of the Monday of t's ISO week in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := DayStart(t, loc)
	// time.Weekday is Sunday=0; ISO weeks start on Monday.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// DaysBetween returns the whole-calendar-day difference to - from in loc.
// Negative when from is after to. The subtraction happens on UTC-anchored
// midnights so DST transitions cannot skew the division.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	f := from.In(loc)
	tt := to.In(loc)
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ad := a.In(loc)
	bd := b.In(loc)
	return ad.Year() == bd.Year() && ad.Month() == bd.Month() && ad.Day() == bd.Day()
}
