package dates

import "time"

// Week is a seven-day week starting on Monday.
type Week struct {
	Start Date // always a Monday when built via WeekOf
}

// WeekOf takes the week a date falls within. Weeks run Monday to Sunday.
func WeekOf(d Date) Week {
	return Week{Start: d.AddDays(-mondayOffset(d.Weekday()))}
}

// Range returns the range of dates the week spans.
func (w Week) Range() Range {
	return HalfOpen(w.Start, w.Start.AddDays(7))
}

// Day creates the date for the given day of week within this week.
func (w Week) Day(day time.Weekday) Date {
	return w.Start.AddDays(mondayOffset(day))
}

// Contains reports whether a date falls within the week.
func (w Week) Contains(d Date) bool {
	return w.Range().Contains(d)
}

// Add returns the week n weeks later (n may be negative).
func (w Week) Add(n int) Week {
	return Week{Start: w.Start.AddDays(7 * n)}
}

// Sub returns the number of weeks from other to w.
func (w Week) Sub(other Week) int {
	return other.Start.DaysUntil(w.Start) / 7
}

// Compare orders two weeks chronologically.
func (w Week) Compare(other Week) int {
	return w.Start.Compare(other.Start)
}

// mondayOffset maps a time.Weekday to its offset from Monday (Monday=0,
// Sunday=6).
func mondayOffset(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// CompareWeekdays orders days of week Monday-first (Monday < ... < Sunday),
// matching the week layout used by schedules.
func CompareWeekdays(a, b time.Weekday) int {
	return sign(mondayOffset(a) - mondayOffset(b))
}
