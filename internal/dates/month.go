package dates

import (
	"fmt"
	"time"
)

// Month is a calendar month within a specific year.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf takes the month a date falls within.
func MonthOf(d Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// Range returns the range of dates the month spans.
func (m Month) Range() Range {
	first := Date{Year: m.Year, Month: m.Month, Day: 1}
	return HalfOpen(first, first.AddDays(m.Len()))
}

// Len returns the number of days in the month.
func (m Month) Len() int {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return int(first.AddDate(0, 1, 0).Sub(first) / (24 * time.Hour))
}

// Day creates the date for the given day of month. Out-of-range days are
// normalized like time.Date; use HasDay to test validity first.
func (m Month) Day(day int) Date {
	return New(m.Year, m.Month, day)
}

// HasDay reports whether the day of month exists in this month (e.g.
// February 30 does not).
func (m Month) HasDay(day int) bool {
	return day >= 1 && day <= m.Len()
}

// Contains reports whether a date falls within the month.
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Add returns the month n months later (n may be negative).
func (m Month) Add(n int) Month {
	return MonthOf(Of(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)))
}

// Sub returns the number of months from other to m.
func (m Month) Sub(other Month) int {
	return (m.Year-other.Year)*12 + int(m.Month) - int(other.Month)
}

// Compare orders two months chronologically.
func (m Month) Compare(other Month) int {
	if m.Year != other.Year {
		return sign(m.Year - other.Year)
	}
	return sign(int(m.Month) - int(other.Month))
}

// String renders the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
