package schedule

import (
	"time"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
)

// DateDist is a discrete distribution over dates.
type DateDist = dist.Dist[dates.Date]

// Schedule is a rule specifying when an event may occur. Each event is
// given as a distribution of the dates it might fall on.
type Schedule interface {
	// Events returns the event distributions that could occur within r,
	// roughly in chronological order. Distributions of adjacent events may
	// overlap. Every returned distribution has at least one outcome
	// inside r, though outcomes outside r are retained so probabilities
	// stay unconditional.
	Events(r dates.Range) []*DateDist
}

// SingularDate creates a date distribution with one certain date.
func SingularDate(d dates.Date) *DateDist {
	return dist.Singular(dates.Compare, d)
}

// UniformDates creates a date distribution where each given date is
// equally likely.
func UniformDates(ds ...dates.Date) *DateDist {
	return dist.Uniform(dates.Compare, ds...)
}

// Never is a schedule on which the event never occurs.
type Never struct{}

func (Never) Events(dates.Range) []*DateDist { return nil }

// Once is a schedule on which the event occurs exactly once, on a fixed
// date.
type Once struct {
	On dates.Date
}

func (s Once) Events(r dates.Range) []*DateDist {
	if !r.Contains(s.On) {
		return nil
	}
	return []*DateDist{SingularDate(s.On)}
}

// OnceIn is a schedule on which the event occurs exactly once, somewhere
// in a distribution of dates.
type OnceIn struct {
	Dist *DateDist
}

func (s OnceIn) Events(r dates.Range) []*DateDist {
	if r.IsEmpty() || !s.Dist.CouldOccurIn(r.Start, r.End) {
		return nil
	}
	return []*DateDist{s.Dist}
}

// Daily is a schedule on which the event occurs every day within Active,
// excepting the listed dates.
type Daily struct {
	Active dates.Range   // zero value means all dates
	Except []dates.Range // dates on which the event does not occur
}

func (s Daily) Events(r dates.Range) []*DateDist {
	return eachDay(r, s.Active, s.Except, nil)
}

// Weekdays is a schedule on which the event occurs every Monday to Friday
// within Active, excepting the listed dates.
type Weekdays struct {
	Active dates.Range
	Except []dates.Range
}

func (s Weekdays) Events(r dates.Range) []*DateDist {
	return eachDay(r, s.Active, s.Except, func(d dates.Date) bool {
		wd := d.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	})
}

// Weekends is a schedule on which the event occurs every Saturday and
// Sunday within Active, excepting the listed dates.
type Weekends struct {
	Active dates.Range
	Except []dates.Range
}

func (s Weekends) Events(r dates.Range) []*DateDist {
	return eachDay(r, s.Active, s.Except, func(d dates.Date) bool {
		wd := d.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	})
}

// activeRange interprets a zero-value range as "all dates".
func activeRange(r dates.Range) dates.Range {
	if r == (dates.Range{}) {
		return dates.All()
	}
	return r
}

// excluded reports whether d falls in any exception range.
func excluded(d dates.Date, except []dates.Range) bool {
	for _, r := range except {
		if r.Contains(d) {
			return true
		}
	}
	return false
}

// eachDay yields a certain occurrence for every day in the intersection of
// r and active that passes the filter and is not excepted.
func eachDay(r, active dates.Range, except []dates.Range, filter func(dates.Date) bool) []*DateDist {
	span := r.Intersect(activeRange(active))
	if span.IsEmpty() {
		return nil
	}
	var events []*DateDist
	for d := span.Start; d.Before(span.End); d = d.AddDays(1) {
		if filter != nil && !filter(d) {
			continue
		}
		if excluded(d, except) {
			continue
		}
		events = append(events, SingularDate(d))
	}
	return events
}
