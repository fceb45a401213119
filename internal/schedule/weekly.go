package schedule

import (
	"time"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
)

// WeekdayDist is a discrete distribution over days of the week, ordered
// Monday-first to match the week layout.
type WeekdayDist = dist.Dist[time.Weekday]

// SingleWeekday creates a weekday distribution with one certain day.
func SingleWeekday(day time.Weekday) *WeekdayDist {
	return dist.Singular(dates.CompareWeekdays, day)
}

// UniformWeekdays creates a weekday distribution where each given day is
// equally likely.
func UniformWeekdays(days ...time.Weekday) *WeekdayDist {
	return dist.Uniform(dates.CompareWeekdays, days...)
}

// WeekdaySchedule specifies when an event may occur within a particular
// week.
type WeekdaySchedule interface {
	// Week returns the occurrences within w, roughly chronological.
	Week(w dates.Week) []*WeekdayDist
}

// FixedWeekdays is a WeekdaySchedule where every week has the same
// occurrences.
type FixedWeekdays struct {
	Dists []*WeekdayDist
}

func (s FixedWeekdays) Week(dates.Week) []*WeekdayDist { return s.Dists }

// Weekly is a schedule on which the event occurs on specified days of week
// every Period weeks.
//
// When Period > 1, the phase is anchored at the first week of Active, so
// Active must have a proper lower bound; without one there is no week zero
// to count from and Events returns nothing.
type Weekly struct {
	Days   WeekdaySchedule
	Active dates.Range // zero value means all dates
	Period int         // every Period weeks; 0 or 1 means every week
	Except []dates.Range
}

// EveryWeek builds a Weekly occurring once per week on the given day.
func EveryWeek(day time.Weekday) Weekly {
	return Weekly{Days: FixedWeekdays{Dists: []*WeekdayDist{SingleWeekday(day)}}}
}

// EveryWeekIn builds a Weekly occurring once per week somewhere in the
// given weekday distribution.
func EveryWeekIn(d *WeekdayDist) Weekly {
	return Weekly{Days: FixedWeekdays{Dists: []*WeekdayDist{d}}}
}

func (s Weekly) Events(r dates.Range) []*DateDist {
	if s.Days == nil {
		return nil
	}
	active := activeRange(s.Active)
	span := r.Intersect(active)
	if span.IsEmpty() {
		return nil
	}
	period := s.Period
	if period < 1 {
		period = 1
	}
	if period > 1 && !active.HasLowerBound() {
		return nil
	}

	anchor := dates.WeekOf(active.Start)
	week := dates.WeekOf(span.Start)
	lastWeek := dates.WeekOf(span.End.AddDays(-1))

	var events []*DateDist
	for week.Compare(lastWeek) <= 0 {
		phase := week.Sub(anchor) % period
		if phase == 0 {
			for _, dayDist := range s.Days.Week(week) {
				event, err := dist.MapValues(dayDist, dates.Compare, week.Day)
				if err != nil {
					continue
				}
				// Exceptions remove outcomes without renormalizing: an
				// excepted date simply cannot happen.
				event = event.Subset(func(d dates.Date) bool { return !excluded(d, s.Except) })
				if event.CouldOccurIn(span.Start, span.End) {
					events = append(events, event)
				}
			}
		}
		week = week.Add(period - phase)
	}
	return events
}
