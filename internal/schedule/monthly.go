package schedule

import (
	"cmp"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
)

// MonthdayDist is a discrete distribution over days of the month (1-31).
type MonthdayDist = dist.Dist[int]

// SingleMonthday creates a day-of-month distribution with one certain day.
func SingleMonthday(day int) *MonthdayDist {
	return dist.Singular(cmp.Compare[int], day)
}

// UniformMonthdays creates a day-of-month distribution where each given
// day is equally likely.
func UniformMonthdays(days ...int) *MonthdayDist {
	return dist.Uniform(cmp.Compare[int], days...)
}

// MonthdaySchedule specifies when an event may occur within a particular
// month.
type MonthdaySchedule interface {
	// Month returns the occurrences within m, roughly chronological.
	Month(m dates.Month) []*MonthdayDist
}

// FixedMonthdays is a MonthdaySchedule where every month has the same
// occurrences.
type FixedMonthdays struct {
	Dists []*MonthdayDist
}

func (s FixedMonthdays) Month(dates.Month) []*MonthdayDist { return s.Dists }

// Monthly is a schedule on which the event occurs on specified days of
// month every Period months.
//
// When Period > 1, the phase is anchored at the first month of Active, so
// Active must have a proper lower bound; without one there is no month zero
// to count from and Events returns nothing. Days that do not exist in a
// given month (e.g. the 31st in April) are dropped for that month.
type Monthly struct {
	Days   MonthdaySchedule
	Active dates.Range // zero value means all dates
	Period int         // every Period months; 0 or 1 means every month
	Except []dates.Range
}

// EveryMonth builds a Monthly occurring once per month on the given day.
func EveryMonth(day int) Monthly {
	return Monthly{Days: FixedMonthdays{Dists: []*MonthdayDist{SingleMonthday(day)}}}
}

// EveryMonthIn builds a Monthly occurring once per month somewhere in the
// given day-of-month distribution.
func EveryMonthIn(d *MonthdayDist) Monthly {
	return Monthly{Days: FixedMonthdays{Dists: []*MonthdayDist{d}}}
}

func (s Monthly) Events(r dates.Range) []*DateDist {
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

	anchor := dates.MonthOf(active.Start)
	month := dates.MonthOf(span.Start)
	lastMonth := dates.MonthOf(span.End.AddDays(-1))

	var events []*DateDist
	for month.Compare(lastMonth) <= 0 {
		phase := month.Sub(anchor) % period
		if phase == 0 {
			for _, dayDist := range s.Days.Month(month) {
				valid := dayDist.Subset(month.HasDay)
				event, err := dist.MapValues(valid, dates.Compare, month.Day)
				if err != nil {
					continue
				}
				event = event.Subset(func(d dates.Date) bool { return !excluded(d, s.Except) })
				if event.CouldOccurIn(span.Start, span.End) {
					events = append(events, event)
				}
			}
		}
		month = month.Add(period - phase)
	}
	return events
}
