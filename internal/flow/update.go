package flow

import (
	"sort"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/schedule"
)

// BalanceDelta is a change in an uncertain cash balance. The three
// components move independently: an uncertain outgoing event lowers the
// minimum as soon as it might happen but lowers the maximum only once it
// must have happened.
type BalanceDelta struct {
	Min  float64
	Mean float64
	Max  float64
}

// Add combines two deltas componentwise.
func (d BalanceDelta) Add(other BalanceDelta) BalanceDelta {
	return BalanceDelta{Min: d.Min + other.Min, Mean: d.Mean + other.Mean, Max: d.Max + other.Max}
}

// ApplyTo applies the delta to a balance. Accumulating many small deltas
// can drift the mean slightly outside [min, max], so the result is
// repaired rather than rejected.
func (d BalanceDelta) ApplyTo(balance dist.Float) dist.Float {
	return dist.Inexact(balance.Min+d.Min, balance.Mean+d.Mean, balance.Max+d.Max)
}

// BalanceUpdate describes a change in the balance of an endpoint caused by
// a possible cash flow event. The delta applies at the start of the day
// given by Date, equivalently at the end of the previous day.
type BalanceUpdate struct {
	Date     dates.Date
	Endpoint *Endpoint
	Delta    BalanceDelta
	Cause    *Scheduled
}

// GenerateUpdates produces the balance updates resulting from occurrences
// of f within r, in chronological order.
//
// The range must span the entire timeframe of interest: min and max
// bounds are placed relative to the visible portion of each event, so
// splicing or concatenating update sequences from different ranges is not
// safe.
func GenerateUpdates(f *Scheduled, r dates.Range, tolerance float64) []BalanceUpdate {
	events := f.Schedule.Events(r)
	groups := make([][]BalanceUpdate, 0, len(events))
	for _, event := range events {
		groups = append(groups, eventUpdates(f, event, r, tolerance))
	}
	return mergeUpdatesByDate(groups)
}

func eventUpdates(f *Scheduled, event *schedule.DateDist, r dates.Range, tolerance float64) []BalanceUpdate {
	amount := f.Amount
	var updates []BalanceUpdate

	// The first day the event could occur: the source might already have
	// paid out the largest amount, and the sink might have received it.
	first, ok := event.LowerBound(r.Start)
	if !ok {
		return nil
	}
	updates = append(updates,
		BalanceUpdate{first.Value, f.Source, BalanceDelta{Min: -amount.Max}, f},
		BalanceUpdate{first.Value, f.Sink, BalanceDelta{Max: amount.Max}, f})

	probInRange := event.ProbabilityIn(r.Start, r.End)

	for _, occ := range event.Iterate(r.Start, r.End) {
		// The mean moves at the end of the day of occurrence, i.e. the
		// start of the following day. That day may fall outside r, which
		// is fine: it is equivalent to the end of the last day in range.
		following := occ.Value.AddDays(1)
		// A certain occurrence moves the mean by the full amount.
		moved := amount.Mean * dist.ClampCertain(occ.Probability, tolerance)
		updates = append(updates,
			BalanceUpdate{following, f.Source, BalanceDelta{Mean: -moved}, f},
			BalanceUpdate{following, f.Sink, BalanceDelta{Mean: moved}, f})
	}

	inclusiveUpper := r.End.AddDays(-1)
	last, ok := event.UpperBound(inclusiveUpper)
	if ok && dist.EffectivelyCertain(event.CumulativeProbability(inclusiveUpper), tolerance) {
		// The event must have occurred by the end of this day.
		following := last.Value.AddDays(1)
		// Scale by the in-range probability so bounds stay consistent
		// when the event could also occur before the range: the source's
		// max must not fall below its mean, nor the sink's min rise above
		// its mean.
		moved := amount.Min * dist.ClampCertain(probInRange, tolerance)
		updates = append(updates,
			BalanceUpdate{following, f.Source, BalanceDelta{Max: -moved}, f},
			BalanceUpdate{following, f.Sink, BalanceDelta{Min: moved}, f})
	}

	return updates
}

// mergeUpdatesByDate merges chronologically ordered update sequences into
// one chronological sequence. Ties keep the input order, earlier groups
// first.
func mergeUpdatesByDate(groups [][]BalanceUpdate) []BalanceUpdate {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	merged := make([]BalanceUpdate, 0, n)
	for _, g := range groups {
		merged = append(merged, g...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}
