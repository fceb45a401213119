package flow

import (
	"fmt"
	"sort"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/schedule"
)

// Log is a human-readable description of one cash flow event, or of one
// bound of an event whose date is uncertain.
type Log struct {
	Date   dates.Date
	Bound  int  // < 0 lower bound, > 0 upper bound, 0 both
	Exact  bool // event is certain to respect the bound
	Amount dist.Float
	Source *Endpoint
	Sink   *Endpoint
}

// Marker renders the bound as a two-character glyph: vv/~v for lower
// bounds, ^^/~^ for upper bounds, ==/~~ for single-day events, with ~
// meaning the bound is inexact.
func (l Log) Marker() string {
	switch {
	case l.Bound < 0 && l.Exact:
		return "vv"
	case l.Bound < 0:
		return "~v"
	case l.Bound > 0 && l.Exact:
		return "^^"
	case l.Bound > 0:
		return "~^"
	case l.Exact:
		return "=="
	default:
		return "~~"
	}
}

func (l Log) String() string {
	return fmt.Sprintf("%s %s | $%s from %q to %q",
		l.Date, l.Marker(), l.Amount.Format(2), l.Source.Label, l.Sink.Label)
}

// GenerateLogs produces a description of each event of f within r, sorted
// by date with lower bounds before upper bounds on the same day.
func GenerateLogs(f *Scheduled, r dates.Range, tolerance float64) []Log {
	var logs []Log
	for _, event := range f.Schedule.Events(r) {
		logs = append(logs, eventLogs(f, event, r, tolerance)...)
	}
	SortLogs(logs)
	return logs
}

func eventLogs(f *Scheduled, event *schedule.DateDist, r dates.Range, tolerance float64) []Log {
	first, ok := event.LowerBound(r.Start)
	if !ok {
		return nil
	}
	last, ok := event.UpperBound(r.End.AddDays(-1))
	if !ok {
		return nil
	}

	outcomes := event.Outcomes()
	exactLower := first.Value == outcomes[0].Value
	exactUpper := last.Value == outcomes[len(outcomes)-1].Value &&
		dist.EffectivelyCertain(event.CumulativeProbability(last.Value), tolerance)

	if first.Value == last.Value {
		return []Log{{first.Value, 0, exactLower && exactUpper, f.Amount, f.Source, f.Sink}}
	}
	return []Log{
		{first.Value, -1, exactLower, f.Amount, f.Source, f.Sink},
		{last.Value, 1, exactUpper, f.Amount, f.Source, f.Sink},
	}
}

// SortLogs orders logs by date, then by bound so a day's lower bounds come
// before its upper bounds. The sort is stable, so logs already in event
// order stay that way within ties.
func SortLogs(logs []Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		if c := dates.Compare(logs[i].Date, logs[j].Date); c != 0 {
			return c < 0
		}
		return logs[i].Bound < logs[j].Bound
	})
}
