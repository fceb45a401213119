package flow

import (
	"errors"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
)

// BalanceRecord is a snapshot of an endpoint's balance, taken at the start
// of the day given by Date, equivalently at the end of the previous day.
type BalanceRecord struct {
	Date   dates.Date
	Amount dist.Float
}

// AccumulateBalances folds a chronological sequence of updates into
// per-endpoint balance histories, one record per endpoint per day with
// changes.
//
// The starting balance for an endpoint is taken from initial when present,
// otherwise zero. Updates must be presorted in chronological order.
func AccumulateBalances(updates []BalanceUpdate, initial map[*Endpoint]dist.Float) (map[*Endpoint][]BalanceRecord, error) {
	balances := make(map[*Endpoint]dist.Float, len(initial))
	for e, b := range initial {
		balances[e] = b
	}

	result := make(map[*Endpoint][]BalanceRecord)
	for i := 0; i < len(updates); {
		day := updates[i].Date
		if i > 0 && day.Before(updates[i-1].Date) {
			return nil, errors.New("flow: updates must be in chronological order")
		}

		var changed []*Endpoint
		for ; i < len(updates) && updates[i].Date == day; i++ {
			u := updates[i]
			balances[u.Endpoint] = u.Delta.ApplyTo(balances[u.Endpoint])
			if !containsEndpoint(changed, u.Endpoint) {
				changed = append(changed, u.Endpoint)
			}
		}

		// Balances settle at the end of the day but are recorded as the
		// start of day, matching how updates are dated.
		for _, e := range changed {
			result[e] = append(result[e], BalanceRecord{Date: day, Amount: balances[e]})
		}
	}
	return result, nil
}

func containsEndpoint(endpoints []*Endpoint, e *Endpoint) bool {
	for _, other := range endpoints {
		if other == e {
			return true
		}
	}
	return false
}

// Simulate projects the balances of all endpoints touched by the given
// flows over r. Each endpoint in initial additionally gets an opening
// record at the start of r, and every endpoint gets a closing record at
// the end.
func Simulate(flows []*Scheduled, r dates.Range, initial map[*Endpoint]dist.Float, tolerance float64) (map[*Endpoint][]BalanceRecord, error) {
	groups := make([][]BalanceUpdate, 0, len(flows))
	for _, f := range flows {
		groups = append(groups, GenerateUpdates(f, r, tolerance))
	}
	records, err := AccumulateBalances(mergeUpdatesByDate(groups), initial)
	if err != nil {
		return nil, err
	}

	if !r.IsEmpty() {
		// Opening balances are never already present: accumulated records
		// start only after the first update.
		for e, balance := range initial {
			history := records[e]
			if len(history) == 0 || r.Start.Before(history[0].Date) {
				records[e] = append([]BalanceRecord{{Date: r.Start, Amount: balance}}, history...)
			}
		}
		for e, history := range records {
			if last := history[len(history)-1]; last.Date.Before(r.End) {
				records[e] = append(history, BalanceRecord{Date: r.End, Amount: last.Amount})
			}
		}
	}
	return records, nil
}

// SummarizeTotal calculates the distribution of the total amount moved by
// f within r.
func SummarizeTotal(f *Scheduled, r dates.Range, tolerance float64) dist.Float {
	if r.IsEmpty() {
		return dist.Exactly(0)
	}

	events := f.Schedule.Events(r)

	// The minimum total counts only the events certain to occur in range;
	// the maximum counts every possible event. Events from a schedule
	// always have a nonzero in-range probability.
	certain := 0
	totalProbability := 0.0
	for _, event := range events {
		p := event.ProbabilityIn(r.Start, r.End)
		if dist.EffectivelyCertain(p, tolerance) {
			certain++
		}
		totalProbability += p
	}

	return dist.Float{
		Min:  f.Amount.Min * float64(certain),
		Mean: f.Amount.Mean * totalProbability,
		Max:  f.Amount.Max * float64(len(events)),
	}
}
