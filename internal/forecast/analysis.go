package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/flow"
)

// Analysis answers questions about a fixed set of cash flows over a fixed
// timeframe.
type Analysis struct {
	flows     []*flow.Scheduled
	dateRange dates.Range
	tolerance float64
}

// NewAnalysis creates an analysis over the given flows and timeframe.
func NewAnalysis(flows []*flow.Scheduled, r dates.Range, tolerance float64) *Analysis {
	return &Analysis{flows: flows, dateRange: r, tolerance: tolerance}
}

// Range returns the analysed timeframe.
func (a *Analysis) Range() dates.Range { return a.dateRange }

// Logs returns a description of every event of every flow in the
// timeframe, sorted by date.
func (a *Analysis) Logs() []flow.Log {
	var logs []flow.Log
	for _, f := range a.flows {
		logs = append(logs, flow.GenerateLogs(f, a.dateRange, a.tolerance)...)
	}
	flow.SortLogs(logs)
	return logs
}

// Summary is the total amount moved by a category of cash flows.
type Summary struct {
	Label string
	Total dist.Float
}

func (s Summary) String() string {
	return fmt.Sprintf("Total %s: $%s", s.Label, FormatMoney(s.Total))
}

// Summarize totals the flows accepted by match. A nil match accepts every
// flow.
func (a *Analysis) Summarize(label string, match func(*flow.Scheduled) bool) Summary {
	total := dist.Exactly(0)
	for _, f := range a.flows {
		if match == nil || match(f) {
			total = total.Add(flow.SummarizeTotal(f, a.dateRange, a.tolerance))
		}
	}
	return Summary{Label: label, Total: total}
}

// SummarizeTag totals the flows carrying the given tag, labelled by it.
func (a *Analysis) SummarizeTag(tag string) Summary {
	return a.Summarize(tag, func(f *flow.Scheduled) bool { return f.HasTag(tag) })
}

// Balances projects balance histories for every endpoint the flows touch.
func (a *Analysis) Balances(initial map[*flow.Endpoint]dist.Float) (map[*flow.Endpoint][]flow.BalanceRecord, error) {
	return flow.Simulate(a.flows, a.dateRange, initial, a.tolerance)
}

// FormatMoney renders an uncertain amount as money with two decimal
// places: a bare value when exact, otherwise "[min, (mean), max]".
func FormatMoney(f dist.Float) string {
	if f.IsSingular() {
		return money(f.Min)
	}
	return fmt.Sprintf("[%s, (%s), %s]", money(f.Min), money(f.Mean), money(f.Max))
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
