package forecast

import (
	"sort"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/flow"
)

// Series is a set of balance histories resampled onto one shared date
// axis, ready for tabulation, persistence, or charting by a caller.
type Series struct {
	Dates []dates.Date
	Min   map[*flow.Endpoint][]float64
	Mean  map[*flow.Endpoint][]float64
	Max   map[*flow.Endpoint][]float64
}

// ExtractSeries aligns per-endpoint balance records onto the union of
// their dates. Between records a balance holds its last value; before an
// endpoint's first record it is zero.
func ExtractSeries(records map[*flow.Endpoint][]flow.BalanceRecord) Series {
	seen := make(map[dates.Date]bool)
	var axis []dates.Date
	for _, history := range records {
		for _, rec := range history {
			if !seen[rec.Date] {
				seen[rec.Date] = true
				axis = append(axis, rec.Date)
			}
		}
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })

	s := Series{
		Dates: axis,
		Min:   make(map[*flow.Endpoint][]float64, len(records)),
		Mean:  make(map[*flow.Endpoint][]float64, len(records)),
		Max:   make(map[*flow.Endpoint][]float64, len(records)),
	}
	for e, history := range records {
		mins := make([]float64, len(axis))
		means := make([]float64, len(axis))
		maxs := make([]float64, len(axis))
		next := 0
		var minV, meanV, maxV float64
		for i, d := range axis {
			for next < len(history) && !d.Before(history[next].Date) {
				minV = history[next].Amount.Min
				meanV = history[next].Amount.Mean
				maxV = history[next].Amount.Max
				next++
			}
			mins[i], means[i], maxs[i] = minV, meanV, maxV
		}
		s.Min[e] = mins
		s.Mean[e] = means
		s.Max[e] = maxs
	}
	return s
}
