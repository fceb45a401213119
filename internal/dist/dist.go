package dist

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// cumulativeClamp bounds the floating-point repair applied to cumulative
// probabilities: a total within this distance of 1 is snapped to exactly 1.
const cumulativeClamp = 1e-9

// Outcome is a single possible value of a discrete distribution.
type Outcome[T any] struct {
	Value       T
	Probability float64 // unconditional probability of this value, in (0, 1]
	Cumulative  float64 // probability the outcome is <= Value; derived at construction
}

// Dist is a discrete probability distribution over ordered values. Outcomes
// are held in strictly increasing value order and the sum of their
// probabilities never exceeds 1 (a total below 1 means the event may not
// occur at all).
type Dist[T any] struct {
	cmp      func(a, b T) int
	outcomes []Outcome[T]
}

// New creates a distribution from explicit outcomes. Only Value and
// Probability are read; cumulative probabilities are derived. Outcomes must
// be given in strictly increasing value order.
func New[T any](cmp func(a, b T) int, outcomes []Outcome[T]) (*Dist[T], error) {
	for i := 1; i < len(outcomes); i++ {
		if cmp(outcomes[i-1].Value, outcomes[i].Value) >= 0 {
			return nil, errors.New("dist: outcome values must be strictly increasing")
		}
	}
	return build(cmp, outcomes, true, true)
}

// FromWeights creates a distribution from relative likelihood weights,
// normalized so the total probability is 1.
func FromWeights[T comparable](cmp func(a, b T) int, weights map[T]float64) (*Dist[T], error) {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, errors.New("dist: weights must be nonnegative")
		}
		total += w
	}
	if total == 0 {
		return nil, errors.New("dist: total weight must be positive")
	}
	probs := make(map[T]float64, len(weights))
	for v, w := range weights {
		probs[v] = w / total
	}
	return FromProbabilities(cmp, probs)
}

// FromProbabilities creates a distribution from explicit occurrence
// probabilities. The total may be below 1 but must not exceed it.
func FromProbabilities[T comparable](cmp func(a, b T) int, probs map[T]float64) (*Dist[T], error) {
	outcomes := make([]Outcome[T], 0, len(probs))
	for v, p := range probs {
		outcomes = append(outcomes, Outcome[T]{Value: v, Probability: p})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return cmp(outcomes[i].Value, outcomes[j].Value) < 0
	})
	return build(cmp, outcomes, true, true)
}

// Singular creates a distribution with a single certain value.
func Singular[T any](cmp func(a, b T) int, value T) *Dist[T] {
	d, _ := build(cmp, []Outcome[T]{{Value: value, Probability: 1}}, false, false)
	return d
}

// Uniform creates a distribution where each distinct value is equally
// likely, with total probability 1. An empty value set yields the null
// distribution.
func Uniform[T comparable](cmp func(a, b T) int, values ...T) *Dist[T] {
	if len(values) == 0 {
		return Null[T](cmp)
	}
	weights := make(map[T]float64, len(values))
	for _, v := range values {
		weights[v] = 1
	}
	d, _ := FromWeights(cmp, weights)
	return d
}

// Null creates a distribution with no possible outcomes.
func Null[T any](cmp func(a, b T) int) *Dist[T] {
	return &Dist[T]{cmp: cmp}
}

// build derives cumulative probabilities, validating and repairing small
// floating-point drift. clampDown snaps a barely-overflowing total back to
// 1 (shaving the drift off the preceding outcome); clampUp lifts a total
// barely below 1 up to exactly 1.
func build[T any](cmp func(a, b T) int, sorted []Outcome[T], clampDown, clampUp bool) (*Dist[T], error) {
	outcomes := make([]Outcome[T], 0, len(sorted))
	cumulative := 0.0
	for _, o := range sorted {
		if o.Probability <= 0 || o.Probability > 1 {
			return nil, fmt.Errorf("dist: probability %v outside (0, 1]", o.Probability)
		}
		next := cumulative + o.Probability
		if next > 1 {
			diff := next - 1
			if clampDown && cumulative < 1 && diff < cumulativeClamp {
				next = 1
				if n := len(outcomes); n > 0 {
					outcomes[n-1].Probability -= diff
					outcomes[n-1].Cumulative -= diff
				}
			} else {
				return nil, errors.New("dist: sum of probabilities exceeds 1")
			}
		}
		outcomes = append(outcomes, Outcome[T]{Value: o.Value, Probability: o.Probability, Cumulative: next})
		cumulative = next
	}
	if clampUp && len(outcomes) > 0 {
		last := &outcomes[len(outcomes)-1]
		if diff := 1 - last.Cumulative; diff > 0 && diff < cumulativeClamp {
			last.Probability += diff
			last.Cumulative = 1
		}
	}
	return &Dist[T]{cmp: cmp, outcomes: outcomes}, nil
}

// Outcomes returns the outcomes in increasing value order. The slice is
// shared; callers must not modify it.
func (d *Dist[T]) Outcomes() []Outcome[T] {
	return d.outcomes
}

// HasOutcomes reports whether any outcome has nonzero probability.
func (d *Dist[T]) HasOutcomes() bool {
	return len(d.outcomes) > 0
}

// Iterate returns the outcomes with values in the half-open interval
// [lo, hi), in increasing order.
func (d *Dist[T]) Iterate(lo, hi T) []Outcome[T] {
	var out []Outcome[T]
	for _, o := range d.outcomes {
		if d.cmp(o.Value, lo) >= 0 && d.cmp(o.Value, hi) < 0 {
			out = append(out, o)
		}
	}
	return out
}

// CouldOccurIn reports whether any outcome falls within [lo, hi).
func (d *Dist[T]) CouldOccurIn(lo, hi T) bool {
	for _, o := range d.outcomes {
		if d.cmp(o.Value, lo) >= 0 && d.cmp(o.Value, hi) < 0 {
			return true
		}
	}
	return false
}

// ProbabilityIn returns the total probability of outcomes within [lo, hi).
func (d *Dist[T]) ProbabilityIn(lo, hi T) float64 {
	total := 0.0
	for _, o := range d.Iterate(lo, hi) {
		total += o.Probability
	}
	return total
}

// CumulativeProbability returns the probability the outcome is less than
// or equal to v.
func (d *Dist[T]) CumulativeProbability(v T) float64 {
	cumulative := 0.0
	for _, o := range d.outcomes {
		if d.cmp(o.Value, v) > 0 {
			break
		}
		cumulative = o.Cumulative
	}
	return cumulative
}

// LowerBound returns the first outcome with value >= v. The second result
// is false if no such outcome exists.
func (d *Dist[T]) LowerBound(v T) (Outcome[T], bool) {
	for _, o := range d.outcomes {
		if d.cmp(o.Value, v) >= 0 {
			return o, true
		}
	}
	return Outcome[T]{}, false
}

// UpperBound returns the last outcome with value <= v. The second result is
// false if no such outcome exists.
func (d *Dist[T]) UpperBound(v T) (Outcome[T], bool) {
	var found Outcome[T]
	ok := false
	for _, o := range d.outcomes {
		if d.cmp(o.Value, v) > 0 {
			break
		}
		found, ok = o, true
	}
	return found, ok
}

// Subset returns a new distribution keeping only outcomes for which keep
// returns true. Occurrence probabilities are unchanged; cumulative
// probabilities are recomputed. Removing outcomes lowers the total
// probability, so no repair clamping applies.
func (d *Dist[T]) Subset(keep func(T) bool) *Dist[T] {
	kept := make([]Outcome[T], 0, len(d.outcomes))
	for _, o := range d.outcomes {
		if keep(o.Value) {
			kept = append(kept, Outcome[T]{Value: o.Value, Probability: o.Probability})
		}
	}
	out, _ := build(d.cmp, kept, false, false)
	return out
}

// MapValues returns a new distribution with values transformed by f. The
// mapping need not be one-to-one: values mapped together have their
// probabilities summed.
func MapValues[T any, U comparable](d *Dist[T], cmp func(a, b U) int, f func(T) U) (*Dist[U], error) {
	probs := make(map[U]float64, len(d.outcomes))
	for _, o := range d.outcomes {
		probs[f(o.Value)] += o.Probability
	}
	return FromProbabilities(cmp, probs)
}

// ApproxEq reports whether two distributions have identical values with
// probabilities equal within the given tolerances.
func (d *Dist[T]) ApproxEq(other *Dist[T], relTol, absTol float64) bool {
	if len(d.outcomes) != len(other.outcomes) {
		return false
	}
	for i, o := range d.outcomes {
		p := other.outcomes[i]
		if d.cmp(o.Value, p.Value) != 0 {
			return false
		}
		if !isClose(o.Probability, p.Probability, relTol, absTol) {
			return false
		}
	}
	return true
}

// Equal reports exact equality of values and probabilities.
func (d *Dist[T]) Equal(other *Dist[T]) bool {
	if len(d.outcomes) != len(other.outcomes) {
		return false
	}
	for i, o := range d.outcomes {
		p := other.outcomes[i]
		if d.cmp(o.Value, p.Value) != 0 || o.Probability != p.Probability {
			return false
		}
	}
	return true
}

// isClose reports approximate equality in the manner of math.isclose:
// |a-b| <= max(relTol*max(|a|,|b|), absTol).
func isClose(a, b, relTol, absTol float64) bool {
	limit := relTol * math.Max(math.Abs(a), math.Abs(b))
	if absTol > limit {
		limit = absTol
	}
	return math.Abs(a-b) <= limit
}
