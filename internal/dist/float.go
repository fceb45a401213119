package dist

import (
	"fmt"
	"strconv"
)

// Float is a probability distribution over the reals, summarized by its
// minimum, mean, and maximum. The invariant Min <= Mean <= Max holds for
// every value built through this package.
type Float struct {
	Min  float64
	Mean float64
	Max  float64
}

// NewFloat creates a Float, rejecting values that violate
// min <= mean <= max.
func NewFloat(min, mean, max float64) (Float, error) {
	if !(min <= mean && mean <= max) {
		return Float{}, fmt.Errorf("dist: need min <= mean <= max, got %v, %v, %v", min, mean, max)
	}
	return Float{Min: min, Mean: mean, Max: max}, nil
}

// Exactly creates a distribution with a single certain value.
func Exactly(value float64) Float {
	return Float{Min: value, Mean: value, Max: value}
}

// UniformIn creates a uniform distribution on [lo, hi].
func UniformIn(lo, hi float64) Float {
	return Float{Min: lo, Mean: (lo + hi) / 2, Max: hi}
}

// UniformAround creates a uniform distribution centred on centre with the
// given radius. A negative radius is treated as its absolute value.
func UniformAround(centre, radius float64) Float {
	if radius < 0 {
		radius = -radius
	}
	return Float{Min: centre - radius, Mean: centre, Max: centre + radius}
}

// Inexact creates a Float from values that may violate the ordering
// invariant by floating-point drift, clamping the mean into [min, max].
// Used when accumulating many small deltas.
func Inexact(min, mean, max float64) Float {
	if max < min {
		min, max = max, min
	}
	if mean < min {
		mean = min
	}
	if mean > max {
		mean = max
	}
	return Float{Min: min, Mean: mean, Max: max}
}

// Neg returns the negated distribution (bounds swap).
func (f Float) Neg() Float {
	return Float{Min: -f.Max, Mean: -f.Mean, Max: -f.Min}
}

// Add returns the sum of two distributions.
func (f Float) Add(other Float) Float {
	return Float{Min: f.Min + other.Min, Mean: f.Mean + other.Mean, Max: f.Max + other.Max}
}

// Shift returns the distribution translated by a constant.
func (f Float) Shift(x float64) Float {
	return Float{Min: f.Min + x, Mean: f.Mean + x, Max: f.Max + x}
}

// Scale returns the distribution multiplied by a constant. A negative
// multiplier swaps the bounds.
func (f Float) Scale(k float64) Float {
	if k >= 0 {
		return Float{Min: f.Min * k, Mean: f.Mean * k, Max: f.Max * k}
	}
	return Float{Min: f.Max * k, Mean: f.Mean * k, Max: f.Min * k}
}

// IsSingular reports whether min, mean, and max coincide.
func (f Float) IsSingular() bool {
	return f.Min == f.Max
}

// Format renders the distribution to the given number of decimal places:
// a bare value when singular, otherwise "[min, (mean), max]".
func (f Float) Format(places int) string {
	if f.IsSingular() {
		return strconv.FormatFloat(f.Min, 'f', places, 64)
	}
	return fmt.Sprintf("[%s, (%s), %s]",
		strconv.FormatFloat(f.Min, 'f', places, 64),
		strconv.FormatFloat(f.Mean, 'f', places, 64),
		strconv.FormatFloat(f.Max, 'f', places, 64))
}

// ApproxEq reports componentwise approximate equality.
func (f Float) ApproxEq(other Float, relTol, absTol float64) bool {
	return isClose(f.Min, other.Min, relTol, absTol) &&
		isClose(f.Mean, other.Mean, relTol, absTol) &&
		isClose(f.Max, other.Max, relTol, absTol)
}
