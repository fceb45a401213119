package dates

import "fmt"

// Range is a contiguous run of dates: Start is inclusive, End is exclusive.
// Constructors clamp Start so it never exceeds End; an inverted literal is
// treated as empty.
type Range struct {
	Start Date // inclusive lower bound
	End   Date // exclusive upper bound
}

// HalfOpen creates a range from an inclusive lower bound and an exclusive
// upper bound.
func HalfOpen(start, end Date) Range {
	if start.After(end) {
		start = end
	}
	return Range{Start: start, End: end}
}

// Inclusive creates a range from inclusive lower and upper bounds.
func Inclusive(start, last Date) Range {
	return HalfOpen(start, last.AddDays(1))
}

// Single creates a range containing exactly one date.
func Single(d Date) Range {
	return Inclusive(d, d)
}

// Around creates a range centred on centre, extending radius days either
// side. A negative radius is treated as its absolute value.
func Around(centre Date, radius int) Range {
	if radius < 0 {
		radius = -radius
	}
	return Inclusive(centre.AddDays(-radius), centre.AddDays(radius))
}

// From creates a range with no upper bound, beginning at start.
func From(start Date) Range {
	return HalfOpen(start, Max)
}

// Before creates a range with no lower bound, ending before end.
func Before(end Date) Range {
	return HalfOpen(Min, end)
}

// UpTo creates a range with no lower bound, ending at last inclusive.
func UpTo(last Date) Range {
	return Inclusive(Min, last)
}

// All creates a range covering every representable date.
func All() Range {
	return HalfOpen(Min, Max)
}

// Empty creates a range containing no dates, positioned at d.
func Empty(d Date) Range {
	return HalfOpen(d, d)
}

// IsEmpty reports whether the range contains no dates.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// HasLowerBound reports whether the range has a lower bound other than the
// Min sentinel.
func (r Range) HasLowerBound() bool {
	return r.Start != Min
}

// HasUpperBound reports whether the range has an upper bound other than the
// Max sentinel.
func (r Range) HasUpperBound() bool {
	return r.End != Max
}

// Bounded reports whether the range has both proper bounds.
func (r Range) Bounded() bool {
	return r.HasLowerBound() && r.HasUpperBound()
}

// Days returns the number of dates in the range. It reports an error for
// ranges missing a proper bound.
func (r Range) Days() (int, error) {
	if !r.Bounded() {
		return 0, fmt.Errorf("range %s is not fully bounded", r)
	}
	return r.Start.DaysUntil(r.End), nil
}

// First returns the first date in the range. The second result is false if
// the range is empty or has no lower bound.
func (r Range) First() (Date, bool) {
	if r.IsEmpty() || !r.HasLowerBound() {
		return Date{}, false
	}
	return r.Start, true
}

// Last returns the last date in the range. The second result is false if
// the range is empty or has no upper bound.
func (r Range) Last() (Date, bool) {
	if r.IsEmpty() || !r.HasUpperBound() {
		return Date{}, false
	}
	return r.End.AddDays(-1), true
}

// Contains reports whether d is within the range.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Intersect returns the overlap of two ranges. If they do not overlap, the
// result is empty.
func (r Range) Intersect(other Range) Range {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	// Clamp so Start never exceeds End.
	if start.After(end) {
		start = end
	}
	return Range{Start: start, End: end}
}

// Dates returns every date in the range in chronological order. The range
// must be bounded; unbounded ranges report an error rather than expanding.
func (r Range) Dates() ([]Date, error) {
	n, err := r.Days()
	if err != nil {
		return nil, err
	}
	ds := make([]Date, 0, n)
	for d := r.Start; d.Before(r.End); d = d.AddDays(1) {
		ds = append(ds, d)
	}
	return ds, nil
}

// String renders the range as [start, end).
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}
