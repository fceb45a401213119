package dates

import (
	"testing"
	"time"
)

func TestHalfOpenClampsInverted(t *testing.T) {
	r := HalfOpen(New(2022, time.May, 10), New(2022, time.May, 4))
	if !r.IsEmpty() {
		t.Errorf("inverted range not empty: %v", r)
	}
}

func TestRangeConstructors(t *testing.T) {
	tests := []struct {
		name      string
		r         Range
		wantStart Date
		wantEnd   Date
	}{
		{"half open", HalfOpen(New(2022, time.May, 1), New(2022, time.June, 1)), New(2022, time.May, 1), New(2022, time.June, 1)},
		{"inclusive", Inclusive(New(2022, time.May, 1), New(2022, time.May, 31)), New(2022, time.May, 1), New(2022, time.June, 1)},
		{"single", Single(New(2022, time.May, 4)), New(2022, time.May, 4), New(2022, time.May, 5)},
		{"around", Around(New(2022, time.May, 4), 2), New(2022, time.May, 2), New(2022, time.May, 7)},
		{"around negative radius", Around(New(2022, time.May, 4), -2), New(2022, time.May, 2), New(2022, time.May, 7)},
		{"from", From(New(2022, time.May, 4)), New(2022, time.May, 4), Max},
		{"before", Before(New(2022, time.May, 4)), Min, New(2022, time.May, 4)},
		{"up to", UpTo(New(2022, time.May, 4)), Min, New(2022, time.May, 5)},
		{"all", All(), Min, Max},
		{"empty", Empty(New(2022, time.May, 4)), New(2022, time.May, 4), New(2022, time.May, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.r.Start != tt.wantStart || tt.r.End != tt.wantEnd {
				t.Errorf("range = %v, want [%v, %v)", tt.r, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestRangeBounds(t *testing.T) {
	bounded := Inclusive(New(2022, time.May, 1), New(2022, time.May, 31))
	if !bounded.Bounded() {
		t.Error("inclusive range should be bounded")
	}
	if From(New(2022, time.May, 1)).HasUpperBound() {
		t.Error("From range should have no upper bound")
	}
	if Before(New(2022, time.May, 1)).HasLowerBound() {
		t.Error("Before range should have no lower bound")
	}
}

func TestRangeDays(t *testing.T) {
	n, err := Inclusive(New(2022, time.May, 1), New(2022, time.May, 31)).Days()
	if err != nil {
		t.Fatalf("Days failed: %v", err)
	}
	if n != 31 {
		t.Errorf("Days = %d, want 31", n)
	}

	if _, err := From(New(2022, time.May, 1)).Days(); err == nil {
		t.Error("Days on unbounded range expected error, got nil")
	}
}

func TestRangeFirstLast(t *testing.T) {
	r := Inclusive(New(2022, time.May, 1), New(2022, time.May, 31))
	if first, ok := r.First(); !ok || first != New(2022, time.May, 1) {
		t.Errorf("First = %v, %v", first, ok)
	}
	if last, ok := r.Last(); !ok || last != New(2022, time.May, 31) {
		t.Errorf("Last = %v, %v", last, ok)
	}

	if _, ok := Empty(New(2022, time.May, 4)).First(); ok {
		t.Error("First on empty range should report false")
	}
	if _, ok := Before(New(2022, time.May, 4)).First(); ok {
		t.Error("First on lower-unbounded range should report false")
	}
	if _, ok := From(New(2022, time.May, 4)).Last(); ok {
		t.Error("Last on upper-unbounded range should report false")
	}
}

func TestRangeContains(t *testing.T) {
	r := HalfOpen(New(2022, time.May, 4), New(2022, time.May, 10))
	tests := []struct {
		d    Date
		want bool
	}{
		{New(2022, time.May, 3), false},
		{New(2022, time.May, 4), true},
		{New(2022, time.May, 9), true},
		{New(2022, time.May, 10), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.d); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestRangeIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want Range
	}{
		{
			"overlapping",
			HalfOpen(New(2022, time.May, 1), New(2022, time.May, 20)),
			HalfOpen(New(2022, time.May, 10), New(2022, time.May, 30)),
			HalfOpen(New(2022, time.May, 10), New(2022, time.May, 20)),
		},
		{
			"contained",
			HalfOpen(New(2022, time.May, 1), New(2022, time.May, 30)),
			HalfOpen(New(2022, time.May, 10), New(2022, time.May, 12)),
			HalfOpen(New(2022, time.May, 10), New(2022, time.May, 12)),
		},
		{
			"unbounded with bounded",
			All(),
			HalfOpen(New(2022, time.May, 10), New(2022, time.May, 12)),
			HalfOpen(New(2022, time.May, 10), New(2022, time.May, 12)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}

	disjoint := HalfOpen(New(2022, time.May, 1), New(2022, time.May, 5)).
		Intersect(HalfOpen(New(2022, time.May, 10), New(2022, time.May, 20)))
	if !disjoint.IsEmpty() {
		t.Errorf("disjoint intersect not empty: %v", disjoint)
	}
}

func TestRangeDates(t *testing.T) {
	ds, err := Inclusive(New(2022, time.May, 30), New(2022, time.June, 2)).Dates()
	if err != nil {
		t.Fatalf("Dates failed: %v", err)
	}
	want := []Date{
		New(2022, time.May, 30),
		New(2022, time.May, 31),
		New(2022, time.June, 1),
		New(2022, time.June, 2),
	}
	if len(ds) != len(want) {
		t.Fatalf("Dates len = %d, want %d", len(ds), len(want))
	}
	for i := range want {
		if ds[i] != want[i] {
			t.Errorf("Dates[%d] = %v, want %v", i, ds[i], want[i])
		}
	}

	if _, err := All().Dates(); err == nil {
		t.Error("Dates on unbounded range expected error, got nil")
	}
}

func TestRangeString(t *testing.T) {
	r := HalfOpen(New(2022, time.May, 4), New(2022, time.May, 10))
	if got, want := r.String(), "[2022-05-04, 2022-05-10)"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
