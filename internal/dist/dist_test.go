package dist

import (
	"cmp"
	"testing"
)

func intDist(t *testing.T, outcomes []Outcome[int]) *Dist[int] {
	t.Helper()
	d, err := New(cmp.Compare[int], outcomes)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

func TestNewRejectsUnorderedValues(t *testing.T) {
	_, err := New(cmp.Compare[int], []Outcome[int]{
		{Value: 5, Probability: 0.5},
		{Value: 3, Probability: 0.5},
	})
	if err == nil {
		t.Error("New with unordered values expected error, got nil")
	}

	_, err = New(cmp.Compare[int], []Outcome[int]{
		{Value: 5, Probability: 0.25},
		{Value: 5, Probability: 0.25},
	})
	if err == nil {
		t.Error("New with duplicate values expected error, got nil")
	}
}

func TestNewRejectsBadProbabilities(t *testing.T) {
	tests := []struct {
		name string
		p    float64
	}{
		{"zero", 0},
		{"negative", -0.1},
		{"above one", 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(cmp.Compare[int], []Outcome[int]{{Value: 1, Probability: tt.p}})
			if err == nil {
				t.Errorf("New with probability %v expected error, got nil", tt.p)
			}
		})
	}
}

func TestNewRejectsProbabilitySumAboveOne(t *testing.T) {
	_, err := New(cmp.Compare[int], []Outcome[int]{
		{Value: 1, Probability: 0.7},
		{Value: 2, Probability: 0.7},
	})
	if err == nil {
		t.Error("New with total 1.4 expected error, got nil")
	}
}

func TestNewClampsTinyOverflow(t *testing.T) {
	// Three thirds overflow 1 by a few ulps; construction repairs it.
	third := 1.0 / 3
	d := intDist(t, []Outcome[int]{
		{Value: 1, Probability: third},
		{Value: 2, Probability: third},
		{Value: 3, Probability: third + 5e-10},
	})
	outcomes := d.Outcomes()
	if got := outcomes[len(outcomes)-1].Cumulative; got != 1 {
		t.Errorf("final cumulative = %v, want exactly 1", got)
	}
}

func TestNewLiftsTinyShortfall(t *testing.T) {
	d := intDist(t, []Outcome[int]{
		{Value: 1, Probability: 0.5},
		{Value: 2, Probability: 0.5 - 5e-10},
	})
	outcomes := d.Outcomes()
	if got := outcomes[1].Cumulative; got != 1 {
		t.Errorf("final cumulative = %v, want exactly 1", got)
	}
	if got := outcomes[1].Probability; !isClose(got, 0.5, 0, 1e-15) {
		t.Errorf("lifted probability = %v, want 0.5", got)
	}
}

func TestNewKeepsProperShortfall(t *testing.T) {
	// A genuinely sub-certain distribution is preserved as is.
	d := intDist(t, []Outcome[int]{
		{Value: 1, Probability: 0.25},
		{Value: 2, Probability: 0.25},
	})
	outcomes := d.Outcomes()
	if got := outcomes[1].Cumulative; got != 0.5 {
		t.Errorf("final cumulative = %v, want 0.5", got)
	}
}

func TestFromWeightsNormalizes(t *testing.T) {
	d, err := FromWeights(cmp.Compare[int], map[int]float64{1: 1, 2: 3})
	if err != nil {
		t.Fatalf("FromWeights failed: %v", err)
	}
	outcomes := d.Outcomes()
	if len(outcomes) != 2 {
		t.Fatalf("outcome count = %d, want 2", len(outcomes))
	}
	if !isClose(outcomes[0].Probability, 0.25, 1e-12, 0) {
		t.Errorf("P(1) = %v, want 0.25", outcomes[0].Probability)
	}
	if !isClose(outcomes[1].Probability, 0.75, 1e-12, 0) {
		t.Errorf("P(2) = %v, want 0.75", outcomes[1].Probability)
	}
}

func TestFromWeightsRejectsBadWeights(t *testing.T) {
	if _, err := FromWeights(cmp.Compare[int], map[int]float64{1: -1, 2: 3}); err == nil {
		t.Error("negative weight expected error, got nil")
	}
	if _, err := FromWeights(cmp.Compare[int], map[int]float64{1: 0}); err == nil {
		t.Error("zero total weight expected error, got nil")
	}
}

func TestSingular(t *testing.T) {
	d := Singular(cmp.Compare[int], 7)
	outcomes := d.Outcomes()
	if len(outcomes) != 1 || outcomes[0].Value != 7 || outcomes[0].Probability != 1 {
		t.Errorf("Singular outcomes = %v", outcomes)
	}
}

func TestUniform(t *testing.T) {
	d := Uniform(cmp.Compare[int], 3, 1, 2)
	outcomes := d.Outcomes()
	if len(outcomes) != 3 {
		t.Fatalf("outcome count = %d, want 3", len(outcomes))
	}
	for i, want := range []int{1, 2, 3} {
		if outcomes[i].Value != want {
			t.Errorf("outcomes[%d].Value = %d, want %d", i, outcomes[i].Value, want)
		}
		if !isClose(outcomes[i].Probability, 1.0/3, 1e-12, 0) {
			t.Errorf("outcomes[%d].Probability = %v, want 1/3", i, outcomes[i].Probability)
		}
	}

	if Uniform(cmp.Compare[int]).HasOutcomes() {
		t.Error("empty Uniform should be null")
	}
}

func TestIterateHalfOpen(t *testing.T) {
	d := Uniform(cmp.Compare[int], 1, 2, 3, 4)
	got := d.Iterate(2, 4)
	if len(got) != 2 || got[0].Value != 2 || got[1].Value != 3 {
		t.Errorf("Iterate(2, 4) values = %v", got)
	}
}

func TestProbabilityIn(t *testing.T) {
	d := Uniform(cmp.Compare[int], 1, 2, 3, 4)
	if got := d.ProbabilityIn(2, 4); !isClose(got, 0.5, 1e-12, 0) {
		t.Errorf("ProbabilityIn(2, 4) = %v, want 0.5", got)
	}
	if got := d.ProbabilityIn(5, 9); got != 0 {
		t.Errorf("ProbabilityIn(5, 9) = %v, want 0", got)
	}
}

func TestCouldOccurIn(t *testing.T) {
	d := Uniform(cmp.Compare[int], 3, 10, 15)
	if !d.CouldOccurIn(8, 14) {
		t.Error("CouldOccurIn(8, 14) = false, want true")
	}
	if d.CouldOccurIn(16, 20) {
		t.Error("CouldOccurIn(16, 20) = true, want false")
	}
	if d.CouldOccurIn(10, 10) {
		t.Error("CouldOccurIn on empty interval = true, want false")
	}
}

func TestCumulativeProbability(t *testing.T) {
	d := Uniform(cmp.Compare[int], 1, 2, 3, 4)
	tests := []struct {
		v    int
		want float64
	}{
		{0, 0},
		{1, 0.25},
		{3, 0.75},
		{9, 1},
	}
	for _, tt := range tests {
		if got := d.CumulativeProbability(tt.v); !isClose(got, tt.want, 1e-12, 0) {
			t.Errorf("CumulativeProbability(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestLowerUpperBound(t *testing.T) {
	d := Uniform(cmp.Compare[int], 2, 5, 8)

	if o, ok := d.LowerBound(5); !ok || o.Value != 5 {
		t.Errorf("LowerBound(5) = %v, %v", o, ok)
	}
	if o, ok := d.LowerBound(6); !ok || o.Value != 8 {
		t.Errorf("LowerBound(6) = %v, %v", o, ok)
	}
	if _, ok := d.LowerBound(9); ok {
		t.Error("LowerBound(9) should report false")
	}

	if o, ok := d.UpperBound(5); !ok || o.Value != 5 {
		t.Errorf("UpperBound(5) = %v, %v", o, ok)
	}
	if o, ok := d.UpperBound(7); !ok || o.Value != 5 {
		t.Errorf("UpperBound(7) = %v, %v", o, ok)
	}
	if _, ok := d.UpperBound(1); ok {
		t.Error("UpperBound(1) should report false")
	}
}

func TestSubsetKeepsProbabilities(t *testing.T) {
	d := Uniform(cmp.Compare[int], 1, 2, 3, 4)
	s := d.Subset(func(v int) bool { return v%2 == 0 })
	outcomes := s.Outcomes()
	if len(outcomes) != 2 {
		t.Fatalf("outcome count = %d, want 2", len(outcomes))
	}
	for i, o := range outcomes {
		if !isClose(o.Probability, 0.25, 1e-12, 0) {
			t.Errorf("outcomes[%d].Probability = %v, want 0.25 (no renormalizing)", i, o.Probability)
		}
	}
	if got := outcomes[1].Cumulative; !isClose(got, 0.5, 1e-12, 0) {
		t.Errorf("final cumulative = %v, want 0.5", got)
	}
}

func TestMapValuesMergesCollisions(t *testing.T) {
	d := Uniform(cmp.Compare[int], 1, 2, 3, 4)
	m, err := MapValues(d, cmp.Compare[int], func(v int) int { return v / 2 })
	if err != nil {
		t.Fatalf("MapValues failed: %v", err)
	}
	outcomes := m.Outcomes()
	// 1 -> 0; 2, 3 -> 1; 4 -> 2
	if len(outcomes) != 3 {
		t.Fatalf("outcome count = %d, want 3", len(outcomes))
	}
	if !isClose(outcomes[1].Probability, 0.5, 1e-12, 0) {
		t.Errorf("merged probability = %v, want 0.5", outcomes[1].Probability)
	}
}

func TestApproxEqAndEqual(t *testing.T) {
	a := Uniform(cmp.Compare[int], 1, 2)
	b := Uniform(cmp.Compare[int], 1, 2)
	c := Uniform(cmp.Compare[int], 1, 3)

	if !a.Equal(b) {
		t.Error("identical distributions should be Equal")
	}
	if a.Equal(c) {
		t.Error("different values should not be Equal")
	}
	if !a.ApproxEq(b, 1e-9, 0) {
		t.Error("identical distributions should be ApproxEq")
	}
}
