package flow

import (
	"testing"
	"time"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/schedule"
)

func TestBalanceDeltaAdd(t *testing.T) {
	got := BalanceDelta{Min: -10.2, Mean: 16.36, Max: 53.83}.
		Add(BalanceDelta{Min: 4.18, Mean: 19.77, Max: -12.03})
	want := BalanceDelta{Min: -6.02, Mean: 36.13, Max: 41.8}
	if !approx(got.Min, want.Min) || !approx(got.Mean, want.Mean) || !approx(got.Max, want.Max) {
		t.Errorf("Add = %+v, want %+v", got, want)
	}
}

func TestBalanceDeltaApplyTo(t *testing.T) {
	got := BalanceDelta{Min: -4.18, Mean: 19.77, Max: -12.03}.
		ApplyTo(dist.Float{Min: -10.2, Mean: 16.36, Max: 53.83})
	want := dist.Float{Min: -14.38, Mean: 36.13, Max: 41.8}
	if !got.ApproxEq(want, 1e-9, 0) {
		t.Errorf("ApplyTo = %+v, want %+v", got, want)
	}
}

func TestAccumulateBalances(t *testing.T) {
	account := NewAccount("checking")
	sink := NewExpenseSink("rent")
	f := mustFlow(t, "rent", account, sink, dist.Exactly(100),
		schedule.Once{On: day(2022, time.May, 10)})

	r := dates.HalfOpen(day(2022, time.May, 1), day(2022, time.June, 1))
	updates := GenerateUpdates(f, r, dist.DefaultCertaintyTolerance)

	records, err := AccumulateBalances(updates, map[*Endpoint]dist.Float{
		account: dist.Exactly(500),
	})
	if err != nil {
		t.Fatalf("AccumulateBalances failed: %v", err)
	}

	wantAccount := []BalanceRecord{
		{day(2022, time.May, 10), dist.Float{Min: 400, Mean: 500, Max: 500}},
		{day(2022, time.May, 11), dist.Exactly(400)},
	}
	checkRecords(t, "account", records[account], wantAccount)

	wantSink := []BalanceRecord{
		{day(2022, time.May, 10), dist.Float{Min: 0, Mean: 0, Max: 100}},
		{day(2022, time.May, 11), dist.Exactly(100)},
	}
	checkRecords(t, "sink", records[sink], wantSink)
}

func TestAccumulateBalancesRejectsDisorder(t *testing.T) {
	account := NewAccount("checking")
	sink := NewExpenseSink("rent")
	f := mustFlow(t, "rent", account, sink, dist.Exactly(1), schedule.Never{})

	updates := []BalanceUpdate{
		{day(2022, time.May, 10), account, BalanceDelta{Min: -1}, f},
		{day(2022, time.May, 9), account, BalanceDelta{Min: -1}, f},
	}
	if _, err := AccumulateBalances(updates, nil); err == nil {
		t.Error("out-of-order updates expected error, got nil")
	}
}

func TestSimulatePadsOpeningAndClosing(t *testing.T) {
	account := NewAccount("checking")
	sink := NewExpenseSink("rent")
	f := mustFlow(t, "rent", account, sink, dist.Exactly(100),
		schedule.Once{On: day(2022, time.May, 10)})

	r := dates.HalfOpen(day(2022, time.May, 1), day(2022, time.June, 1))
	records, err := Simulate([]*Scheduled{f}, r,
		map[*Endpoint]dist.Float{account: dist.Exactly(500)}, dist.DefaultCertaintyTolerance)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	wantAccount := []BalanceRecord{
		{day(2022, time.May, 1), dist.Exactly(500)},
		{day(2022, time.May, 10), dist.Float{Min: 400, Mean: 500, Max: 500}},
		{day(2022, time.May, 11), dist.Exactly(400)},
		{day(2022, time.June, 1), dist.Exactly(400)},
	}
	checkRecords(t, "account", records[account], wantAccount)

	// The sink had no initial balance, so it gets no opening record, only
	// the closing one.
	history := records[sink]
	if len(history) == 0 {
		t.Fatal("sink has no records")
	}
	last := history[len(history)-1]
	if last.Date != day(2022, time.June, 1) || !last.Amount.ApproxEq(dist.Exactly(100), 1e-9, 0) {
		t.Errorf("sink closing record = %+v", last)
	}
}

func TestSimulateEmptyRange(t *testing.T) {
	account := NewAccount("checking")
	r := dates.Empty(day(2022, time.May, 1))
	records, err := Simulate(nil, r,
		map[*Endpoint]dist.Float{account: dist.Exactly(500)}, dist.DefaultCertaintyTolerance)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(records[account]) != 0 {
		t.Errorf("empty range records = %v, want none", records[account])
	}
}

func TestSummarizeTotal(t *testing.T) {
	account := NewAccount("checking")
	sink := NewExpenseSink("groceries")
	amount := dist.Float{Min: 40, Mean: 50, Max: 60}

	certain := mustFlow(t, "weekly", account, sink, amount, EveryFriday())
	r := dates.Inclusive(day(2022, time.May, 2), day(2022, time.May, 29)) // four Fridays
	total := SummarizeTotal(certain, r, dist.DefaultCertaintyTolerance)
	want := dist.Float{Min: 160, Mean: 200, Max: 240}
	if !total.ApproxEq(want, 1e-9, 0) {
		t.Errorf("certain total = %+v, want %+v", total, want)
	}
}

func TestSummarizeTotalUncertainEvent(t *testing.T) {
	account := NewAccount("checking")
	sink := NewExpenseSink("repair")
	f := mustFlow(t, "repair", account, sink, dist.Exactly(100),
		schedule.OnceIn{Dist: schedule.UniformDates(day(2022, time.May, 10), day(2022, time.May, 20))})

	// Only half the event's probability falls inside the range: it is not
	// certain, so the minimum total is zero.
	r := dates.HalfOpen(day(2022, time.May, 1), day(2022, time.May, 15))
	total := SummarizeTotal(f, r, dist.DefaultCertaintyTolerance)
	want := dist.Float{Min: 0, Mean: 50, Max: 100}
	if !total.ApproxEq(want, 1e-9, 0) {
		t.Errorf("uncertain total = %+v, want %+v", total, want)
	}
}

func TestSummarizeTotalEmptyRange(t *testing.T) {
	account := NewAccount("checking")
	sink := NewExpenseSink("rent")
	f := mustFlow(t, "rent", account, sink, dist.Exactly(100),
		schedule.Once{On: day(2022, time.May, 10)})

	total := SummarizeTotal(f, dates.Empty(day(2022, time.May, 10)), dist.DefaultCertaintyTolerance)
	if !total.ApproxEq(dist.Exactly(0), 1e-12, 0) {
		t.Errorf("empty range total = %+v, want zero", total)
	}
}

// EveryFriday builds a weekly Friday schedule for tests.
func EveryFriday() schedule.Schedule {
	return schedule.EveryWeek(time.Friday)
}

func approx(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

func checkRecords(t *testing.T, label string, got, want []BalanceRecord) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s record count = %d, want %d (%v)", label, len(got), len(want), got)
	}
	for i := range want {
		if got[i].Date != want[i].Date {
			t.Errorf("%s[%d].Date = %v, want %v", label, i, got[i].Date, want[i].Date)
		}
		if !got[i].Amount.ApproxEq(want[i].Amount, 1e-9, 1e-9) {
			t.Errorf("%s[%d].Amount = %+v, want %+v", label, i, got[i].Amount, want[i].Amount)
		}
	}
}
