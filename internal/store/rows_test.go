package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/flow"
	"github.com/rickgao/cashflow/internal/schedule"
)

func TestBalanceRows(t *testing.T) {
	runID := uuid.New()
	checking := flow.NewAccount("checking")

	records := map[*flow.Endpoint][]flow.BalanceRecord{
		checking: {
			{Date: dates.New(2022, time.May, 1), Amount: dist.Exactly(500)},
			{Date: dates.New(2022, time.May, 10), Amount: dist.Float{Min: 400, Mean: 450, Max: 500}},
		},
	}

	rows := BalanceRows(runID, records)
	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.RunID != runID {
		t.Errorf("RunID = %v, want %v", first.RunID, runID)
	}
	if first.Endpoint != "checking" {
		t.Errorf("Endpoint = %q, want %q", first.Endpoint, "checking")
	}
	if first.Kind != "account" {
		t.Errorf("Kind = %q, want %q", first.Kind, "account")
	}
	if !first.Date.Equal(time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2022-05-01", first.Date)
	}
	if first.MinBalance != 500 || first.MeanBalance != 500 || first.MaxBalance != 500 {
		t.Errorf("balances = %v/%v/%v, want 500/500/500", first.MinBalance, first.MeanBalance, first.MaxBalance)
	}

	second := rows[1]
	if second.MinBalance != 400 || second.MeanBalance != 450 || second.MaxBalance != 500 {
		t.Errorf("balances = %v/%v/%v, want 400/450/500", second.MinBalance, second.MeanBalance, second.MaxBalance)
	}
}

func TestEventRows(t *testing.T) {
	runID := uuid.New()
	checking := flow.NewAccount("checking")
	sink := flow.NewExpenseSink("rent")

	f, err := flow.NewScheduled("rent", checking, sink, dist.Exactly(100),
		schedule.Once{On: dates.New(2022, time.May, 10)})
	if err != nil {
		t.Fatalf("NewScheduled failed: %v", err)
	}

	logs := []flow.Log{
		{
			Date:   dates.New(2022, time.May, 10),
			Bound:  0,
			Exact:  true,
			Amount: dist.Exactly(100),
			Source: checking,
			Sink:   sink,
		},
	}

	rows := EventRows(runID, f, logs)
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.RunID != runID || row.FlowID != f.ID {
		t.Errorf("ids = %v/%v, want %v/%v", row.RunID, row.FlowID, runID, f.ID)
	}
	if row.FlowLabel != "rent" {
		t.Errorf("FlowLabel = %q, want %q", row.FlowLabel, "rent")
	}
	if row.Marker != "==" || !row.Exact {
		t.Errorf("marker = %q exact=%v, want == exact", row.Marker, row.Exact)
	}
	if row.AmountMin != 100 || row.AmountMean != 100 || row.AmountMax != 100 {
		t.Errorf("amounts = %v/%v/%v, want 100", row.AmountMin, row.AmountMean, row.AmountMax)
	}
	if row.Source != "checking" || row.Sink != "rent" {
		t.Errorf("endpoints = %q -> %q", row.Source, row.Sink)
	}
}
