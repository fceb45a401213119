package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/cashflow/internal/config"
	"github.com/rickgao/cashflow/internal/flow"
)

// BalanceRow is one projected balance snapshot for one endpoint.
type BalanceRow struct {
	RunID       uuid.UUID
	Date        time.Time
	Endpoint    string
	Kind        string
	MinBalance  float64
	MeanBalance float64
	MaxBalance  float64
}

// EventRow is one projected cash flow event, or one bound of an event
// whose date is uncertain.
type EventRow struct {
	RunID      uuid.UUID
	FlowID     uuid.UUID
	FlowLabel  string
	Date       time.Time
	Marker     string
	Exact      bool
	AmountMin  float64
	AmountMean float64
	AmountMax  float64
	Source     string
	Sink       string
}

// NewBalanceWriter creates a writer for the balance_records table.
func NewBalanceWriter(cfg config.WritersConfig, db *pgxpool.Pool, logger *slog.Logger) *Writer[BalanceRow] {
	return NewWriter("balances", cfg, db, func(b *pgx.Batch, r BalanceRow) {
		b.Queue(`
			INSERT INTO balance_records (run_id, record_date, endpoint, kind, min_balance, mean_balance, max_balance)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (run_id, record_date, endpoint) DO NOTHING
		`, r.RunID, r.Date, r.Endpoint, r.Kind, r.MinBalance, r.MeanBalance, r.MaxBalance)
	}, logger)
}

// NewEventWriter creates a writer for the flow_events table.
func NewEventWriter(cfg config.WritersConfig, db *pgxpool.Pool, logger *slog.Logger) *Writer[EventRow] {
	return NewWriter("events", cfg, db, func(b *pgx.Batch, r EventRow) {
		b.Queue(`
			INSERT INTO flow_events (run_id, flow_id, flow_label, event_date, marker, exact_bound, amount_min, amount_mean, amount_max, source, sink)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (run_id, flow_id, event_date, marker) DO NOTHING
		`, r.RunID, r.FlowID, r.FlowLabel, r.Date, r.Marker, r.Exact, r.AmountMin, r.AmountMean, r.AmountMax, r.Source, r.Sink)
	}, logger)
}

// BalanceRows converts projected balance histories into rows for one run.
func BalanceRows(runID uuid.UUID, records map[*flow.Endpoint][]flow.BalanceRecord) []BalanceRow {
	var rows []BalanceRow
	for e, history := range records {
		for _, rec := range history {
			rows = append(rows, BalanceRow{
				RunID:       runID,
				Date:        rec.Date.Time(),
				Endpoint:    e.Label,
				Kind:        e.Kind.String(),
				MinBalance:  rec.Amount.Min,
				MeanBalance: rec.Amount.Mean,
				MaxBalance:  rec.Amount.Max,
			})
		}
	}
	return rows
}

// EventRows converts one flow's event logs into rows for one run.
func EventRows(runID uuid.UUID, f *flow.Scheduled, logs []flow.Log) []EventRow {
	rows := make([]EventRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, EventRow{
			RunID:      runID,
			FlowID:     f.ID,
			FlowLabel:  f.Label,
			Date:       l.Date.Time(),
			Marker:     l.Marker(),
			Exact:      l.Exact,
			AmountMin:  l.Amount.Min,
			AmountMean: l.Amount.Mean,
			AmountMax:  l.Amount.Max,
			Source:     l.Source.Label,
			Sink:       l.Sink.Label,
		})
	}
	return rows
}
