package forecast

import (
	"errors"

	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/flow"
	"github.com/rickgao/cashflow/internal/schedule"
)

// Builder collects scheduled cash flows. Incomes and expenses without an
// explicit account are attached to the general account.
type Builder struct {
	general *flow.Endpoint
	flows   []*flow.Scheduled
}

// NewBuilder creates a Builder. The general account may be nil if every
// income and expense names its own account.
func NewBuilder(general *flow.Endpoint) *Builder {
	return &Builder{general: general}
}

// CashFlow registers a flow between two explicit endpoints.
func (b *Builder) CashFlow(label string, sched schedule.Schedule, amount dist.Float, source, sink *flow.Endpoint, tags ...string) (*flow.Scheduled, error) {
	f, err := flow.NewScheduled(label, source, sink, amount, sched, tags...)
	if err != nil {
		return nil, err
	}
	b.flows = append(b.flows, f)
	return f, nil
}

// Income registers a flow from a fresh income source into account, or the
// general account when account is nil.
func (b *Builder) Income(label string, sched schedule.Schedule, amount dist.Float, account *flow.Endpoint, tags ...string) (*flow.Scheduled, error) {
	account, err := b.accountOrDefault(account)
	if err != nil {
		return nil, err
	}
	return b.CashFlow(label, sched, amount, flow.NewIncomeSource(label), account, tags...)
}

// Expense registers a flow from account, or the general account when
// account is nil, into a fresh expense sink.
func (b *Builder) Expense(label string, sched schedule.Schedule, amount dist.Float, account *flow.Endpoint, tags ...string) (*flow.Scheduled, error) {
	account, err := b.accountOrDefault(account)
	if err != nil {
		return nil, err
	}
	return b.CashFlow(label, sched, amount, account, flow.NewExpenseSink(label), tags...)
}

// Transfer registers a flow between two accounts.
func (b *Builder) Transfer(label string, sched schedule.Schedule, amount dist.Float, from, to *flow.Endpoint, tags ...string) (*flow.Scheduled, error) {
	return b.CashFlow(label, sched, amount, from, to, tags...)
}

// Flows returns the registered flows in registration order. The slice is
// shared; callers must not modify it.
func (b *Builder) Flows() []*flow.Scheduled { return b.flows }

// Analysis creates an analysis of the registered flows over r.
func (b *Builder) Analysis(r dates.Range, tolerance float64) *Analysis {
	return &Analysis{flows: b.flows, dateRange: r, tolerance: tolerance}
}

func (b *Builder) accountOrDefault(account *flow.Endpoint) (*flow.Endpoint, error) {
	if account != nil {
		return account, nil
	}
	if b.general == nil {
		return nil, errors.New("forecast: no account given and no general account configured")
	}
	return b.general, nil
}
