package flow

import "fmt"

// Kind classifies an endpoint by the directions funds may move through it.
type Kind int

const (
	// KindAccount holds a balance and can both send and receive funds.
	KindAccount Kind = iota
	// KindIncomeSource only originates funds, e.g. an employer.
	KindIncomeSource
	// KindExpenseSink only receives funds, e.g. a utility company.
	KindExpenseSink
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindIncomeSource:
		return "income_source"
	case KindExpenseSink:
		return "expense_sink"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Endpoint is somewhere that funds come from or go to. Endpoints are
// compared by identity: two endpoints with the same label are still
// distinct, so always pass them around by pointer.
type Endpoint struct {
	Label string
	Kind  Kind
	Tags  map[string]bool
}

// NewAccount creates an endpoint that can both send and receive funds,
// e.g. a bank account or investment portfolio.
func NewAccount(label string, tags ...string) *Endpoint {
	return &Endpoint{Label: label, Kind: KindAccount, Tags: tagSet(tags)}
}

// NewIncomeSource creates a send-only endpoint.
func NewIncomeSource(label string, tags ...string) *Endpoint {
	return &Endpoint{Label: label, Kind: KindIncomeSource, Tags: tagSet(tags)}
}

// NewExpenseSink creates a receive-only endpoint.
func NewExpenseSink(label string, tags ...string) *Endpoint {
	return &Endpoint{Label: label, Kind: KindExpenseSink, Tags: tagSet(tags)}
}

// CanSend reports whether funds may flow out of the endpoint.
func (e *Endpoint) CanSend() bool { return e.Kind != KindExpenseSink }

// CanReceive reports whether funds may flow into the endpoint.
func (e *Endpoint) CanReceive() bool { return e.Kind != KindIncomeSource }

// HasTag reports whether the endpoint carries the given tag.
func (e *Endpoint) HasTag(tag string) bool { return e.Tags[tag] }

func tagSet(tags []string) map[string]bool {
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}
