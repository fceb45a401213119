package flow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/schedule"
)

// Scheduled is a scheduled event that causes an amount of funds to flow
// from one endpoint to another.
type Scheduled struct {
	ID       uuid.UUID
	Label    string
	Source   *Endpoint
	Sink     *Endpoint
	Amount   dist.Float // always nonnegative; direction comes from source and sink
	Schedule schedule.Schedule
	Tags     map[string]bool
}

// NewScheduled creates a scheduled cash flow, assigning it a fresh ID.
func NewScheduled(label string, source, sink *Endpoint, amount dist.Float, sched schedule.Schedule, tags ...string) (*Scheduled, error) {
	if amount.Min < 0 {
		return nil, fmt.Errorf("flow: amount must be nonnegative, got min %v", amount.Min)
	}
	if source == nil || sink == nil {
		return nil, errors.New("flow: source and sink are required")
	}
	if !source.CanSend() {
		return nil, fmt.Errorf("flow: endpoint %q cannot send funds", source.Label)
	}
	if !sink.CanReceive() {
		return nil, fmt.Errorf("flow: endpoint %q cannot receive funds", sink.Label)
	}
	return &Scheduled{
		ID:       uuid.New(),
		Label:    label,
		Source:   source,
		Sink:     sink,
		Amount:   amount,
		Schedule: sched,
		Tags:     tagSet(tags),
	}, nil
}

// HasTag reports whether the flow carries the given tag.
func (f *Scheduled) HasTag(tag string) bool { return f.Tags[tag] }
