package forecast

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/cashflow/internal/config"
	"github.com/rickgao/cashflow/internal/dates"
	"github.com/rickgao/cashflow/internal/dist"
	"github.com/rickgao/cashflow/internal/flow"
	"github.com/rickgao/cashflow/internal/schedule"
)

// Plan is a fully built cash flow plan: endpoints, flows, opening
// balances, and the analysis timeframe.
type Plan struct {
	Name        string
	Range       dates.Range
	Tolerance   float64
	SummaryTags []string
	Accounts    map[string]*flow.Endpoint
	Initial     map[*flow.Endpoint]dist.Float
	Flows       []*flow.Scheduled
}

// FromConfig builds a Plan from a validated configuration. The first
// declared account is the default for incomes and expenses that do not
// name one.
func FromConfig(cfg *config.Config) (*Plan, error) {
	start, err := dates.Parse(cfg.Plan.Start)
	if err != nil {
		return nil, fmt.Errorf("plan.start: %w", err)
	}
	end, err := dates.Parse(cfg.Plan.End)
	if err != nil {
		return nil, fmt.Errorf("plan.end: %w", err)
	}

	p := &Plan{
		Name:        cfg.Plan.Name,
		Range:       dates.HalfOpen(start, end),
		Tolerance:   cfg.Plan.CertaintyTolerance,
		SummaryTags: cfg.Plan.SummaryTags,
		Accounts:    make(map[string]*flow.Endpoint, len(cfg.Accounts)),
		Initial:     make(map[*flow.Endpoint]dist.Float, len(cfg.Accounts)),
	}

	var general *flow.Endpoint
	for _, a := range cfg.Accounts {
		account := flow.NewAccount(a.Label, a.Tags...)
		p.Accounts[a.Label] = account
		if general == nil {
			general = account
		}
		if a.OpeningBalance != "" {
			opening, err := decimal.NewFromString(a.OpeningBalance)
			if err != nil {
				return nil, fmt.Errorf("account %q opening_balance: %w", a.Label, err)
			}
			p.Initial[account] = dist.Exactly(opening.InexactFloat64())
		}
	}

	builder := NewBuilder(general)
	for _, fc := range cfg.Flows {
		sched, err := buildSchedule(&fc.Schedule)
		if err != nil {
			return nil, fmt.Errorf("flow %q: %w", fc.Label, err)
		}
		amount, err := dist.NewFloat(fc.Amount.Min, fc.Amount.Mean, fc.Amount.Max)
		if err != nil {
			return nil, fmt.Errorf("flow %q: %w", fc.Label, err)
		}

		switch fc.Kind {
		case "income":
			_, err = builder.Income(fc.Label, sched, amount, p.Accounts[fc.Account], fc.Tags...)
		case "expense":
			_, err = builder.Expense(fc.Label, sched, amount, p.Accounts[fc.Account], fc.Tags...)
		case "transfer":
			_, err = builder.Transfer(fc.Label, sched, amount, p.Accounts[fc.From], p.Accounts[fc.To], fc.Tags...)
		default:
			err = fmt.Errorf("unknown kind %q", fc.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("flow %q: %w", fc.Label, err)
		}
	}
	p.Flows = builder.Flows()
	return p, nil
}

// Analysis creates an analysis of the plan's flows over its timeframe.
func (p *Plan) Analysis() *Analysis {
	return NewAnalysis(p.Flows, p.Range, p.Tolerance)
}

// Summaries totals the plan's flows once overall and once per summary tag.
func (p *Plan) Summaries() []Summary {
	a := p.Analysis()
	summaries := []Summary{a.Summarize("all cash flows", nil)}
	for _, tag := range p.SummaryTags {
		summaries = append(summaries, a.SummarizeTag(tag))
	}
	return summaries
}

func buildSchedule(s *config.ScheduleConfig) (schedule.Schedule, error) {
	switch {
	case s.Never:
		return schedule.Never{}, nil

	case s.Once != nil:
		if s.Once.On != "" {
			on, err := dates.Parse(s.Once.On)
			if err != nil {
				return nil, err
			}
			return schedule.Once{On: on}, nil
		}
		between, err := parseDates(s.Once.Between)
		if err != nil {
			return nil, err
		}
		return schedule.OnceIn{Dist: schedule.UniformDates(between...)}, nil

	case s.Daily != nil:
		active, except, err := recurringBounds(s.Daily.Start, s.Daily.End, s.Daily.Except)
		if err != nil {
			return nil, err
		}
		return schedule.Daily{Active: active, Except: except}, nil

	case s.Weekdays != nil:
		active, except, err := recurringBounds(s.Weekdays.Start, s.Weekdays.End, s.Weekdays.Except)
		if err != nil {
			return nil, err
		}
		return schedule.Weekdays{Active: active, Except: except}, nil

	case s.Weekends != nil:
		active, except, err := recurringBounds(s.Weekends.Start, s.Weekends.End, s.Weekends.Except)
		if err != nil {
			return nil, err
		}
		return schedule.Weekends{Active: active, Except: except}, nil

	case s.Weekly != nil:
		return buildWeekly(s.Weekly)

	case s.Monthly != nil:
		return buildMonthly(s.Monthly)

	default:
		return nil, fmt.Errorf("schedule sets no rule")
	}
}

func buildWeekly(w *config.WeeklyConfig) (schedule.Schedule, error) {
	active, except, err := recurringBounds(w.Start, w.End, w.Except)
	if err != nil {
		return nil, err
	}
	var dists []*schedule.WeekdayDist
	if len(w.AnyOf) > 0 {
		days, err := parseWeekdays(w.AnyOf)
		if err != nil {
			return nil, err
		}
		dists = []*schedule.WeekdayDist{schedule.UniformWeekdays(days...)}
	} else {
		days, err := parseWeekdays(w.Days)
		if err != nil {
			return nil, err
		}
		for _, day := range days {
			dists = append(dists, schedule.SingleWeekday(day))
		}
	}
	return schedule.Weekly{
		Days:   schedule.FixedWeekdays{Dists: dists},
		Active: active,
		Period: w.Period,
		Except: except,
	}, nil
}

func buildMonthly(m *config.MonthlyConfig) (schedule.Schedule, error) {
	active, except, err := recurringBounds(m.Start, m.End, m.Except)
	if err != nil {
		return nil, err
	}
	var dists []*schedule.MonthdayDist
	if len(m.AnyOf) > 0 {
		dists = []*schedule.MonthdayDist{schedule.UniformMonthdays(m.AnyOf...)}
	} else {
		for _, day := range m.Days {
			dists = append(dists, schedule.SingleMonthday(day))
		}
	}
	return schedule.Monthly{
		Days:   schedule.FixedMonthdays{Dists: dists},
		Active: active,
		Period: m.Period,
		Except: except,
	}, nil
}

// recurringBounds converts optional start/end strings and exception spans
// into an active range (zero value when unbounded) and exception ranges.
func recurringBounds(start, end string, except []config.ExceptConfig) (dates.Range, []dates.Range, error) {
	var active dates.Range
	switch {
	case start != "" && end != "":
		s, err := dates.Parse(start)
		if err != nil {
			return dates.Range{}, nil, err
		}
		e, err := dates.Parse(end)
		if err != nil {
			return dates.Range{}, nil, err
		}
		active = dates.HalfOpen(s, e)
	case start != "":
		s, err := dates.Parse(start)
		if err != nil {
			return dates.Range{}, nil, err
		}
		active = dates.From(s)
	case end != "":
		e, err := dates.Parse(end)
		if err != nil {
			return dates.Range{}, nil, err
		}
		active = dates.Before(e)
	}

	ranges := make([]dates.Range, 0, len(except))
	for _, ex := range except {
		from, err := dates.Parse(ex.From)
		if err != nil {
			return dates.Range{}, nil, err
		}
		if ex.To == "" {
			ranges = append(ranges, dates.Single(from))
			continue
		}
		to, err := dates.Parse(ex.To)
		if err != nil {
			return dates.Range{}, nil, err
		}
		ranges = append(ranges, dates.Inclusive(from, to))
	}
	return active, ranges, nil
}

func parseDates(values []string) ([]dates.Date, error) {
	out := make([]dates.Date, 0, len(values))
	for _, v := range values {
		d, err := dates.Parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, err := config.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}
