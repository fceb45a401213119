package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/cashflow/internal/dates"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Plan.Name == "" {
		return errors.New("plan.name is required")
	}
	start, err := requireDate("plan.start", c.Plan.Start)
	if err != nil {
		return err
	}
	end, err := requireDate("plan.end", c.Plan.End)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("plan.end (%s) is before plan.start (%s)", c.Plan.End, c.Plan.Start)
	}
	if c.Plan.CertaintyTolerance < 0 {
		return errors.New("plan.certainty_tolerance must be >= 0")
	}

	accounts := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		prefix := fmt.Sprintf("accounts[%d]", i)
		if a.Label == "" {
			return fmt.Errorf("%s.label is required", prefix)
		}
		if accounts[a.Label] {
			return fmt.Errorf("%s.label %q is duplicated", prefix, a.Label)
		}
		accounts[a.Label] = true
		if a.OpeningBalance != "" {
			if _, err := decimal.NewFromString(a.OpeningBalance); err != nil {
				return fmt.Errorf("%s.opening_balance: %w", prefix, err)
			}
		}
	}

	for i, f := range c.Flows {
		if err := f.validate(fmt.Sprintf("flows[%d]", i), accounts); err != nil {
			return err
		}
	}

	if c.Database.Postgres.Enabled() {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
		if c.Writers.BatchSize < 1 {
			return errors.New("writers.batch_size must be >= 1")
		}
		if c.Writers.BufferSize < 1 {
			return errors.New("writers.buffer_size must be >= 1")
		}
	}

	return nil
}

func (f *FlowConfig) validate(prefix string, accounts map[string]bool) error {
	if f.Label == "" {
		return fmt.Errorf("%s.label is required", prefix)
	}
	switch f.Kind {
	case "income", "expense":
		if f.Account != "" && !accounts[f.Account] {
			return fmt.Errorf("%s.account %q is not a declared account", prefix, f.Account)
		}
		if f.Account == "" && len(accounts) == 0 {
			return fmt.Errorf("%s.account is required when no accounts are declared", prefix)
		}
	case "transfer":
		if !accounts[f.From] {
			return fmt.Errorf("%s.from %q is not a declared account", prefix, f.From)
		}
		if !accounts[f.To] {
			return fmt.Errorf("%s.to %q is not a declared account", prefix, f.To)
		}
	case "":
		return fmt.Errorf("%s.kind is required", prefix)
	default:
		return fmt.Errorf("%s.kind must be income, expense, or transfer, got %q", prefix, f.Kind)
	}

	if f.Amount.Min < 0 {
		return fmt.Errorf("%s.amount must be nonnegative", prefix)
	}
	if !(f.Amount.Min <= f.Amount.Mean && f.Amount.Mean <= f.Amount.Max) {
		return fmt.Errorf("%s.amount needs min <= mean <= max", prefix)
	}

	return f.Schedule.validate(prefix + ".schedule")
}

func (s *ScheduleConfig) validate(prefix string) error {
	if n := s.ruleCount(); n != 1 {
		return fmt.Errorf("%s must set exactly one rule, got %d", prefix, n)
	}

	switch {
	case s.Once != nil:
		if (s.Once.On == "") == (len(s.Once.Between) == 0) {
			return fmt.Errorf("%s.once needs either on or between", prefix)
		}
		if s.Once.On != "" {
			if _, err := requireDate(prefix+".once.on", s.Once.On); err != nil {
				return err
			}
		}
		for i, d := range s.Once.Between {
			if _, err := requireDate(fmt.Sprintf("%s.once.between[%d]", prefix, i), d); err != nil {
				return err
			}
		}
	case s.Daily != nil:
		return s.Daily.validate(prefix + ".daily")
	case s.Weekdays != nil:
		return s.Weekdays.validate(prefix + ".weekdays")
	case s.Weekends != nil:
		return s.Weekends.validate(prefix + ".weekends")
	case s.Weekly != nil:
		return s.Weekly.validate(prefix + ".weekly")
	case s.Monthly != nil:
		return s.Monthly.validate(prefix + ".monthly")
	}
	return nil
}

func (r *RecurringConfig) validate(prefix string) error {
	if err := validateSpan(prefix, r.Start, r.End); err != nil {
		return err
	}
	return validateExceptions(prefix, r.Except)
}

func (w *WeeklyConfig) validate(prefix string) error {
	if (len(w.Days) == 0) == (len(w.AnyOf) == 0) {
		return fmt.Errorf("%s needs either days or any_of", prefix)
	}
	for _, name := range append(append([]string{}, w.Days...), w.AnyOf...) {
		if _, err := ParseWeekday(name); err != nil {
			return fmt.Errorf("%s: %w", prefix, err)
		}
	}
	if w.Period < 0 {
		return fmt.Errorf("%s.period must be >= 0", prefix)
	}
	if w.Period > 1 && w.Start == "" {
		return fmt.Errorf("%s.start is required when period > 1", prefix)
	}
	if err := validateSpan(prefix, w.Start, w.End); err != nil {
		return err
	}
	return validateExceptions(prefix, w.Except)
}

func (m *MonthlyConfig) validate(prefix string) error {
	if (len(m.Days) == 0) == (len(m.AnyOf) == 0) {
		return fmt.Errorf("%s needs either days or any_of", prefix)
	}
	for _, day := range append(append([]int{}, m.Days...), m.AnyOf...) {
		if day < 1 || day > 31 {
			return fmt.Errorf("%s: day of month %d outside 1-31", prefix, day)
		}
	}
	if m.Period < 0 {
		return fmt.Errorf("%s.period must be >= 0", prefix)
	}
	if m.Period > 1 && m.Start == "" {
		return fmt.Errorf("%s.start is required when period > 1", prefix)
	}
	if err := validateSpan(prefix, m.Start, m.End); err != nil {
		return err
	}
	return validateExceptions(prefix, m.Except)
}

func validateSpan(prefix, start, end string) error {
	if start != "" {
		if _, err := requireDate(prefix+".start", start); err != nil {
			return err
		}
	}
	if end != "" {
		if _, err := requireDate(prefix+".end", end); err != nil {
			return err
		}
	}
	return nil
}

func validateExceptions(prefix string, except []ExceptConfig) error {
	for i, e := range except {
		p := fmt.Sprintf("%s.except[%d]", prefix, i)
		if _, err := requireDate(p+".from", e.From); err != nil {
			return err
		}
		if e.To != "" {
			if _, err := requireDate(p+".to", e.To); err != nil {
				return err
			}
		}
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

func requireDate(field, value string) (dates.Date, error) {
	if value == "" {
		return dates.Date{}, fmt.Errorf("%s is required", field)
	}
	d, err := dates.Parse(value)
	if err != nil {
		return dates.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// ParseWeekday converts a day name such as "monday" or "mon" to a
// time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(name) {
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
}
