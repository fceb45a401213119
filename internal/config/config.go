package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a cash flow plan.
type Config struct {
	Plan     PlanConfig      `yaml:"plan"`
	Accounts []AccountConfig `yaml:"accounts"`
	Flows    []FlowConfig    `yaml:"flows"`
	Database DatabaseConfig  `yaml:"database"`
	Writers  WritersConfig   `yaml:"writers"`
}

// PlanConfig names the plan and fixes the analysis timeframe. Dates are
// ISO 8601 (2006-01-02); End is exclusive.
type PlanConfig struct {
	Name               string   `yaml:"name"`
	Start              string   `yaml:"start"`
	End                string   `yaml:"end"`
	CertaintyTolerance float64  `yaml:"certainty_tolerance"`
	SummaryTags        []string `yaml:"summary_tags"`
}

// AccountConfig declares an account endpoint. OpeningBalance is a decimal
// string so amounts survive the YAML round trip exactly.
type AccountConfig struct {
	Label          string   `yaml:"label"`
	Tags           []string `yaml:"tags"`
	OpeningBalance string   `yaml:"opening_balance"`
}

// FlowConfig declares one scheduled cash flow. Kind selects the shape:
// "income" and "expense" use Account (or the plan's first account),
// "transfer" uses From and To.
type FlowConfig struct {
	Label    string         `yaml:"label"`
	Kind     string         `yaml:"kind"`
	Account  string         `yaml:"account"`
	From     string         `yaml:"from"`
	To       string         `yaml:"to"`
	Amount   AmountConfig   `yaml:"amount"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Tags     []string       `yaml:"tags"`
}

// AmountConfig is an uncertain amount. It unmarshals from a bare scalar
// (an exact amount), or a mapping with either min/mean/max, low/high for a
// uniform range, or exact.
type AmountConfig struct {
	Min  float64
	Mean float64
	Max  float64
}

func (a *AmountConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = AmountConfig{Min: v, Mean: v, Max: v}
		return nil
	}

	var aux struct {
		Exact *float64 `yaml:"exact"`
		Low   *float64 `yaml:"low"`
		High  *float64 `yaml:"high"`
		Min   *float64 `yaml:"min"`
		Mean  *float64 `yaml:"mean"`
		Max   *float64 `yaml:"max"`
	}
	if err := value.Decode(&aux); err != nil {
		return fmt.Errorf("amount: %w", err)
	}

	switch {
	case aux.Exact != nil:
		*a = AmountConfig{Min: *aux.Exact, Mean: *aux.Exact, Max: *aux.Exact}
	case aux.Low != nil && aux.High != nil:
		*a = AmountConfig{Min: *aux.Low, Mean: (*aux.Low + *aux.High) / 2, Max: *aux.High}
	case aux.Min != nil && aux.Max != nil:
		mean := (*aux.Min + *aux.Max) / 2
		if aux.Mean != nil {
			mean = *aux.Mean
		}
		*a = AmountConfig{Min: *aux.Min, Mean: mean, Max: *aux.Max}
	default:
		return errors.New("amount: need exact, low/high, or min/max")
	}
	return nil
}

// ScheduleConfig selects exactly one schedule rule.
type ScheduleConfig struct {
	Never    bool             `yaml:"never"`
	Once     *OnceConfig      `yaml:"once"`
	Daily    *RecurringConfig `yaml:"daily"`
	Weekdays *RecurringConfig `yaml:"weekdays"`
	Weekends *RecurringConfig `yaml:"weekends"`
	Weekly   *WeeklyConfig    `yaml:"weekly"`
	Monthly  *MonthlyConfig   `yaml:"monthly"`
}

// ruleCount returns how many rules the config sets.
func (s *ScheduleConfig) ruleCount() int {
	n := 0
	if s.Never {
		n++
	}
	for _, set := range []bool{
		s.Once != nil, s.Daily != nil, s.Weekdays != nil,
		s.Weekends != nil, s.Weekly != nil, s.Monthly != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// OnceConfig is a single occurrence. On is a fixed date; Between lists
// equally likely dates when the exact day is unknown.
type OnceConfig struct {
	On      string   `yaml:"on"`
	Between []string `yaml:"between"`
}

// RecurringConfig bounds a daily-style rule. Start and End are optional;
// an omitted bound leaves the rule open on that side.
type RecurringConfig struct {
	Start  string         `yaml:"start"`
	End    string         `yaml:"end"`
	Except []ExceptConfig `yaml:"except"`
}

// ExceptConfig is a date span on which a recurring rule does not fire.
// An omitted To excepts the single day From.
type ExceptConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// WeeklyConfig fires on named weekdays every Period weeks. Listing several
// days under one "any_of" group means the event happens on one of them.
type WeeklyConfig struct {
	Days   []string       `yaml:"days"`    // one occurrence per listed day
	AnyOf  []string       `yaml:"any_of"`  // one occurrence on one of these days
	Period int            `yaml:"period"`  // 0 or 1 means every week
	Start  string         `yaml:"start"`
	End    string         `yaml:"end"`
	Except []ExceptConfig `yaml:"except"`
}

// MonthlyConfig fires on days of the month every Period months. Days that
// a month lacks are skipped for that month.
type MonthlyConfig struct {
	Days   []int          `yaml:"days"`
	AnyOf  []int          `yaml:"any_of"`
	Period int            `yaml:"period"`
	Start  string         `yaml:"start"`
	End    string         `yaml:"end"`
	Except []ExceptConfig `yaml:"except"`
}

// DatabaseConfig holds the optional PostgreSQL connection for persisting
// projection output. Persistence is enabled when the host is set.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// Enabled reports whether persistence is configured.
func (db *DBConfig) Enabled() bool { return db.Host != "" }

// WritersConfig holds batch writer settings.
type WritersConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}
