// Command planlint validates a plan file and prints what it declares.
// It exits nonzero when the plan fails to load, validate, or build.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rickgao/cashflow/internal/config"
	"github.com/rickgao/cashflow/internal/forecast"
	"github.com/rickgao/cashflow/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/plan.yaml", "path to plan file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("checking plan", "version", version.Version, "config", *configPath)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("plan is invalid", "error", err)
		os.Exit(1)
	}

	plan, err := forecast.FromConfig(cfg)
	if err != nil {
		logger.Error("plan does not build", "error", err)
		os.Exit(1)
	}

	fmt.Printf("plan:      %s\n", plan.Name)
	fmt.Printf("timeframe: %s\n", plan.Range)
	fmt.Printf("tolerance: %g\n", plan.Tolerance)

	fmt.Printf("accounts:  %d\n", len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		opening := a.OpeningBalance
		if opening == "" {
			opening = "0"
		}
		fmt.Printf("  - %s (opening $%s)\n", a.Label, opening)
	}

	fmt.Printf("flows:     %d\n", len(plan.Flows))
	for _, f := range plan.Flows {
		events := len(f.Schedule.Events(plan.Range))
		fmt.Printf("  - %s: %q -> %q, %d event(s), $%s each\n",
			f.Label, f.Source.Label, f.Sink.Label, events, forecast.FormatMoney(f.Amount))
	}

	if cfg.Database.Postgres.Enabled() {
		fmt.Printf("database:  %s:%d/%s\n",
			cfg.Database.Postgres.Host, cfg.Database.Postgres.Port, cfg.Database.Postgres.Name)
	} else {
		fmt.Println("database:  not configured")
	}

	fmt.Println("plan OK")
}
