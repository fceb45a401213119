// Command forecaster projects the cash flows of a plan file over its
// timeframe: it prints the event listing, category totals, and closing
// balances, and optionally persists the projection to PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/cashflow/internal/config"
	"github.com/rickgao/cashflow/internal/flow"
	"github.com/rickgao/cashflow/internal/forecast"
	"github.com/rickgao/cashflow/internal/store"
	"github.com/rickgao/cashflow/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/plan.yaml", "path to plan file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	series := flag.Bool("series", false, "print per-account balance envelopes as CSV")
	flag.Parse()

	// Set up structured logging. Operational logs go to stderr so the
	// projection report on stdout stays clean.
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting forecaster",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load plan
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load plan", "error", err)
		os.Exit(1)
	}

	plan, err := forecast.FromConfig(cfg)
	if err != nil {
		logger.Error("failed to build plan", "error", err)
		os.Exit(1)
	}

	logger.Info("plan loaded",
		"plan", plan.Name,
		"range", plan.Range.String(),
		"accounts", len(plan.Accounts),
		"flows", len(plan.Flows),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	analysis := plan.Analysis()

	// Event listing
	fmt.Printf("%s: %s\n\n", plan.Name, plan.Range)
	for _, log := range analysis.Logs() {
		fmt.Println(log)
	}
	fmt.Println()

	// Category totals
	for _, summary := range plan.Summaries() {
		fmt.Println(summary)
	}
	fmt.Println()

	// Balance projection
	records, err := analysis.Balances(plan.Initial)
	if err != nil {
		logger.Error("balance projection failed", "error", err)
		os.Exit(1)
	}
	printClosingBalances(plan, records)

	if *series {
		fmt.Println()
		printSeriesCSV(plan, records)
	}

	// Persist the projection when a database is configured
	if cfg.Database.Postgres.Enabled() {
		if err := persist(ctx, cfg, plan, records, logger); err != nil {
			logger.Error("failed to persist projection", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("forecaster finished", "plan", plan.Name)
}

// printClosingBalances reports each account's balance at the end of the
// plan's timeframe, in label order.
func printClosingBalances(plan *forecast.Plan, records map[*flow.Endpoint][]flow.BalanceRecord) {
	labels := make([]string, 0, len(plan.Accounts))
	for label := range plan.Accounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		history := records[plan.Accounts[label]]
		if len(history) == 0 {
			continue
		}
		closing := history[len(history)-1]
		fmt.Printf("%s closing balance at %s: $%s\n",
			label, closing.Date, forecast.FormatMoney(closing.Amount))
	}
}

// printSeriesCSV emits the account balance envelopes on a shared date
// axis, one column triple per account, for external charting tools.
func printSeriesCSV(plan *forecast.Plan, records map[*flow.Endpoint][]flow.BalanceRecord) {
	labels := make([]string, 0, len(plan.Accounts))
	for label := range plan.Accounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	accountRecords := make(map[*flow.Endpoint][]flow.BalanceRecord, len(labels))
	for _, label := range labels {
		e := plan.Accounts[label]
		accountRecords[e] = records[e]
	}
	s := forecast.ExtractSeries(accountRecords)

	fmt.Print("date")
	for _, label := range labels {
		fmt.Printf(",%s_min,%s_mean,%s_max", label, label, label)
	}
	fmt.Println()
	for i, d := range s.Dates {
		fmt.Print(d)
		for _, label := range labels {
			e := plan.Accounts[label]
			fmt.Printf(",%.2f,%.2f,%.2f", s.Min[e][i], s.Mean[e][i], s.Max[e][i])
		}
		fmt.Println()
	}
}

func persist(ctx context.Context, cfg *config.Config, plan *forecast.Plan,
	records map[*flow.Endpoint][]flow.BalanceRecord, logger *slog.Logger) error {
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	db, err := store.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	runID := uuid.New()
	logger.Info("persisting projection", "run_id", runID)

	balanceWriter := store.NewBalanceWriter(cfg.Writers, db, logger)
	eventWriter := store.NewEventWriter(cfg.Writers, db, logger)
	balanceWriter.Start(ctx)
	eventWriter.Start(ctx)

	for _, row := range store.BalanceRows(runID, records) {
		balanceWriter.Enqueue(row)
	}
	for _, f := range plan.Flows {
		logs := flow.GenerateLogs(f, plan.Range, plan.Tolerance)
		for _, row := range store.EventRows(runID, f, logs) {
			eventWriter.Enqueue(row)
		}
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	balanceWriter.Stop(stopCtx)
	eventWriter.Stop(stopCtx)

	bs, es := balanceWriter.Stats(), eventWriter.Stats()
	if bs.Errors > 0 || es.Errors > 0 {
		return fmt.Errorf("persist finished with errors: balances %d, events %d", bs.Errors, es.Errors)
	}
	logger.Info("projection persisted",
		"run_id", runID,
		"balance_rows", bs.Inserts+bs.Conflicts,
		"event_rows", es.Inserts+es.Conflicts,
	)
	return nil
}
