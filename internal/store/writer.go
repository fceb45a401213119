package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/cashflow/internal/config"
)

// WriterStats counts writer activity.
type WriterStats struct {
	Inserts   int64
	Conflicts int64
	Flushes   int64
	Errors    int64
}

// Writer batches rows of one table and inserts them with conflict
// skipping. Rows flush when the batch fills or on the flush interval, and
// a final flush runs on Stop.
type Writer[T any] struct {
	name   string
	cfg    config.WritersConfig
	logger *slog.Logger

	input *Queue[T]
	db    *pgxpool.Pool
	queue func(b *pgx.Batch, row T)

	batch   []T
	batchMu sync.Mutex
	ticker  *time.Ticker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stats WriterStats
}

// NewWriter creates a writer whose queue function appends one insert per
// row to a pgx batch.
func NewWriter[T any](name string, cfg config.WritersConfig, db *pgxpool.Pool, queue func(b *pgx.Batch, row T), logger *slog.Logger) *Writer[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer[T]{
		name:   name,
		cfg:    cfg,
		logger: logger,
		input:  NewQueue[T](cfg.BufferSize),
		db:     db,
		queue:  queue,
		batch:  make([]T, 0, cfg.BatchSize),
	}
}

// Enqueue hands a row to the writer. Returns false after Stop.
func (w *Writer[T]) Enqueue(row T) bool {
	return w.input.Push(row)
}

// Start begins consuming rows and writing to the database.
func (w *Writer[T]) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.ticker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(2)
	go w.consumeLoop()
	go w.flushLoop()

	w.logger.Info("writer started",
		"writer", w.name,
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
}

// Stop drains the queue, waits for the loops, and runs a final flush.
func (w *Writer[T]) Stop(ctx context.Context) {
	w.logger.Info("stopping writer", "writer", w.name)

	w.input.Close()
	for _, row := range w.input.Drain(0) {
		w.append(row)
	}

	if w.cancel != nil {
		w.cancel()
	}
	if w.ticker != nil {
		w.ticker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("writer stop timed out", "writer", w.name)
	}

	w.flush()
	w.logger.Info("writer stopped", "writer", w.name)
}

// Stats returns current counters.
func (w *Writer[T]) Stats() WriterStats {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.stats
}

func (w *Writer[T]) consumeLoop() {
	defer w.wg.Done()

	for {
		row, ok := w.input.TryPop()
		if !ok {
			select {
			case <-w.ctx.Done():
				return
			case <-time.After(10 * time.Millisecond):
				continue
			}
		}
		w.append(row)
	}
}

func (w *Writer[T]) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.ticker.C:
			w.flush()
		}
	}
}

func (w *Writer[T]) append(row T) {
	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	full := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if full {
		w.flush()
	}
}

func (w *Writer[T]) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}
	batch := w.batch
	w.batch = make([]T, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.insert(batch)
	if err != nil {
		w.logger.Error("batch insert failed", "writer", w.name, "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.stats.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.stats.Inserts += int64(len(batch) - conflicts)
	w.stats.Conflicts += int64(conflicts)
	w.stats.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed rows",
		"writer", w.name,
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// insert writes rows using pgx.Batch; conflicting rows are skipped and
// counted.
func (w *Writer[T]) insert(rows []T) (conflicts int, err error) {
	if w.db == nil {
		return 0, errors.New("no database pool")
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		w.queue(batch, r)
	}

	results := w.db.SendBatch(context.Background(), batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}
	return conflicts, nil
}
