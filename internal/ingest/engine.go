package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/cosmegraph/cosmegraph/internal/domain"
	"github.com/cosmegraph/cosmegraph/internal/logger"
)

// DefaultBatchSize is the number of products committed per transaction.
const DefaultBatchSize = 1000

// BatchResult reports what a sink did with one batch.
type BatchResult struct {
	NodesCreated         int
	RelationshipsCreated int
	Statements           int
}

// Sink commits a batch of resolved products as create-if-absent merges.
// seq is the 1-based batch number within the run. The batch slice is reused
// once WriteBatch returns.
type Sink interface {
	WriteBatch(ctx context.Context, seq int, batch []domain.ResolvedProductRecord) (BatchResult, error)
}

// BatchObserver is notified after every committed batch.
type BatchObserver interface {
	BatchCommitted(seq, size int, res BatchResult, elapsed time.Duration)
}

// EngineStats counts committed work.
type EngineStats struct {
	Batches              int
	ProductsCommitted    int
	NodesCreated         int
	RelationshipsCreated int
	Statements           int
}

// Engine buffers resolved products and flushes them to a Sink in batches of
// at most batchSize. Flushes are synchronous.
type Engine struct {
	sink      Sink
	batchSize int
	buf       []domain.ResolvedProductRecord
	observers []BatchObserver
	log       *logger.Logger
	stats     EngineStats
}

func NewEngine(sink Sink, batchSize int, log *logger.Logger, observers ...BatchObserver) *Engine {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Engine{
		sink:      sink,
		batchSize: batchSize,
		buf:       make([]domain.ResolvedProductRecord, 0, batchSize),
		observers: observers,
		log:       logger.OrNop(log).With("component", "ingest.engine"),
	}
}

// Add appends rec and flushes when the buffer is full.
func (e *Engine) Add(ctx context.Context, rec domain.ResolvedProductRecord) error {
	e.buf = append(e.buf, rec)
	if len(e.buf) >= e.batchSize {
		return e.Flush(ctx)
	}
	return nil
}

// Flush commits the buffered products, if any. On error the buffer is kept
// so the caller can decide whether to retry.
func (e *Engine) Flush(ctx context.Context) error {
	if len(e.buf) == 0 {
		return nil
	}
	seq := e.stats.Batches + 1
	start := time.Now()

	res, err := e.sink.WriteBatch(ctx, seq, e.buf)
	if err != nil {
		return fmt.Errorf("batch %d (%d products) failed: %w", seq, len(e.buf), err)
	}
	elapsed := time.Since(start)

	size := len(e.buf)
	e.stats.Batches = seq
	e.stats.ProductsCommitted += size
	e.stats.NodesCreated += res.NodesCreated
	e.stats.RelationshipsCreated += res.RelationshipsCreated
	e.stats.Statements += res.Statements
	e.buf = e.buf[:0]

	e.log.Info("batch committed",
		"batch", seq,
		"products", size,
		"total_products", e.stats.ProductsCommitted,
		"nodes_created", res.NodesCreated,
		"relationships_created", res.RelationshipsCreated,
		"elapsed", elapsed,
	)
	for _, o := range e.observers {
		o.BatchCommitted(seq, size, res, elapsed)
	}
	return nil
}

// Pending returns the number of buffered, uncommitted products.
func (e *Engine) Pending() int { return len(e.buf) }

func (e *Engine) Stats() EngineStats { return e.stats }
