// Package ingest runs the product ingestion pipeline: CSV rows are parsed,
// resolved against the master index and merged into the graph in batches.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cosmegraph/cosmegraph/internal/classify"
	"github.com/cosmegraph/cosmegraph/internal/csvparse"
	"github.com/cosmegraph/cosmegraph/internal/logger"
	"github.com/cosmegraph/cosmegraph/internal/resolve"
)

// Summary is the end-of-run report.
type Summary struct {
	RowsRead             int
	RowsSkipped          int
	PriceAnomalies       int
	FieldsReencoded      int
	ProductsResolved     int
	ProductsDropped      int
	IngredientsDropped   int
	DuplicateIngredients int
	Batches              int
	ProductsCommitted    int
	NewIngredients       int
}

// Recorder tracks a run outside the graph. Implementations must tolerate
// Finish being called after a failed Start.
type Recorder interface {
	Start(ctx context.Context) error
	Progress(ctx context.Context, s Summary) error
	Finish(ctx context.Context, s Summary, runErr error) error
}

type Options struct {
	BatchSize  int
	Classifier classify.Classifier
	Observers  []BatchObserver
	Recorder   Recorder
}

// Pipeline is single-use: build one per run.
type Pipeline struct {
	resolver *resolve.Resolver
	engine   *Engine
	recorder Recorder
	log      *logger.Logger
	baseLog  *logger.Logger

	parser *csvparse.Parser
}

func NewPipeline(index resolve.Lookup, sink Sink, opts Options, log *logger.Logger) *Pipeline {
	log = logger.OrNop(log)
	return &Pipeline{
		resolver: resolve.New(index, opts.Classifier),
		engine:   NewEngine(sink, opts.BatchSize, log, opts.Observers...),
		recorder: opts.Recorder,
		log:      log.With("component", "ingest.pipeline"),
		baseLog:  log,
	}
}

// Run reads the whole CSV from src and commits it. Batches committed before
// an error stay committed.
func (p *Pipeline) Run(ctx context.Context, src io.Reader) (sum Summary, err error) {
	p.parser = csvparse.NewParser(src, p.baseLog)

	if p.recorder != nil {
		if err := p.recorder.Start(ctx); err != nil {
			p.log.Warn("failed to record run start", "error", err)
		}
		defer func() {
			if recErr := p.recorder.Finish(ctx, sum, err); recErr != nil {
				p.log.Warn("failed to record run result", "error", recErr)
			}
		}()
	}

	for {
		if err := ctx.Err(); err != nil {
			return p.summary(), err
		}

		raw, err := p.parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.summary(), err
		}

		rec, ok := p.resolver.ResolveProduct(raw)
		if !ok {
			p.log.Debug("product has no resolvable ingredients, dropped", "line", raw.Line, "product", raw.Name)
			continue
		}

		before := p.engine.Stats().Batches
		if err := p.engine.Add(ctx, rec); err != nil {
			return p.summary(), err
		}
		if p.engine.Stats().Batches != before {
			p.progress(ctx)
		}
	}

	if err := p.engine.Flush(ctx); err != nil {
		return p.summary(), fmt.Errorf("final flush: %w", err)
	}

	sum = p.summary()
	p.log.Info("ingestion complete",
		"rows_read", sum.RowsRead,
		"rows_skipped", sum.RowsSkipped,
		"products_committed", sum.ProductsCommitted,
		"products_dropped", sum.ProductsDropped,
		"batches", sum.Batches,
		"new_ingredients", sum.NewIngredients,
		"price_anomalies", sum.PriceAnomalies,
	)
	return sum, nil
}

// NewIngredients lists the distinct ingredient names not found in the master
// index during the run.
func (p *Pipeline) NewIngredients() []string {
	return p.resolver.NewIngredients()
}

func (p *Pipeline) progress(ctx context.Context) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Progress(ctx, p.summary()); err != nil {
		p.log.Warn("failed to record run progress", "error", err)
	}
}

func (p *Pipeline) summary() Summary {
	var ps csvparse.Stats
	if p.parser != nil {
		ps = p.parser.Stats()
	}
	rs := p.resolver.Stats()
	es := p.engine.Stats()
	return Summary{
		RowsRead:             ps.RowsRead,
		RowsSkipped:          ps.RowsSkipped,
		PriceAnomalies:       ps.PriceAnomalies,
		FieldsReencoded:      ps.FieldsReencoded,
		ProductsResolved:     rs.ProductsResolved,
		ProductsDropped:      rs.ProductsDropped,
		IngredientsDropped:   rs.IngredientsDropped,
		DuplicateIngredients: rs.DuplicateIngredients,
		Batches:              es.Batches,
		ProductsCommitted:    es.ProductsCommitted,
		NewIngredients:       p.resolver.NewIngredientCount(),
	}
}
