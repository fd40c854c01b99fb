package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cosmegraph/cosmegraph/internal/catalog"
	"github.com/cosmegraph/cosmegraph/internal/classify"
	"github.com/cosmegraph/cosmegraph/internal/config"
	"github.com/cosmegraph/cosmegraph/internal/cypher"
	"github.com/cosmegraph/cosmegraph/internal/database/sqlite"
	"github.com/cosmegraph/cosmegraph/internal/ingest"
	"github.com/cosmegraph/cosmegraph/internal/logger"
	"github.com/cosmegraph/cosmegraph/internal/master"
	"github.com/cosmegraph/cosmegraph/internal/metrics"
	"github.com/cosmegraph/cosmegraph/internal/neo4j"
)

// ErrInputNotFound is returned before any output is touched when the product
// CSV does not exist.
var ErrInputNotFound = errors.New("input csv not found")

func newIngestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Merge the product CSV into the graph (or into a Cypher script)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromViper(a.v)
			if err := cfg.ValidateIngest(); err != nil {
				return err
			}
			_, err := RunIngest(cmd.Context(), cfg, a.log)
			return err
		},
	}

	f := cmd.Flags()
	f.String("csv", "", "path to the product CSV")
	f.String("mode", config.ModeTransaction, "tx: commit batches to Neo4j; script: write Cypher statements to --out")
	f.String("out", "", "output file for script mode")
	f.Int("batch-size", ingest.DefaultBatchSize, "products per batch")
	f.String("run-log", "cosmegraph_runs.db", "SQLite DSN for the run log; empty disables it")
	f.String("pushgateway", "", "Prometheus Pushgateway URL; empty disables pushing")
	_ = a.v.BindPFlag("csv", f.Lookup("csv"))
	_ = a.v.BindPFlag("mode", f.Lookup("mode"))
	_ = a.v.BindPFlag("out", f.Lookup("out"))
	_ = a.v.BindPFlag("batch_size", f.Lookup("batch-size"))
	_ = a.v.BindPFlag("run_log", f.Lookup("run-log"))
	_ = a.v.BindPFlag("pushgateway.url", f.Lookup("pushgateway"))
	return cmd
}

// RunIngest executes one ingestion run. Exposed for testing.
func RunIngest(ctx context.Context, cfg *config.Config, log *logger.Logger) (ingest.Summary, error) {
	log = logger.OrNop(log)

	// The input is checked first so a bad path leaves no trace anywhere.
	csvFile, err := os.Open(cfg.CSVPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ingest.Summary{}, fmt.Errorf("%w: %s", ErrInputNotFound, cfg.CSVPath)
		}
		return ingest.Summary{}, fmt.Errorf("open csv: %w", err)
	}
	defer csvFile.Close()

	store, err := sqlite.OpenCatalog(ctx, cfg.MasterDBPath)
	if err != nil {
		return ingest.Summary{}, err
	}
	defer store.Close()

	rows, err := catalog.MasterIngredients(ctx, store)
	if err != nil {
		return ingest.Summary{}, fmt.Errorf("load master ingredients: %w", err)
	}
	index := master.Build(rows, log.With("component", "master"))
	log.Info("master index built", "ingredients", len(rows), "keys", index.Len(), "collisions", index.Collisions())

	sink, closeSink, err := openSink(ctx, cfg, log)
	if err != nil {
		return ingest.Summary{}, err
	}
	defer closeSink()

	m := metrics.New()
	opts := ingest.Options{
		BatchSize:  cfg.BatchSize,
		Classifier: classify.PositionClassifier{HighUntil: cfg.HighUntil, MediumUntil: cfg.MediumUntil},
		Observers:  []ingest.BatchObserver{m},
	}

	if cfg.RunLogDSN != "" {
		runs, err := sqlite.OpenRunLog(ctx, cfg.RunLogDSN)
		if err != nil {
			return ingest.Summary{}, err
		}
		defer runs.Close()
		runLog := ingest.NewRunLog(runs, cfg.Mode, cfg.CSVPath)
		opts.Recorder = runLog
		log = log.With("run_id", runLog.ID())
	}

	pipeline := ingest.NewPipeline(index, sink, opts, log)
	sum, runErr := pipeline.Run(ctx, csvFile)
	if runErr == nil {
		log.Info("newly discovered ingredients", "count", len(pipeline.NewIngredients()))
	}

	m.ObserveSummary(sum, runErr == nil)
	if cfg.PushgatewayURL != "" {
		pushMetrics(ctx, cfg, m, log)
	}
	return sum, runErr
}

// pushMetrics runs after the pipeline, so it ignores cancellation of ctx but
// is bounded by cfg.PushTimeout.
func pushMetrics(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) {
	timeout := cfg.PushTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := m.Push(pushCtx, cfg.PushgatewayURL, cfg.MetricsJob); err != nil {
		log.Warn("metrics push failed", "error", err)
	}
}

// openSink builds the sink for cfg.Mode. The returned func releases it and is
// safe to defer on every path.
func openSink(ctx context.Context, cfg *config.Config, log *logger.Logger) (ingest.Sink, func(), error) {
	switch cfg.Mode {
	case config.ModeScript:
		out, err := os.Create(cfg.ScriptPath)
		if err != nil {
			return nil, nil, fmt.Errorf("create script file: %w", err)
		}
		sink := cypher.NewScriptSink(out)
		if err := sink.WriteSchema(); err != nil {
			_ = out.Close()
			return nil, nil, fmt.Errorf("write script schema: %w", err)
		}
		log.Info("writing cypher script", "path", cfg.ScriptPath)
		return sink, func() {
			if err := out.Close(); err != nil {
				log.Warn("failed to close script file", "error", err)
			}
		}, nil

	default:
		client, err := connectNeo4j(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		if err := client.EnsureSchema(ctx); err != nil {
			closeNeo4j(client, log)
			return nil, nil, err
		}
		return client, func() { closeNeo4j(client, log) }, nil
	}
}

func connectNeo4j(ctx context.Context, cfg *config.Config, log *logger.Logger) (*neo4j.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return neo4j.NewClient(connectCtx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, log)
}

func closeNeo4j(client *neo4j.Client, log *logger.Logger) {
	if err := client.Close(context.Background()); err != nil {
		log.Warn("failed to close neo4j driver", "error", err)
	}
}
