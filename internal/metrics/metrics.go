// Package metrics exposes ingest run counters. The pipeline is a batch job,
// so the registry is pushed to a Pushgateway when the run ends instead of
// being scraped.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/cosmegraph/cosmegraph/internal/ingest"
)

const namespace = "cosmegraph"

var _ ingest.BatchObserver = (*Metrics)(nil)

type Metrics struct {
	Registry *prometheus.Registry

	BatchesCommitted     prometheus.Counter
	ProductsCommitted    prometheus.Counter
	NodesCreated         prometheus.Counter
	RelationshipsCreated prometheus.Counter
	BatchDuration        prometheus.Histogram
	Rows                 *prometheus.GaugeVec
	NewIngredients       prometheus.Gauge
	LastSuccess          prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BatchesCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "batches_committed_total",
			Help: "Batches committed to the sink.",
		}),
		ProductsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "products_committed_total",
			Help: "Products committed to the sink.",
		}),
		NodesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "nodes_created_total",
			Help: "Graph nodes created by committed batches.",
		}),
		RelationshipsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "relationships_created_total",
			Help: "Graph relationships created by committed batches.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "batch_duration_seconds",
			Help:    "Time to commit one batch.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		Rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "rows",
			Help: "CSV rows and products of the last run by outcome.",
		}, []string{"outcome"}),
		NewIngredients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "new_ingredients",
			Help: "Distinct ingredients of the last run not found in the master list.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "ingest", Name: "last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}),
	}
	m.Registry.MustRegister(
		m.BatchesCommitted, m.ProductsCommitted, m.NodesCreated, m.RelationshipsCreated,
		m.BatchDuration, m.Rows, m.NewIngredients, m.LastSuccess,
	)
	return m
}

func (m *Metrics) BatchCommitted(_, size int, res ingest.BatchResult, elapsed time.Duration) {
	m.BatchesCommitted.Inc()
	m.ProductsCommitted.Add(float64(size))
	m.NodesCreated.Add(float64(res.NodesCreated))
	m.RelationshipsCreated.Add(float64(res.RelationshipsCreated))
	m.BatchDuration.Observe(elapsed.Seconds())
}

// ObserveSummary records the end-of-run counts. ok marks a successful run.
func (m *Metrics) ObserveSummary(s ingest.Summary, ok bool) {
	m.Rows.WithLabelValues("read").Set(float64(s.RowsRead))
	m.Rows.WithLabelValues("skipped").Set(float64(s.RowsSkipped))
	m.Rows.WithLabelValues("price_anomaly").Set(float64(s.PriceAnomalies))
	m.Rows.WithLabelValues("product_dropped").Set(float64(s.ProductsDropped))
	m.NewIngredients.Set(float64(s.NewIngredients))
	if ok {
		m.LastSuccess.SetToCurrentTime()
	}
}

// Push sends the registry to a Pushgateway under the given job name.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
