package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v6/neo4j"

	"github.com/cosmegraph/cosmegraph/internal/catalog"
	"github.com/cosmegraph/cosmegraph/internal/cypher"
	"github.com/cosmegraph/cosmegraph/internal/domain"
	"github.com/cosmegraph/cosmegraph/internal/ingest"
	"github.com/cosmegraph/cosmegraph/internal/logger"
)

var _ ingest.Sink = (*Client)(nil)

// Client owns one Neo4j driver. Create it once per process and Close it on
// every exit path.
type Client struct {
	driver   neo4j.Driver
	database string
	log      *logger.Logger
}

// NewClient creates a driver and verifies connectivity.
func NewClient(ctx context.Context, uri, user, password, database string, log *logger.Logger) (*Client, error) {
	log = logger.OrNop(log).With("component", "neo4j")

	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver for %s: %w", uri, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		if closeErr := driver.Close(ctx); closeErr != nil {
			log.Warn("failed to close driver after connectivity check", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to verify Neo4j connectivity at %s: %w", uri, err)
	}

	log.Info("connected", "uri", uri, "user", user)
	return &Client{driver: driver, database: database, log: log}, nil
}

// EnsureSchema creates the uniqueness constraints behind every MERGE key.
func (c *Client) EnsureSchema(ctx context.Context) error {
	for _, stmt := range cypher.Constraints {
		if _, err := c.execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("neo4j schema init failed: %w", err)
		}
	}
	return nil
}

// WriteBatch merges one batch of products in a single write transaction.
func (c *Client) WriteBatch(ctx context.Context, seq int, batch []domain.ResolvedProductRecord) (ingest.BatchResult, error) {
	if len(batch) == 0 {
		return ingest.BatchResult{}, nil
	}

	result, err := c.execute(ctx, cypher.MergeProducts, map[string]any{
		"products": cypher.ProductParams(batch),
	})
	if err != nil {
		return ingest.BatchResult{}, fmt.Errorf("neo4j product merge failed for batch %d: %w", seq, err)
	}

	counters := result.Summary.Counters()
	return ingest.BatchResult{
		NodesCreated:         counters.NodesCreated(),
		RelationshipsCreated: counters.RelationshipsCreated(),
		Statements:           1,
	}, nil
}

// UpsertCatalog copies the master catalog into the graph in one write
// transaction. Nodes are merged on their keys, so the copy can be repeated.
func (c *Client) UpsertCatalog(ctx context.Context, cat *catalog.Catalog) (ingest.BatchResult, error) {
	steps := []struct {
		name  string
		query string
		rows  []map[string]any
	}{
		{"efficacies", cypher.MergeEfficacies, efficacyRows(cat)},
		{"skin types", cypher.MergeSkinTypes, skinTypeRows(cat)},
		{"ingredients", cypher.MergeMasterIngredients, ingredientRows(cat)},
		{"HAS_EFFICACY", cypher.MergeHasEfficacy, efficacyLinkRows(cat)},
		{"INTERACTS_WITH", cypher.MergeInteractions, interactionRows(cat)},
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		var res ingest.BatchResult
		for _, step := range steps {
			if len(step.rows) == 0 {
				continue
			}
			r, err := tx.Run(ctx, step.query, map[string]any{"rows": step.rows})
			if err != nil {
				return nil, fmt.Errorf("%s: %w", step.name, err)
			}
			summary, err := r.Consume(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", step.name, err)
			}
			res.NodesCreated += summary.Counters().NodesCreated()
			res.RelationshipsCreated += summary.Counters().RelationshipsCreated()
			res.Statements++
			c.log.Debug("catalog step applied", "step", step.name, "rows", len(step.rows))
		}
		return res, nil
	})
	if err != nil {
		return ingest.BatchResult{}, fmt.Errorf("neo4j catalog upsert failed: %w", err)
	}
	return out.(ingest.BatchResult), nil
}

// Close closes the underlying Neo4j driver.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func (c *Client) execute(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	return neo4j.ExecuteQuery(ctx, c.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		neo4j.ExecuteQueryWithWritersRouting(),
	)
}
