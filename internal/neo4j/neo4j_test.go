package neo4j

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmegraph/cosmegraph/internal/domain"
)

// newTestClient connects to the server named by COSMEGRAPH_TEST_NEO4J_URI and
// skips the test when it is unset.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	uri := os.Getenv("COSMEGRAPH_TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("COSMEGRAPH_TEST_NEO4J_URI not set")
	}
	user := os.Getenv("COSMEGRAPH_TEST_NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, err := NewClient(ctx, uri, user, os.Getenv("COSMEGRAPH_TEST_NEO4J_PASSWORD"), os.Getenv("COSMEGRAPH_TEST_NEO4J_DATABASE"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	require.NoError(t, c.EnsureSchema(ctx))
	return c
}

func TestClient_WriteBatchIsCreateOnly(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	suffix := uuid.NewString()
	productName := "Test Serum " + suffix
	newIngredient := "Test Peptide " + suffix

	first := domain.ResolvedProductRecord{
		Name: productName, Brand: "Test", Type: "Serum", URL: "https://shop.example/a", Price: "5.90", Currency: "GBP",
		Ingredients: []domain.ResolvedIngredientRef{
			{Name: newIngredient, Source: domain.SourceNewlyDiscovered, Position: 1, Tier: domain.TierHigh},
		},
	}
	t.Cleanup(func() {
		_, _ = c.execute(context.Background(),
			"MATCH (n) WHERE (n:Product AND n.name = $p) OR (n:Ingredient AND n.name = $i) DETACH DELETE n",
			map[string]any{"p": productName, "i": newIngredient})
	})

	res, err := c.WriteBatch(ctx, 1, []domain.ResolvedProductRecord{first})
	require.NoError(t, err)
	assert.Equal(t, 2, res.NodesCreated)
	assert.Equal(t, 1, res.RelationshipsCreated)

	second := first
	second.URL = "https://shop.example/b"
	second.Ingredients = []domain.ResolvedIngredientRef{
		{Name: newIngredient, Source: domain.SourceMaster, Position: 9, Tier: domain.TierLow},
	}
	res, err = c.WriteBatch(ctx, 2, []domain.ResolvedProductRecord{second})
	require.NoError(t, err)
	assert.Zero(t, res.NodesCreated)
	assert.Zero(t, res.RelationshipsCreated)

	out, err := c.execute(ctx, `
MATCH (p:Product {name: $p})-[c:CONTAINS]->(i:Ingredient {name: $i})
RETURN p.url AS url, i.source AS source, c.position AS position, c.concentration_level AS tier, count(c) AS edges`,
		map[string]any{"p": productName, "i": newIngredient})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)

	rec := out.Records[0].AsMap()
	assert.Equal(t, "https://shop.example/a", rec["url"])
	assert.Equal(t, "Kaggle", rec["source"])
	assert.Equal(t, int64(1), rec["position"])
	assert.Equal(t, "High", rec["tier"])
	assert.Equal(t, int64(1), rec["edges"])
}
