package ingest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmegraph/cosmegraph/internal/domain"
)

func product(i int) domain.ResolvedProductRecord {
	return domain.ResolvedProductRecord{
		Name: fmt.Sprintf("Product %d", i),
		Ingredients: []domain.ResolvedIngredientRef{
			{Name: "Glycerin", Source: domain.SourceMaster, Position: 1, Tier: domain.TierHigh},
		},
	}
}

func TestEngine_Batching(t *testing.T) {
	tests := []struct {
		name      string
		products  int
		batchSize int
		want      []int
	}{
		{"partial last batch", 7, 3, []int{3, 3, 1}},
		{"exact multiple", 6, 3, []int{3, 3}},
		{"single small batch", 2, 1000, []int{2}},
		{"nothing", 0, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newGraphSink()
			obs := &recordingObserver{}
			e := NewEngine(sink, tt.batchSize, nil, obs)

			ctx := context.Background()
			for i := 0; i < tt.products; i++ {
				require.NoError(t, e.Add(ctx, product(i)))
			}
			require.NoError(t, e.Flush(ctx))

			assert.Equal(t, tt.want, sink.batchSizes)
			assert.Equal(t, tt.want, obs.sizes)
			assert.Equal(t, len(tt.want), e.Stats().Batches)
			assert.Equal(t, tt.products, e.Stats().ProductsCommitted)
			assert.Zero(t, e.Pending())
		})
	}
}

func TestEngine_DefaultBatchSize(t *testing.T) {
	sink := newGraphSink()
	e := NewEngine(sink, 0, nil)
	for i := 0; i < DefaultBatchSize; i++ {
		require.NoError(t, e.Add(context.Background(), product(i)))
	}
	assert.Equal(t, []int{DefaultBatchSize}, sink.batchSizes)
}

func TestEngine_FailedBatchKeepsBuffer(t *testing.T) {
	sink := newGraphSink()
	sink.failOn = 1
	e := NewEngine(sink, 10, nil)

	ctx := context.Background()
	require.NoError(t, e.Add(ctx, product(1)))
	require.NoError(t, e.Add(ctx, product(2)))

	err := e.Flush(ctx)
	require.Error(t, err)
	assert.Equal(t, "batch 1 (2 products) failed: transaction rolled back", err.Error())
	assert.Equal(t, 2, e.Pending())
	assert.Zero(t, e.Stats().Batches)
	assert.Empty(t, sink.products)

	sink.failOn = 0
	require.NoError(t, e.Flush(ctx))
	assert.Equal(t, 1, e.Stats().Batches)
	assert.Len(t, sink.products, 2)
}
