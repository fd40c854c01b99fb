package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cosmegraph/cosmegraph/internal/domain"
)

// graphSink applies batches to an in-memory graph with create-if-absent
// semantics, mirroring the MERGE ... ON CREATE SET statements.
type graphSink struct {
	mu          sync.Mutex
	products    map[string]domain.ResolvedProductRecord
	ingredients map[string]domain.IngredientSource
	contains    map[[2]string]domain.ResolvedIngredientRef
	batchSizes  []int

	failOn int // 1-based batch number that fails; 0 never
}

func newGraphSink() *graphSink {
	return &graphSink{
		products:    make(map[string]domain.ResolvedProductRecord),
		ingredients: make(map[string]domain.IngredientSource),
		contains:    make(map[[2]string]domain.ResolvedIngredientRef),
	}
}

func (g *graphSink) WriteBatch(_ context.Context, seq int, batch []domain.ResolvedProductRecord) (BatchResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if seq == g.failOn {
		return BatchResult{}, fmt.Errorf("transaction rolled back")
	}

	var res BatchResult
	for _, p := range batch {
		if _, ok := g.products[p.Name]; !ok {
			stored := p
			stored.Ingredients = nil
			g.products[p.Name] = stored
			res.NodesCreated++
		}
		for _, ing := range p.Ingredients {
			if _, ok := g.ingredients[ing.Name]; !ok {
				g.ingredients[ing.Name] = ing.Source
				res.NodesCreated++
			}
			key := [2]string{p.Name, ing.Name}
			if _, ok := g.contains[key]; !ok {
				g.contains[key] = ing
				res.RelationshipsCreated++
			}
		}
	}
	res.Statements = 1
	g.batchSizes = append(g.batchSizes, len(batch))
	return res, nil
}

type recordingObserver struct {
	seqs  []int
	sizes []int
}

func (o *recordingObserver) BatchCommitted(seq, size int, _ BatchResult, _ time.Duration) {
	o.seqs = append(o.seqs, seq)
	o.sizes = append(o.sizes, size)
}
