// Package resolve turns raw product records into graph-ready records by
// matching every ingredient against the master index.
package resolve

import (
	"sort"

	"github.com/cosmegraph/cosmegraph/internal/classify"
	"github.com/cosmegraph/cosmegraph/internal/domain"
	"github.com/cosmegraph/cosmegraph/internal/normalize"
)

// Lookup is the part of the master index the resolver needs.
type Lookup interface {
	LookupKey(key string) (domain.MasterIngredient, bool)
}

// Stats counts resolver outcomes for the run summary.
type Stats struct {
	ProductsResolved     int
	ProductsDropped      int
	IngredientsMaster    int
	IngredientsNew       int
	IngredientsDropped   int
	DuplicateIngredients int
}

// Resolver is not safe for concurrent use.
type Resolver struct {
	index      Lookup
	classifier classify.Classifier
	discovered map[string]struct{}
	stats      Stats
}

func New(index Lookup, classifier classify.Classifier) *Resolver {
	if classifier == nil {
		classifier = classify.Default()
	}
	return &Resolver{
		index:      index,
		classifier: classifier,
		discovered: make(map[string]struct{}),
	}
}

// Resolve maps one raw ingredient at its 1-based position. It returns false
// when the ingredient normalizes to nothing and must be dropped.
func (r *Resolver) Resolve(raw string, position int) (domain.ResolvedIngredientRef, bool) {
	key := normalize.Ingredient(raw)
	if key == "" {
		return domain.ResolvedIngredientRef{}, false
	}

	ref := domain.ResolvedIngredientRef{
		Position: position,
		Tier:     r.classifier.Classify(position),
	}
	if m, ok := r.index.LookupKey(key); ok {
		ref.Name = m.Name
		ref.Source = domain.SourceMaster
		return ref, true
	}
	ref.Name = key
	ref.Source = domain.SourceNewlyDiscovered
	r.discovered[key] = struct{}{}
	return ref, true
}

// ResolveProduct resolves every ingredient of rec. Positions are the indexes
// of the raw list, so a dropped ingredient leaves a gap. A repeated canonical
// name keeps its first occurrence. Returns false for an unnamed product or
// when no ingredient survives.
func (r *Resolver) ResolveProduct(rec domain.RawProductRecord) (domain.ResolvedProductRecord, bool) {
	if rec.Name == "" {
		r.stats.ProductsDropped++
		return domain.ResolvedProductRecord{}, false
	}

	out := domain.ResolvedProductRecord{
		Name:     rec.Name,
		Brand:    rec.Brand,
		Type:     rec.Type,
		URL:      rec.URL,
		Price:    rec.Price.Amount,
		Currency: rec.Price.Currency,
	}

	seen := make(map[string]struct{}, len(rec.Ingredients))
	for i, raw := range rec.Ingredients {
		ref, ok := r.Resolve(raw, i+1)
		if !ok {
			r.stats.IngredientsDropped++
			continue
		}
		if _, dup := seen[ref.Name]; dup {
			r.stats.DuplicateIngredients++
			continue
		}
		seen[ref.Name] = struct{}{}
		if ref.Source == domain.SourceMaster {
			r.stats.IngredientsMaster++
		} else {
			r.stats.IngredientsNew++
		}
		out.Ingredients = append(out.Ingredients, ref)
	}

	if len(out.Ingredients) == 0 {
		r.stats.ProductsDropped++
		return domain.ResolvedProductRecord{}, false
	}
	r.stats.ProductsResolved++
	return out, true
}

// NewIngredients returns the distinct newly discovered names seen so far,
// sorted.
func (r *Resolver) NewIngredients() []string {
	names := make([]string, 0, len(r.discovered))
	for n := range r.discovered {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewIngredientCount returns the number of distinct newly discovered names.
func (r *Resolver) NewIngredientCount() int { return len(r.discovered) }

func (r *Resolver) Stats() Stats { return r.stats }
