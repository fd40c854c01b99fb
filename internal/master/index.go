// Package master builds the in-memory lookup from normalized ingredient names
// to the canonical entries of the relational master list.
package master

import (
	"github.com/cosmegraph/cosmegraph/internal/domain"
	"github.com/cosmegraph/cosmegraph/internal/logger"
	"github.com/cosmegraph/cosmegraph/internal/normalize"
)

// Index maps normalized keys to master ingredients. It is read-only after Build.
type Index struct {
	byKey      map[string]domain.MasterIngredient
	collisions int
}

// Build indexes rows in the order given. When two rows normalize to the same
// key the later row wins; rows that normalize to nothing are skipped.
func Build(rows []domain.MasterIngredient, log *logger.Logger) *Index {
	log = logger.OrNop(log)
	idx := &Index{byKey: make(map[string]domain.MasterIngredient, len(rows))}
	for _, row := range rows {
		key := normalize.Ingredient(row.Name)
		if key == "" {
			log.Debug("master ingredient normalizes to empty key, skipped", "id", row.ID, "name", row.Name)
			continue
		}
		if prev, ok := idx.byKey[key]; ok && prev.ID != row.ID {
			idx.collisions++
			log.Debug("master key collision", "key", key, "replaced", prev.Name, "by", row.Name)
		}
		idx.byKey[key] = row
	}
	return idx
}

// Lookup normalizes raw and returns the master entry for it, if any.
func (i *Index) Lookup(raw string) (domain.MasterIngredient, bool) {
	return i.LookupKey(normalize.Ingredient(raw))
}

// LookupKey looks up an already-normalized key.
func (i *Index) LookupKey(key string) (domain.MasterIngredient, bool) {
	if key == "" {
		return domain.MasterIngredient{}, false
	}
	m, ok := i.byKey[key]
	return m, ok
}

func (i *Index) Len() int        { return len(i.byKey) }
func (i *Index) Collisions() int { return i.collisions }
