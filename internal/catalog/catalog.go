// Package catalog loads the relational master catalog: ingredients,
// efficacy categories, skin types and their links.
package catalog

import (
	"context"

	"github.com/cosmegraph/cosmegraph/internal/database"
	"github.com/cosmegraph/cosmegraph/internal/database/models"
	"github.com/cosmegraph/cosmegraph/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Catalog is a full snapshot of the master tables.
type Catalog struct {
	Ingredients   []models.Ingredient
	Efficacies    []models.EffectCategory
	SkinTypes     []models.SkinType
	EfficacyLinks []models.EffectIngredient
	Interactions  []models.IngredientInteraction
}

// Load reads every master table concurrently.
func Load(ctx context.Context, repo database.CatalogRepository) (*Catalog, error) {
	cat := &Catalog{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		cat.Ingredients, err = repo.ListIngredients(gctx)
		return err
	})
	g.Go(func() (err error) {
		cat.Efficacies, err = repo.ListEffectCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		cat.SkinTypes, err = repo.ListSkinTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		cat.EfficacyLinks, err = repo.ListEffectIngredients(gctx)
		return err
	})
	g.Go(func() (err error) {
		cat.Interactions, err = repo.ListInteractions(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cat, nil
}

// MasterIngredients reads the id and name of every ingredient, in id order,
// as the input for the master index.
func MasterIngredients(ctx context.Context, repo database.CatalogRepository) ([]domain.MasterIngredient, error) {
	rows, err := repo.ListIngredientNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MasterIngredient, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.MasterIngredient{ID: r.ID, Name: r.Name})
	}
	return out, nil
}
