package database

import (
	"context"
	"errors"

	"github.com/cosmegraph/cosmegraph/internal/database/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConcurrentUpdate = errors.New("concurrent update detected: version mismatch")
)

// CatalogRepository reads the relational master catalog. Every list is
// returned in ascending id (or rowid) order.
type CatalogRepository interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	// ListIngredientNames reads only id and name; the other fields are zero.
	ListIngredientNames(ctx context.Context) ([]models.Ingredient, error)
	ListEffectCategories(ctx context.Context) ([]models.EffectCategory, error)
	ListSkinTypes(ctx context.Context) ([]models.SkinType, error)
	ListEffectIngredients(ctx context.Context) ([]models.EffectIngredient, error)
	ListInteractions(ctx context.Context) ([]models.IngredientInteraction, error)
}

// RunRepository persists the ingest run log.
type RunRepository interface {
	CreateRun(ctx context.Context, run *models.IngestRun) error
	GetRun(ctx context.Context, id string) (*models.IngestRun, error)
	LatestRun(ctx context.Context) (*models.IngestRun, error)
	UpdateRun(ctx context.Context, run *models.IngestRun) error
}
