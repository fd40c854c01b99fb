package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cosmegraph/cosmegraph/internal/database"
	"github.com/cosmegraph/cosmegraph/internal/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

var (
	_ database.CatalogRepository = (*BunStore)(nil)
	_ database.RunRepository     = (*BunStore)(nil)
)

type BunStore struct {
	db *bun.DB
}

// NewBunStore wraps an open connection. It does not touch the schema; the
// master catalog is read-only and the run log is created by InitRunSchema.
func NewBunStore(db *sql.DB, dialect schema.Dialect) *BunStore {
	return &BunStore{db: bun.NewDB(db, dialect)}
}

// InitRunSchema creates the ingest_runs table if it does not exist.
func (s *BunStore) InitRunSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*models.IngestRun)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create ingest_runs table: %w", err)
	}
	return nil
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

// CatalogRepository Implementation
func (s *BunStore) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var rows []models.Ingredient
	if err := s.db.NewSelect().Model(&rows).
		Column("id", "name", "english_name", "mechanism", "efficacy_score", "evidence_level").
		Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return rows, nil
}

func (s *BunStore) ListIngredientNames(ctx context.Context) ([]models.Ingredient, error) {
	var rows []models.Ingredient
	if err := s.db.NewSelect().Model(&rows).Column("id", "name").Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list ingredient names: %w", err)
	}
	return rows, nil
}

func (s *BunStore) ListEffectCategories(ctx context.Context) ([]models.EffectCategory, error) {
	var rows []models.EffectCategory
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list effect categories: %w", err)
	}
	return rows, nil
}

func (s *BunStore) ListSkinTypes(ctx context.Context) ([]models.SkinType, error) {
	var rows []models.SkinType
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list skin types: %w", err)
	}
	return rows, nil
}

func (s *BunStore) ListEffectIngredients(ctx context.Context) ([]models.EffectIngredient, error) {
	var rows []models.EffectIngredient
	if err := s.db.NewSelect().Model(&rows).OrderExpr("rowid ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list effect_ingredient: %w", err)
	}
	return rows, nil
}

func (s *BunStore) ListInteractions(ctx context.Context) ([]models.IngredientInteraction, error) {
	var rows []models.IngredientInteraction
	if err := s.db.NewSelect().Model(&rows).OrderExpr("rowid ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list ingredient interactions: %w", err)
	}
	return rows, nil
}

// RunRepository Implementation
func (s *BunStore) CreateRun(ctx context.Context, run *models.IngestRun) error {
	if run.Version == 0 {
		run.Version = 1
	}
	if _, err := s.db.NewInsert().Model(run).Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (s *BunStore) GetRun(ctx context.Context, id string) (*models.IngestRun, error) {
	run := new(models.IngestRun)
	if err := s.db.NewSelect().Model(run).Where("id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *BunStore) LatestRun(ctx context.Context) (*models.IngestRun, error) {
	run := new(models.IngestRun)
	if err := s.db.NewSelect().Model(run).Order("created_at DESC").OrderExpr("rowid DESC").Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// UpdateRun writes the run's mutable fields using optimistic locking on
// Version. On success run.Version is incremented.
func (s *BunStore) UpdateRun(ctx context.Context, run *models.IngestRun) error {
	res, err := s.db.NewUpdate().Model((*models.IngestRun)(nil)).
		Set("status = ?", run.Status).
		Set("batches_committed = ?", run.BatchesCommitted).
		Set("products_committed = ?", run.ProductsCommitted).
		Set("rows_skipped = ?", run.RowsSkipped).
		Set("new_ingredients = ?", run.NewIngredients).
		Set("error_message = ?", run.ErrorMessage).
		Set("version = version + 1").
		Set("updated_at = current_timestamp").
		Where("id = ? AND version = ?", run.ID, run.Version).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrConcurrentUpdate
	}
	run.Version++
	return nil
}
