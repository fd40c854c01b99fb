package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RunStatus is the state of an ingest run.
type RunStatus int

const (
	RunStatusPending    RunStatus = 0
	RunStatusProcessing RunStatus = 1
	RunStatusCompleted  RunStatus = 2
	RunStatusFailed     RunStatus = 3
)

func (s RunStatus) String() string {
	switch s {
	case RunStatusPending:
		return "pending"
	case RunStatusProcessing:
		return "processing"
	case RunStatusCompleted:
		return "completed"
	case RunStatusFailed:
		return "failed"
	}
	return "unknown"
}

// Ingredient is a row of the master ingredients table.
type Ingredient struct {
	bun.BaseModel `bun:"table:ingredients,alias:i"`

	ID            int64   `bun:",pk"`
	Name          string  `bun:",notnull"`
	EnglishName   string  `bun:",nullzero"`
	Mechanism     string  `bun:",nullzero"`
	EfficacyScore float64 `bun:",nullzero"`
	EvidenceLevel string  `bun:",nullzero"`
}

// EffectCategory is an efficacy category.
type EffectCategory struct {
	bun.BaseModel `bun:"table:effect_categories,alias:ec"`

	ID          int64  `bun:",pk"`
	Name        string `bun:",notnull"`
	Description string `bun:",nullzero"`
}

// SkinType is a skin type.
type SkinType struct {
	bun.BaseModel `bun:"table:skin_types,alias:st"`

	ID          int64  `bun:",pk"`
	Name        string `bun:",notnull"`
	Description string `bun:",nullzero"`
}

// EffectIngredient links an ingredient to an efficacy category.
type EffectIngredient struct {
	bun.BaseModel `bun:"table:effect_ingredient,alias:ei"`

	EffectID     int64 `bun:",notnull"`
	IngredientID int64 `bun:",notnull"`
}

// IngredientInteraction is a directed interaction between two ingredients.
type IngredientInteraction struct {
	bun.BaseModel `bun:"table:ingredient_interactions,alias:ii"`

	Ingredient1ID   int64  `bun:"ingredient1_id,notnull"`
	Ingredient2ID   int64  `bun:"ingredient2_id,notnull"`
	InteractionType string `bun:",nullzero"`
	Description     string `bun:",nullzero"`
}

// IngestRun records one execution of the product ingestion pipeline.
type IngestRun struct {
	bun.BaseModel `bun:"table:ingest_runs,alias:ir"`

	ID                string    `bun:",pk"`
	Mode              string    `bun:",notnull"`
	CSVPath           string    `bun:"csv_path,notnull"`
	Status            RunStatus `bun:",notnull"`
	Version           int       `bun:",notnull,default:1"`
	BatchesCommitted  int       `bun:",notnull,default:0"`
	ProductsCommitted int       `bun:",notnull,default:0"`
	RowsSkipped       int       `bun:",notnull,default:0"`
	NewIngredients    int       `bun:",notnull,default:0"`
	ErrorMessage      string    `bun:",nullzero"`
	CreatedAt         time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
