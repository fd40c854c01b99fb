// Package domain holds the record types that flow through the ingestion
// pipeline, from the CSV parser to the graph sinks.
package domain

// Tier is the coarse concentration label stored on CONTAINS edges.
type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

// IngredientSource records where an Ingredient node's identity came from.
type IngredientSource string

const (
	// SourceMaster marks ingredients matched against the curated master list.
	SourceMaster IngredientSource = "Master"
	// SourceNewlyDiscovered marks ingredients only seen in the product CSV.
	// The persisted label is the dataset name, as the rest of the graph uses it.
	SourceNewlyDiscovered IngredientSource = "Kaggle"
)

// ProductSource is the source label stored on every Product node.
const ProductSource = "Kaggle"

// MasterIngredient is one row of the relational ingredients table.
type MasterIngredient struct {
	ID   int64
	Name string
}

// Price is a cleaned product price.
type Price struct {
	Amount   string // decimal amount without currency symbol
	Currency string // ISO code, empty when the CSV carried none
	Raw      string // trimmed source value
	Anomaly  bool   // unrecognized prefix; Amount holds Raw
}

// RawProductRecord is one valid CSV row.
type RawProductRecord struct {
	Line        int
	Name        string
	Brand       string
	Type        string
	URL         string
	Price       Price
	Ingredients []string
}

// ResolvedIngredientRef is one ingredient of a product after resolution.
type ResolvedIngredientRef struct {
	Name     string
	Source   IngredientSource
	Position int // 1-based index in the raw ingredient list
	Tier     Tier
}

// ResolvedProductRecord is a product ready to be merged into the graph.
type ResolvedProductRecord struct {
	Name        string
	Brand       string
	Type        string
	URL         string
	Price       string
	Currency    string
	Ingredients []ResolvedIngredientRef
}
