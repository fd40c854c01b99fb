package neo4j

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmegraph/cosmegraph/internal/catalog"
	"github.com/cosmegraph/cosmegraph/internal/database/models"
)

func TestCatalogRows(t *testing.T) {
	cat := &catalog.Catalog{
		Ingredients: []models.Ingredient{
			{ID: 7, Name: "Niacinamide", EnglishName: "Niacinamide", Mechanism: "barrier", EfficacyScore: 8.5, EvidenceLevel: "A"},
		},
		Efficacies:    []models.EffectCategory{{ID: 1, Name: "Brightening", Description: "evens tone"}},
		SkinTypes:     []models.SkinType{{ID: 2, Name: "Oily"}},
		EfficacyLinks: []models.EffectIngredient{{EffectID: 1, IngredientID: 7}},
		Interactions:  []models.IngredientInteraction{{Ingredient1ID: 7, Ingredient2ID: 9, InteractionType: "caution", Description: "irritation"}},
	}

	ings := ingredientRows(cat)
	require.Len(t, ings, 1)
	assert.Equal(t, int64(7), ings[0]["id"])
	assert.Equal(t, 8.5, ings[0]["efficacy_score"])

	assert.Equal(t, []map[string]any{{"id": int64(1), "name": "Brightening", "description": "evens tone"}}, efficacyRows(cat))
	assert.Equal(t, []map[string]any{{"id": int64(2), "name": "Oily", "description": ""}}, skinTypeRows(cat))
	assert.Equal(t, []map[string]any{{"effect_id": int64(1), "ingredient_id": int64(7)}}, efficacyLinkRows(cat))
	assert.Equal(t, []map[string]any{{
		"ingredient1_id": int64(7),
		"ingredient2_id": int64(9),
		"type":           "caution",
		"description":    "irritation",
	}}, interactionRows(cat))
}

func TestCatalogRows_Empty(t *testing.T) {
	cat := &catalog.Catalog{}
	assert.Empty(t, ingredientRows(cat))
	assert.Empty(t, interactionRows(cat))
}
