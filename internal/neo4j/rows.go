package neo4j

import "github.com/cosmegraph/cosmegraph/internal/catalog"

func efficacyRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.Efficacies))
	for _, e := range cat.Efficacies {
		rows = append(rows, map[string]any{"id": e.ID, "name": e.Name, "description": e.Description})
	}
	return rows
}

func skinTypeRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.SkinTypes))
	for _, s := range cat.SkinTypes {
		rows = append(rows, map[string]any{"id": s.ID, "name": s.Name, "description": s.Description})
	}
	return rows
}

func ingredientRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.Ingredients))
	for _, i := range cat.Ingredients {
		rows = append(rows, map[string]any{
			"id":             i.ID,
			"name":           i.Name,
			"english_name":   i.EnglishName,
			"mechanism":      i.Mechanism,
			"efficacy_score": i.EfficacyScore,
			"evidence_level": i.EvidenceLevel,
		})
	}
	return rows
}

func efficacyLinkRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.EfficacyLinks))
	for _, l := range cat.EfficacyLinks {
		rows = append(rows, map[string]any{"effect_id": l.EffectID, "ingredient_id": l.IngredientID})
	}
	return rows
}

func interactionRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, len(cat.Interactions))
	for _, x := range cat.Interactions {
		rows = append(rows, map[string]any{
			"ingredient1_id": x.Ingredient1ID,
			"ingredient2_id": x.Ingredient2ID,
			"type":           x.InteractionType,
			"description":    x.Description,
		})
	}
	return rows
}
