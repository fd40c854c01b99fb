package cypher

import "github.com/cosmegraph/cosmegraph/internal/domain"

// ProductParams converts a batch into the $products parameter of
// MergeProducts. Empty currency is passed as null so the property is unset.
func ProductParams(batch []domain.ResolvedProductRecord) []map[string]any {
	out := make([]map[string]any, 0, len(batch))
	for _, p := range batch {
		ings := make([]map[string]any, 0, len(p.Ingredients))
		for _, ing := range p.Ingredients {
			ings = append(ings, map[string]any{
				"name":                ing.Name,
				"source":              string(ing.Source),
				"concentration_level": string(ing.Tier),
				"position":            int64(ing.Position),
			})
		}
		var currency any
		if p.Currency != "" {
			currency = p.Currency
		}
		out = append(out, map[string]any{
			"name":        p.Name,
			"brand":       p.Brand,
			"type":        p.Type,
			"url":         p.URL,
			"price":       p.Price,
			"currency":    currency,
			"source":      domain.ProductSource,
			"ingredients": ings,
		})
	}
	return out
}
