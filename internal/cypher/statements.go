// Package cypher holds the Cypher text shared by the direct Neo4j sink and the
// offline script writer, so both apply the same merge semantics.
package cypher

// Constraints back the MERGE keys used by the pipeline and the catalog copier.
var Constraints = []string{
	"CREATE CONSTRAINT product_name_unique IF NOT EXISTS FOR (p:Product) REQUIRE p.name IS UNIQUE",
	"CREATE CONSTRAINT ingredient_name_unique IF NOT EXISTS FOR (i:Ingredient) REQUIRE i.name IS UNIQUE",
	"CREATE CONSTRAINT efficacy_id_unique IF NOT EXISTS FOR (e:Efficacy) REQUIRE e.id IS UNIQUE",
	"CREATE CONSTRAINT skintype_id_unique IF NOT EXISTS FOR (s:SkinType) REQUIRE s.id IS UNIQUE",
}

// MergeProducts merges a batch passed as $products. Every SET is ON CREATE:
// an existing product, ingredient or CONTAINS edge is matched, never changed.
const MergeProducts = `
UNWIND $products AS data
MERGE (p:Product {name: data.name})
ON CREATE SET
    p.brand = data.brand,
    p.type = data.type,
    p.url = data.url,
    p.price = data.price,
    p.currency = data.currency,
    p.source = data.source
WITH p, data
UNWIND data.ingredients AS ing
MERGE (i:Ingredient {name: ing.name})
ON CREATE SET i.source = ing.source
MERGE (p)-[c:CONTAINS]->(i)
ON CREATE SET
    c.concentration_level = ing.concentration_level,
    c.position = ing.position
`

// Catalog statements, each taking $rows.
const (
	MergeEfficacies = `
UNWIND $rows AS r
MERGE (e:Efficacy {id: r.id})
SET e.name = r.name, e.description = r.description
`

	MergeSkinTypes = `
UNWIND $rows AS r
MERGE (s:SkinType {id: r.id})
SET s.name = r.name, s.description = r.description
`

	MergeMasterIngredients = `
UNWIND $rows AS r
MERGE (i:Ingredient {name: r.name})
SET i.id = r.id,
    i.english_name = r.english_name,
    i.mechanism = r.mechanism,
    i.efficacy_score = r.efficacy_score,
    i.evidence_level = r.evidence_level,
    i.source = 'Master'
`

	MergeHasEfficacy = `
UNWIND $rows AS r
MATCH (e:Efficacy {id: r.effect_id})
MATCH (i:Ingredient {id: r.ingredient_id})
MERGE (i)-[:HAS_EFFICACY]->(e)
`

	MergeInteractions = `
UNWIND $rows AS r
MATCH (a:Ingredient {id: r.ingredient1_id})
MATCH (b:Ingredient {id: r.ingredient2_id})
MERGE (a)-[x:INTERACTS_WITH]->(b)
ON CREATE SET x.type = r.type, x.description = r.description
`
)
