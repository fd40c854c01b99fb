package cypher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cosmegraph/cosmegraph/internal/domain"
	"github.com/cosmegraph/cosmegraph/internal/ingest"
)

var _ ingest.Sink = (*ScriptSink)(nil)

// ScriptSink writes one self-contained Cypher statement per line, for
// execution with cypher-shell or the Neo4j browser. Statements are not
// grouped into transactions; a failure while replaying the file can leave a
// batch partially applied.
type ScriptSink struct {
	w *bufio.Writer
}

func NewScriptSink(w io.Writer) *ScriptSink {
	return &ScriptSink{w: bufio.NewWriter(w)}
}

// WriteSchema emits the uniqueness constraints. Call it before the first batch.
func (s *ScriptSink) WriteSchema() error {
	for _, c := range Constraints {
		if _, err := fmt.Fprintf(s.w, "%s;\n", c); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// WriteBatch writes the statements for one batch and flushes them.
func (s *ScriptSink) WriteBatch(ctx context.Context, seq int, batch []domain.ResolvedProductRecord) (ingest.BatchResult, error) {
	var res ingest.BatchResult
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if _, err := fmt.Fprintf(s.w, "// batch %d: %d products\n", seq, len(batch)); err != nil {
		return res, err
	}
	for _, p := range batch {
		for _, stmt := range ProductStatements(p) {
			if _, err := s.w.WriteString(stmt + "\n"); err != nil {
				return res, err
			}
			res.Statements++
		}
	}
	if err := s.w.Flush(); err != nil {
		return res, fmt.Errorf("flush script: %w", err)
	}
	return res, nil
}

// ProductStatements renders the create-if-absent statements for one product:
// the Product node, then for every ingredient its node and CONTAINS edge.
func ProductStatements(p domain.ResolvedProductRecord) []string {
	name := Quote(p.Name)
	props := []string{
		"p.brand = " + Quote(p.Brand),
		"p.type = " + Quote(p.Type),
		"p.url = " + Quote(p.URL),
		"p.price = " + Quote(p.Price),
	}
	if p.Currency != "" {
		props = append(props, "p.currency = "+Quote(p.Currency))
	}
	props = append(props, "p.source = "+Quote(domain.ProductSource))

	out := make([]string, 0, 1+2*len(p.Ingredients))
	out = append(out, fmt.Sprintf("MERGE (p:Product {name: %s}) ON CREATE SET %s;", name, strings.Join(props, ", ")))
	for _, ing := range p.Ingredients {
		ingName := Quote(ing.Name)
		out = append(out,
			fmt.Sprintf("MERGE (i:Ingredient {name: %s}) ON CREATE SET i.source = %s;", ingName, Quote(string(ing.Source))),
			fmt.Sprintf("MATCH (p:Product {name: %s}), (i:Ingredient {name: %s}) MERGE (p)-[c:CONTAINS]->(i) ON CREATE SET c.concentration_level = %s, c.position = %s;",
				name, ingName, Quote(string(ing.Tier)), strconv.Itoa(ing.Position)),
		)
	}
	return out
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote renders s as a single-quoted Cypher string literal.
func Quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
