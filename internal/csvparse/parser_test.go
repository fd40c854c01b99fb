package csvparse

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmegraph/cosmegraph/internal/domain"
)

const header = "product_name,product_url,product_type,ingredients,price\n"

func readAll(t *testing.T, p *Parser) []domain.RawProductRecord {
	t.Helper()
	var out []domain.RawProductRecord
	for {
		rec, err := p.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, rec)
	}
}

func TestParser_ValidRow(t *testing.T) {
	in := header +
		`The Ordinary Niacinamide 10% + Zinc 1%,https://shop.example/1,Serum,"Niacinamide, Hyaluronic Acid, Fragrance (Parfum, Natural)",£5.90` + "\n"

	p := NewParser(strings.NewReader(in), nil)
	recs := readAll(t, p)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, 2, rec.Line)
	assert.Equal(t, "The Ordinary Niacinamide 10% + Zinc 1%", rec.Name)
	assert.Equal(t, "The", rec.Brand)
	assert.Equal(t, "Serum", rec.Type)
	assert.Equal(t, "https://shop.example/1", rec.URL)
	assert.Equal(t, []string{"Niacinamide", "Hyaluronic Acid", "Fragrance (Parfum, Natural)"}, rec.Ingredients)
	assert.Equal(t, domain.Price{Amount: "5.90", Currency: "GBP", Raw: "£5.90"}, rec.Price)

	assert.Equal(t, Stats{RowsRead: 1}, p.Stats())
}

func TestParser_SkipsShortRows(t *testing.T) {
	in := header +
		"Broken Toner,https://shop.example/2,Toner,Water\n" +
		"Rose Mist,https://shop.example/3,Mist,\"Aqua, Rose\",£3.00,extra\n"

	p := NewParser(strings.NewReader(in), nil)
	recs := readAll(t, p)
	require.Len(t, recs, 1)
	assert.Equal(t, "Rose Mist", recs[0].Name)

	stats := p.Stats()
	assert.Equal(t, 2, stats.RowsRead)
	assert.Equal(t, 1, stats.RowsSkipped)
}

func TestParser_RepairsEncodingAndFlagsAnomalies(t *testing.T) {
	in := header +
		"Balm,https://shop.example/4,Balm,Shea,Â£7.00\n" +
		"Caf\xe9 Scrub,https://shop.example/5,Scrub,Coffee,\xa34.50\n" +
		"Yen Cream,https://shop.example/6,Cream,Rice,¥900\n"

	p := NewParser(strings.NewReader(in), nil)
	recs := readAll(t, p)
	require.Len(t, recs, 3)

	assert.Equal(t, "GBP", recs[0].Price.Currency)
	assert.Equal(t, "7.00", recs[0].Price.Amount)

	assert.Equal(t, "Café Scrub", recs[1].Name)
	assert.Equal(t, "4.50", recs[1].Price.Amount)

	assert.True(t, recs[2].Price.Anomaly)
	assert.Equal(t, "¥900", recs[2].Price.Amount)

	stats := p.Stats()
	assert.Equal(t, 1, stats.PriceAnomalies)
	assert.Equal(t, 3, stats.FieldsReencoded)
}

func TestParser_EmptyInput(t *testing.T) {
	p := NewParser(strings.NewReader(""), nil)
	_, err := p.Next()
	assert.ErrorIs(t, err, io.EOF)

	p = NewParser(strings.NewReader(header), nil)
	_, err = p.Next()
	assert.ErrorIs(t, err, io.EOF)
}
