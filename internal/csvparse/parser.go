// Package csvparse reads the retail product CSV into RawProductRecords.
package csvparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cosmegraph/cosmegraph/internal/domain"
	"github.com/cosmegraph/cosmegraph/internal/logger"
)

const (
	colName = iota
	colURL
	colType
	colIngredients
	colPrice

	minFields
)

// Stats counts what the parser saw. Skipped rows are not errors.
type Stats struct {
	RowsRead        int
	RowsSkipped     int
	PriceAnomalies  int
	FieldsReencoded int
}

// Parser yields one RawProductRecord per valid data row.
type Parser struct {
	r          *csv.Reader
	log        *logger.Logger
	headerDone bool
	stats      Stats
}

// NewParser wraps r. The first row is treated as a header and ignored.
func NewParser(r io.Reader, log *logger.Logger) *Parser {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return &Parser{
		r:   cr,
		log: logger.OrNop(log).With("component", "csvparse"),
	}
}

// Next returns the next valid record, or io.EOF when the input is exhausted.
func (p *Parser) Next() (domain.RawProductRecord, error) {
	if !p.headerDone {
		p.headerDone = true
		if _, err := p.r.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return domain.RawProductRecord{}, io.EOF
			}
			return domain.RawProductRecord{}, fmt.Errorf("read csv header: %w", err)
		}
	}

	for {
		row, err := p.r.Read()
		if errors.Is(err, io.EOF) {
			return domain.RawProductRecord{}, io.EOF
		}
		if err != nil {
			return domain.RawProductRecord{}, fmt.Errorf("read csv row: %w", err)
		}
		p.stats.RowsRead++
		line, _ := p.r.FieldPos(0)

		if len(row) < minFields {
			p.stats.RowsSkipped++
			p.log.Debug("skipping short row", "line", line, "fields", len(row))
			continue
		}
		return p.record(line, row), nil
	}
}

// Stats returns the counters accumulated so far.
func (p *Parser) Stats() Stats { return p.stats }

func (p *Parser) record(line int, row []string) domain.RawProductRecord {
	field := func(i int) string {
		s, changed := repairText(row[i])
		if changed {
			p.stats.FieldsReencoded++
		}
		return strings.TrimSpace(s)
	}

	rec := domain.RawProductRecord{
		Line: line,
		Name: field(colName),
		URL:  field(colURL),
		Type: field(colType),
	}
	if parts := strings.Fields(rec.Name); len(parts) > 0 {
		rec.Brand = parts[0]
	}
	rec.Ingredients = SplitIngredients(field(colIngredients))

	rec.Price = ParsePrice(field(colPrice))
	if rec.Price.Anomaly {
		p.stats.PriceAnomalies++
		p.log.Warn("unrecognized price format", "line", line, "product", rec.Name, "price", rec.Price.Raw)
	}
	return rec
}
