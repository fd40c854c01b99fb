package csvparse

import (
	"strings"

	"github.com/cosmegraph/cosmegraph/internal/domain"
)

var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"£", "GBP"},
	{"$", "USD"},
	{"€", "EUR"},
}

// ParsePrice strips a known currency symbol from an already repaired price
// field. Anything it cannot read as "[symbol]amount" is flagged as an
// anomaly and kept verbatim.
func ParsePrice(raw string) domain.Price {
	p := domain.Price{Raw: strings.TrimSpace(raw)}
	if p.Raw == "" {
		return p
	}

	rest := p.Raw
	for _, c := range currencySymbols {
		if strings.HasPrefix(rest, c.symbol) {
			rest = strings.TrimSpace(strings.TrimPrefix(rest, c.symbol))
			p.Currency = c.code
			break
		}
	}

	amount := strings.ReplaceAll(rest, ",", "")
	if !isPlainDecimal(amount) {
		return domain.Price{Raw: p.Raw, Amount: p.Raw, Anomaly: true}
	}
	p.Amount = amount
	return p
}

// isPlainDecimal accepts an optional leading minus, digits and at most one
// decimal point.
func isPlainDecimal(s string) bool {
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		case r == '-' && i == 0:
		default:
			return false
		}
	}
	return s != "" && s != "." && s != "-"
}
