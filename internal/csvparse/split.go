package csvparse

import "strings"

// SplitIngredients splits an ingredient list on commas that are not inside
// parentheses. Pieces are trimmed and blank pieces are dropped. A stray
// closing parenthesis never drives the depth below zero.
func SplitIngredients(raw string) []string {
	var (
		out   []string
		depth int
		start int
	)
	emit := func(piece string) {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	for i, r := range raw {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				emit(raw[start:i])
				start = i + 1
			}
		}
	}
	emit(raw[start:])
	return out
}
