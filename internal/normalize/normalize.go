// Package normalize turns free-text ingredient names into keys that can be
// compared against the master ingredient list.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	stopWords     = regexp.MustCompile(`(?i)\b(Extract|Oil|Water|Powder|Juice|Acid|Salt|Ester)\b`)
	separators    = regexp.MustCompile(`[/\\-]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Ingredient normalizes a raw ingredient string. The result may be empty,
// which callers must treat as "no ingredient". Passes repeat until the
// output is stable, so Ingredient(Ingredient(s)) == Ingredient(s).
func Ingredient(raw string) string {
	s := pass(raw)
	for {
		// Every pass after the first either returns its input or removes
		// runes, so this terminates.
		next := pass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func pass(raw string) string {
	s := strings.TrimSpace(raw)
	s = parenthesized.ReplaceAllString(s, "")
	s = stopWords.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return titleCase(s)
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest, so "o'neil 1st" becomes "O'Neil 1St".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
