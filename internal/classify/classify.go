// Package classify derives a concentration tier from an ingredient's declared
// position. Ingredient labels list components by descending concentration, so
// position is the only input.
package classify

import "github.com/cosmegraph/cosmegraph/internal/domain"

// Classifier maps a 1-based position to a tier.
type Classifier interface {
	Classify(position int) domain.Tier
}

// PositionClassifier assigns High up to HighUntil, Medium up to MediumUntil
// and Low after that.
type PositionClassifier struct {
	HighUntil   int
	MediumUntil int
}

// Default returns the 1-3 High, 4-6 Medium, 7+ Low classifier.
func Default() PositionClassifier {
	return PositionClassifier{HighUntil: 3, MediumUntil: 6}
}

func (c PositionClassifier) Classify(position int) domain.Tier {
	switch {
	case position <= c.HighUntil:
		return domain.TierHigh
	case position <= c.MediumUntil:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}
