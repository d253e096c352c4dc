package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

// ErrScoreOutOfBounds is returned when a score falls outside [0, 100].
var ErrScoreOutOfBounds = errors.New("score outside [0, 100]")

// TierClassifier maps a final score to a risk tier using ascending,
// inclusive upper bounds.
type TierClassifier struct {
	bands []model.TierBand
}

// NewTierClassifier creates a classifier. Empty bands fall back to the
// default 50/70 cut points.
func NewTierClassifier(bands []model.TierBand) *TierClassifier {
	if len(bands) == 0 {
		bands = model.DefaultTierBands()
	}
	return &TierClassifier{bands: append([]model.TierBand(nil), bands...)}
}

// Classify returns the tier of the first band whose upper bound is at least
// score.
func (c *TierClassifier) Classify(score decimal.Decimal) (valueobject.Tier, error) {
	if score.IsNegative() || score.GreaterThan(hundred) {
		return valueobject.Tier{}, fmt.Errorf("classify %s: %w", score, ErrScoreOutOfBounds)
	}
	for _, b := range c.bands {
		if score.LessThanOrEqual(b.Upper) {
			return b.Tier, nil
		}
	}
	return valueobject.Tier{}, fmt.Errorf("classify %s: no tier band covers score", score)
}
