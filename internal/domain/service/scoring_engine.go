package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

// ScorePrecision is the number of decimal places of the final score.
const ScorePrecision = 2

// ScoringEngine turns an input record into a ScoreBreakdown for one
// scorecard. It is stateless apart from its immutable scorecard and is safe
// for concurrent use.
type ScoringEngine struct {
	card       model.Scorecard
	normalizer *Normalizer
	classifier *TierClassifier
}

// NewScoringEngine binds a validated scorecard to a normalizer.
func NewScoringEngine(card model.Scorecard, normalizer *Normalizer) (*ScoringEngine, error) {
	if card.IsZero() {
		return nil, fmt.Errorf("scoring engine requires a scorecard")
	}
	if normalizer == nil {
		normalizer = NewNormalizer(nil, nil)
	}
	return &ScoringEngine{
		card:       card,
		normalizer: normalizer,
		classifier: NewTierClassifier(card.Tiers()),
	}, nil
}

// Scorecard returns the scorecard the engine evaluates.
func (e *ScoringEngine) Scorecard() model.Scorecard { return e.card }

// Score validates the record, normalizes every attribute, aggregates the
// categories, composes the total and classifies it. On error no breakdown is
// returned.
func (e *ScoringEngine) Score(ctx context.Context, record valueobject.InputRecord) (model.ScoreBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return model.ScoreBreakdown{}, err
	}
	if err := e.normalizer.Validate(e.card, record); err != nil {
		return model.ScoreBreakdown{}, err
	}

	categories := e.card.Categories()
	attributes := make([]model.AttributeScore, 0, len(e.card.Attributes()))
	categoryScores := make([]model.CategoryScore, 0, len(categories))

	for _, cat := range categories {
		scored := make([]model.AttributeScore, 0, len(cat.Attributes))
		for _, attr := range cat.Attributes {
			s, err := e.normalizer.Normalize(ctx, e.card, attr, record)
			if err != nil {
				return model.ScoreBreakdown{}, err
			}
			scored = append(scored, s)
		}
		attributes = append(attributes, scored...)
		categoryScores = append(categoryScores, Aggregate(cat, scored))
	}

	total := Compose(categoryScores)
	tier, err := e.classifier.Classify(total)
	if err != nil {
		return model.ScoreBreakdown{}, fmt.Errorf("scorecard %q: %w", e.card.Name(), err)
	}

	return model.ScoreBreakdown{
		Scorecard:  e.card.Name(),
		Attributes: attributes,
		Categories: categoryScores,
		Total:      total,
		Tier:       tier,
	}, nil
}

// Aggregate folds the sub-scores of one category into its weighted
// contribution: weight * blend * sum / max_sum. The result is not rounded.
func Aggregate(cat model.CategorySpec, scores []model.AttributeScore) model.CategoryScore {
	sum := decimal.Zero
	for _, s := range scores {
		sum = sum.Add(s.SubScore)
	}
	contribution := decimal.Zero
	if cat.MaxSum.IsPositive() {
		contribution = sum.Mul(cat.Weight).Mul(cat.Blend).Div(cat.MaxSum)
	}
	return model.CategoryScore{
		Category:     cat.Name,
		SubScoreSum:  sum,
		MaxSum:       cat.MaxSum,
		Weight:       cat.Weight,
		Blend:        cat.Blend,
		Contribution: contribution,
	}
}

// Compose sums the category contributions and rounds half-to-even to two
// decimal places.
func Compose(categories []model.CategoryScore) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.Contribution)
	}
	return total.RoundBank(ScorePrecision)
}
