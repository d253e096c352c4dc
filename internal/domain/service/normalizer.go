package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/port"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// Normalizer maps raw input values to bounded sub-scores using each
// attribute's lookup, ladder or linear rule.
type Normalizer struct {
	logger   *slog.Logger
	recorder port.DataQualityRecorder
}

// NewNormalizer creates a normalizer. recorder may be nil.
func NewNormalizer(logger *slog.Logger, recorder port.DataQualityRecorder) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger, recorder: recorder}
}

// Validate checks that every input the scorecard declares is present, has the
// declared kind and lies inside its declared domain. It runs before any
// attribute is normalized.
func (n *Normalizer) Validate(card model.Scorecard, record valueobject.InputRecord) error {
	for _, in := range card.Inputs() {
		v, ok := record.Get(in.Name)
		if !ok {
			return &model.AttributeError{Attribute: in.Name, Err: model.ErrMissingAttribute}
		}
		if v.Kind() != in.Kind {
			return &model.AttributeError{
				Attribute: in.Name,
				Err:       model.ErrInvalidValueType,
				Detail:    fmt.Sprintf("want %s, got %s %q", in.Kind, v.Kind(), v.String()),
			}
		}
		num, isNum := v.Number()
		if !isNum {
			continue
		}
		if in.Min.Valid && num.LessThan(in.Min.Decimal) {
			return &model.AttributeError{
				Attribute: in.Name,
				Err:       model.ErrValueOutOfRange,
				Detail:    fmt.Sprintf("%s below minimum %s", num, in.Min.Decimal),
			}
		}
		if in.Max.Valid && num.GreaterThan(in.Max.Decimal) {
			return &model.AttributeError{
				Attribute: in.Name,
				Err:       model.ErrValueOutOfRange,
				Detail:    fmt.Sprintf("%s above maximum %s", num, in.Max.Decimal),
			}
		}
	}
	return nil
}

// Normalize scores a single attribute. Unknown categories and zero
// denominators fall back to a sub-score of 0 and are reported as data-quality
// warnings rather than errors.
func (n *Normalizer) Normalize(ctx context.Context, card model.Scorecard, attr model.AttributeSpec, record valueobject.InputRecord) (model.AttributeScore, error) {
	result := model.AttributeScore{
		Attribute:   attr.Name,
		Category:    attr.Category,
		RuleValue:   decimal.Zero,
		SubScore:    decimal.Zero,
		MaxSubScore: attr.MaxSubScore(),
	}

	if attr.Ratio != nil {
		num, err := numericInput(record, attr.Ratio.Numerator)
		if err != nil {
			return model.AttributeScore{}, err
		}
		den, err := numericInput(record, attr.Ratio.Denominator)
		if err != nil {
			return model.AttributeScore{}, err
		}
		result.Raw = num.String() + "/" + den.String()
		if den.IsZero() {
			n.warn(ctx, card, attr, result.Raw, model.FallbackDivisionByZero)
			result.Fallback = model.FallbackDivisionByZero
			return result, nil
		}
		value, err := n.applyNumeric(attr, attr.Name, num.Div(den))
		if err != nil {
			return model.AttributeScore{}, err
		}
		result.RuleValue = value
		result.SubScore = value.Mul(attr.Weight)
		return result, nil
	}

	raw, ok := record.Get(attr.Input)
	if !ok {
		return model.AttributeScore{}, &model.AttributeError{Attribute: attr.Input, Err: model.ErrMissingAttribute}
	}
	result.Raw = raw.String()

	if lookup, ok := attr.Rule.Lookup(); ok {
		key, isText := raw.Text()
		if !isText {
			return model.AttributeScore{}, &model.AttributeError{Attribute: attr.Input, Err: model.ErrInvalidValueType}
		}
		value, known := lookup.Entry(key)
		if !known {
			n.warn(ctx, card, attr, key, model.FallbackUnknownCategory)
			result.Fallback = model.FallbackUnknownCategory
			value = lookup.Default()
		}
		result.RuleValue = value
		result.SubScore = value.Mul(attr.Weight)
		return result, nil
	}

	num, err := numericInput(record, attr.Input)
	if err != nil {
		return model.AttributeScore{}, err
	}
	value, err := n.applyNumeric(attr, attr.Input, num)
	if err != nil {
		return model.AttributeScore{}, err
	}
	result.RuleValue = value
	result.SubScore = value.Mul(attr.Weight)
	return result, nil
}

// applyNumeric evaluates a ladder or linear rule. source names the input (or
// derived ratio) reported in range errors.
func (n *Normalizer) applyNumeric(attr model.AttributeSpec, source string, v decimal.Decimal) (decimal.Decimal, error) {
	if ladder, ok := attr.Rule.Ladder(); ok {
		return evaluateLadder(ladder, v), nil
	}
	if linear, ok := attr.Rule.Linear(); ok {
		return evaluateLinear(source, linear, v)
	}
	return decimal.Zero, fmt.Errorf("attribute %q: rule %q does not accept numeric values", attr.Name, attr.Rule.Kind())
}

func evaluateLadder(r model.LadderRule, v decimal.Decimal) decimal.Decimal {
	for _, step := range r.Steps() {
		if step.Op.Holds(v, step.Bound) {
			return step.Score
		}
	}
	return r.Otherwise()
}

func evaluateLinear(name string, r model.LinearRule, v decimal.Decimal) (decimal.Decimal, error) {
	ref := r.Reference()
	if v.IsNegative() || v.GreaterThan(ref) {
		return decimal.Zero, &model.AttributeError{
			Attribute: name,
			Err:       model.ErrValueOutOfRange,
			Detail:    fmt.Sprintf("%s outside [0, %s]", v, ref),
		}
	}
	if r.Inverted() {
		v = ref.Sub(v)
	}
	return v.Mul(hundred).Div(ref), nil
}

func numericInput(record valueobject.InputRecord, name string) (decimal.Decimal, error) {
	raw, ok := record.Get(name)
	if !ok {
		return decimal.Zero, &model.AttributeError{Attribute: name, Err: model.ErrMissingAttribute}
	}
	num, ok := raw.Number()
	if !ok {
		return decimal.Zero, &model.AttributeError{Attribute: name, Err: model.ErrInvalidValueType}
	}
	return num, nil
}

func (n *Normalizer) warn(ctx context.Context, card model.Scorecard, attr model.AttributeSpec, raw string, reason model.FallbackReason) {
	n.logger.WarnContext(ctx, "attribute scored with fallback value",
		"scorecard", card.Name(),
		"attribute", attr.Name,
		"value", raw,
		"reason", string(reason),
	)
	if n.recorder != nil {
		n.recorder.RecordDataQualityWarning(ctx, card.Name(), attr.Name, reason)
	}
}
