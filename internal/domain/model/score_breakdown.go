package model

import (
	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

// FallbackReason records why an attribute was scored with a fallback value.
type FallbackReason string

const (
	FallbackNone            FallbackReason = ""
	FallbackUnknownCategory FallbackReason = "unknown_category"
	FallbackDivisionByZero  FallbackReason = "division_by_zero"
)

// AttributeScore is the normalized result for one attribute.
type AttributeScore struct {
	Attribute   string
	Category    string
	Raw         string
	RuleValue   decimal.Decimal
	SubScore    decimal.Decimal
	MaxSubScore decimal.Decimal
	Fallback    FallbackReason
}

// Degraded reports whether a fallback value was used.
func (a AttributeScore) Degraded() bool { return a.Fallback != FallbackNone }

// CategoryScore is the weighted contribution of one category.
type CategoryScore struct {
	Category     string
	SubScoreSum  decimal.Decimal
	MaxSum       decimal.Decimal
	Weight       decimal.Decimal
	Blend        decimal.Decimal
	Contribution decimal.Decimal
}

// ScoreBreakdown is the full, explainable result of scoring one record.
type ScoreBreakdown struct {
	Scorecard  string
	Attributes []AttributeScore
	Categories []CategoryScore
	Total      decimal.Decimal
	Tier       valueobject.Tier
}

// Attribute finds the score of a named attribute.
func (b ScoreBreakdown) Attribute(name string) (AttributeScore, bool) {
	for _, a := range b.Attributes {
		if a.Attribute == name {
			return a, true
		}
	}
	return AttributeScore{}, false
}

// Category finds the contribution of a named category.
func (b ScoreBreakdown) Category(name string) (CategoryScore, bool) {
	for _, c := range b.Categories {
		if c.Category == name {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// Warnings returns the attributes that were scored with a fallback.
func (b ScoreBreakdown) Warnings() []AttributeScore {
	var out []AttributeScore
	for _, a := range b.Attributes {
		if a.Degraded() {
			out = append(out, a)
		}
	}
	return out
}
