package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ScoreRequest carries one farmer's raw attributes. An empty Scorecard
// selects the configured default.
type ScoreRequest struct {
	Scorecard  string                                `json:"scorecard,omitempty"`
	FarmerID   string                                `json:"farmer_id,omitempty"`
	Attributes map[string]valueobject.AttributeValue `json:"attributes"`
}

// BatchScoreRequest scores many records. Scorecard applies to records that do
// not name their own.
type BatchScoreRequest struct {
	Scorecard string         `json:"scorecard,omitempty"`
	Records   []ScoreRequest `json:"records"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// AttributeScoreResponse is the external representation of one attribute's
// normalized sub-score.
type AttributeScoreResponse struct {
	Attribute   string          `json:"attribute"`
	Category    string          `json:"category"`
	Raw         string          `json:"raw"`
	RuleValue   decimal.Decimal `json:"rule_value"`
	SubScore    decimal.Decimal `json:"sub_score"`
	MaxSubScore decimal.Decimal `json:"max_sub_score"`
	Fallback    string          `json:"fallback,omitempty"`
}

// CategoryScoreResponse is the external representation of a category's
// contribution to the final score.
type CategoryScoreResponse struct {
	Category     string          `json:"category"`
	SubScoreSum  decimal.Decimal `json:"sub_score_sum"`
	MaxSum       decimal.Decimal `json:"max_sum"`
	Weight       decimal.Decimal `json:"weight"`
	Blend        decimal.Decimal `json:"blend"`
	Contribution decimal.Decimal `json:"contribution"`
}

// ScoreResponse is the result of one credit assessment.
type ScoreResponse struct {
	AssessmentID string                   `json:"assessment_id"`
	Scorecard    string                   `json:"scorecard"`
	FarmerID     string                   `json:"farmer_id,omitempty"`
	Score        decimal.Decimal          `json:"score"`
	Tier         string                   `json:"tier"`
	TierLabel    string                   `json:"tier_label"`
	Grade        string                   `json:"grade"`
	Categories   []CategoryScoreResponse  `json:"categories"`
	Attributes   []AttributeScoreResponse `json:"attributes"`
	Warnings     []string                 `json:"warnings,omitempty"`
}

// BatchItemResponse holds either the result or the error for one batch row.
type BatchItemResponse struct {
	Index     int            `json:"index"`
	Result    *ScoreResponse `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	Attribute string         `json:"attribute,omitempty"`
}

// BatchScoreResponse lists per-row outcomes in request order.
type BatchScoreResponse struct {
	Results   []BatchItemResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// InputSummary describes a raw input a scorecard expects.
type InputSummary struct {
	Name string              `json:"name"`
	Kind string              `json:"kind"`
	Min  decimal.NullDecimal `json:"min"`
	Max  decimal.NullDecimal `json:"max"`
}

// CategorySummary describes one weighted category.
type CategorySummary struct {
	Name       string          `json:"name"`
	Weight     decimal.Decimal `json:"weight"`
	Blend      decimal.Decimal `json:"blend"`
	MaxSum     decimal.Decimal `json:"max_sum"`
	Attributes []string        `json:"attributes"`
}

// TierSummary describes one tier band.
type TierSummary struct {
	Tier  string          `json:"tier"`
	Label string          `json:"label"`
	Grade string          `json:"grade"`
	Upper decimal.Decimal `json:"upper"`
}

// ScorecardSummary is the display form of a scorecard.
type ScorecardSummary struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	MaxScore    decimal.Decimal   `json:"max_score"`
	Inputs      []InputSummary    `json:"inputs"`
	Categories  []CategorySummary `json:"categories"`
	Tiers       []TierSummary     `json:"tiers"`
}

// ListScorecardsResponse lists every loaded scorecard.
type ListScorecardsResponse struct {
	Default    string             `json:"default"`
	Scorecards []ScorecardSummary `json:"scorecards"`
}
