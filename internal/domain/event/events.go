package event

import (
	"github.com/shopspring/decimal"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeAssessmentCompleted = "farmscore.assessment.completed"
	TypeAssessmentRejected  = "farmscore.assessment.rejected"

	aggregateType = "CreditAssessment"
)

// ---------------------------------------------------------------------------
// Credit assessment events
// ---------------------------------------------------------------------------

// CategoryContribution is the per-category slice of a completed assessment.
type CategoryContribution struct {
	Category     string          `json:"category"`
	Contribution decimal.Decimal `json:"contribution"`
}

// CreditAssessmentCompleted is raised when a farmer record has been scored.
type CreditAssessmentCompleted struct {
	events.BaseEvent
	Scorecard  string                 `json:"scorecard"`
	FarmerID   string                 `json:"farmer_id,omitempty"`
	Score      decimal.Decimal        `json:"score"`
	Tier       string                 `json:"tier"`
	TierLabel  string                 `json:"tier_label"`
	Categories []CategoryContribution `json:"categories"`
	Warnings   []string               `json:"warnings,omitempty"`
}

func NewCreditAssessmentCompleted(assessmentID, farmerID string, b model.ScoreBreakdown) CreditAssessmentCompleted {
	cats := make([]CategoryContribution, 0, len(b.Categories))
	for _, c := range b.Categories {
		cats = append(cats, CategoryContribution{Category: c.Category, Contribution: c.Contribution})
	}
	var warnings []string
	for _, w := range b.Warnings() {
		warnings = append(warnings, w.Attribute+":"+string(w.Fallback))
	}
	return CreditAssessmentCompleted{
		BaseEvent:  events.NewBaseEvent(TypeAssessmentCompleted, assessmentID, aggregateType),
		Scorecard:  b.Scorecard,
		FarmerID:   farmerID,
		Score:      b.Total,
		Tier:       b.Tier.String(),
		TierLabel:  b.Tier.Label(),
		Categories: cats,
		Warnings:   warnings,
	}
}

// CreditAssessmentRejected is raised when a record fails input validation.
type CreditAssessmentRejected struct {
	events.BaseEvent
	Scorecard string `json:"scorecard"`
	FarmerID  string `json:"farmer_id,omitempty"`
	Attribute string `json:"attribute,omitempty"`
	Reason    string `json:"reason"`
}

func NewCreditAssessmentRejected(assessmentID, scorecard, farmerID, attribute, reason string) CreditAssessmentRejected {
	return CreditAssessmentRejected{
		BaseEvent: events.NewBaseEvent(TypeAssessmentRejected, assessmentID, aggregateType),
		Scorecard: scorecard,
		FarmerID:  farmerID,
		Attribute: attribute,
		Reason:    reason,
	}
}
