package port

import (
	"context"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/event"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Scorecard registry port
// ---------------------------------------------------------------------------

// ScorecardRegistry serves the validated scorecards loaded at startup.
type ScorecardRegistry interface {
	Get(name string) (model.Scorecard, error)
	Names() []string
	Default() string
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Telemetry ports
// ---------------------------------------------------------------------------

// DataQualityRecorder counts attributes scored with a fallback value.
type DataQualityRecorder interface {
	RecordDataQualityWarning(ctx context.Context, scorecard, attribute string, reason model.FallbackReason)
}

// AssessmentRecorder counts completed and rejected assessments.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, b model.ScoreBreakdown)
	RecordRejection(ctx context.Context, scorecard, reason string)
}
