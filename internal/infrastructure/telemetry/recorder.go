// Package telemetry records scoring metrics through the OpenTelemetry API.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
)

const meterName = "github.com/BrianGithinji-BMG/Credit--Scoring"

// Recorder implements port.AssessmentRecorder and port.DataQualityRecorder.
type Recorder struct {
	assessments metric.Int64Counter
	rejections  metric.Int64Counter
	warnings    metric.Int64Counter
	scores      metric.Float64Histogram
}

// NewRecorder creates the instruments on a meter from provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	meter := provider.Meter(meterName)

	assessments, err := meter.Int64Counter("farmscore_assessments",
		metric.WithDescription("Completed credit assessments by scorecard and tier."))
	if err != nil {
		return nil, fmt.Errorf("create assessments counter: %w", err)
	}
	rejections, err := meter.Int64Counter("farmscore_rejections",
		metric.WithDescription("Assessment requests rejected during input validation."))
	if err != nil {
		return nil, fmt.Errorf("create rejections counter: %w", err)
	}
	warnings, err := meter.Int64Counter("farmscore_data_quality_warnings",
		metric.WithDescription("Attributes scored with a fallback value."))
	if err != nil {
		return nil, fmt.Errorf("create warnings counter: %w", err)
	}
	scores, err := meter.Float64Histogram("farmscore_score",
		metric.WithDescription("Distribution of final scores."),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	return &Recorder{
		assessments: assessments,
		rejections:  rejections,
		warnings:    warnings,
		scores:      scores,
	}, nil
}

func (r *Recorder) RecordAssessment(ctx context.Context, b model.ScoreBreakdown) {
	attrs := metric.WithAttributes(
		attribute.String("scorecard", b.Scorecard),
		attribute.String("tier", b.Tier.String()),
	)
	r.assessments.Add(ctx, 1, attrs)
	r.scores.Record(ctx, b.Total.InexactFloat64(), metric.WithAttributes(attribute.String("scorecard", b.Scorecard)))
}

func (r *Recorder) RecordRejection(ctx context.Context, scorecard, reason string) {
	r.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scorecard", scorecard),
		attribute.String("reason", reason),
	))
}

func (r *Recorder) RecordDataQualityWarning(ctx context.Context, scorecard, attr string, reason model.FallbackReason) {
	r.warnings.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scorecard", scorecard),
		attribute.String("attribute", attr),
		attribute.String("kind", string(reason)),
	))
}
