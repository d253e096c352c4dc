package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/event"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/port"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/service"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

const tracerName = "github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/usecase"

// ScoreFarmerUseCase scores one farmer record against a named scorecard and
// announces the outcome.
type ScoreFarmerUseCase struct {
	registry   port.ScorecardRegistry
	normalizer *service.Normalizer
	publisher  port.EventPublisher
	recorder   port.AssessmentRecorder
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewScoreFarmerUseCase wires dependencies. recorder may be nil.
func NewScoreFarmerUseCase(
	registry port.ScorecardRegistry,
	normalizer *service.Normalizer,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *ScoreFarmerUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreFarmerUseCase{
		registry:   registry,
		normalizer: normalizer,
		publisher:  publisher,
		recorder:   recorder,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

// Execute scores the request. Publishing failures are logged and never fail
// the assessment.
func (uc *ScoreFarmerUseCase) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	name := req.Scorecard
	if name == "" {
		name = uc.registry.Default()
	}

	ctx, span := uc.tracer.Start(ctx, "ScoreFarmer", trace.WithAttributes(
		attribute.String("farmscore.scorecard", name),
	))
	defer span.End()

	// 1. Resolve the scorecard.
	card, err := uc.registry.Get(name)
	if err != nil {
		span.SetStatus(codes.Error, "scorecard lookup failed")
		return dto.ScoreResponse{}, fmt.Errorf("load scorecard: %w", err)
	}
	engine, err := service.NewScoringEngine(card, uc.normalizer)
	if err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("build engine: %w", err)
	}

	// 2. Score the record.
	assessmentID := uuid.NewString()
	breakdown, err := engine.Score(ctx, valueobject.NewInputRecord(req.Attributes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		if model.IsRequestError(err) {
			uc.reject(ctx, assessmentID, name, req.FarmerID, err)
		}
		return dto.ScoreResponse{}, fmt.Errorf("score record: %w", err)
	}

	// 3. Record and announce.
	if uc.recorder != nil {
		uc.recorder.RecordAssessment(ctx, breakdown)
	}
	completed := event.NewCreditAssessmentCompleted(assessmentID, req.FarmerID, breakdown)
	if err := uc.publisher.Publish(ctx, completed); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish assessment event",
			"assessment_id", assessmentID,
			"error", err,
		)
	}

	span.SetAttributes(
		attribute.String("farmscore.assessment_id", assessmentID),
		attribute.String("farmscore.tier", breakdown.Tier.String()),
		attribute.Float64("farmscore.score", breakdown.Total.InexactFloat64()),
	)
	return toScoreResponse(assessmentID, req.FarmerID, breakdown), nil
}

func (uc *ScoreFarmerUseCase) reject(ctx context.Context, assessmentID, scorecard, farmerID string, cause error) {
	var attrErr *model.AttributeError
	attr := ""
	reason := cause.Error()
	if errors.As(cause, &attrErr) {
		attr = attrErr.Attribute
		reason = attrErr.Err.Error()
	}
	if uc.recorder != nil {
		uc.recorder.RecordRejection(ctx, scorecard, reason)
	}
	rejected := event.NewCreditAssessmentRejected(assessmentID, scorecard, farmerID, attr, reason)
	if err := uc.publisher.Publish(ctx, rejected); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish rejection event",
			"assessment_id", assessmentID,
			"error", err,
		)
	}
}

func toScoreResponse(assessmentID, farmerID string, b model.ScoreBreakdown) dto.ScoreResponse {
	resp := dto.ScoreResponse{
		AssessmentID: assessmentID,
		Scorecard:    b.Scorecard,
		FarmerID:     farmerID,
		Score:        b.Total,
		Tier:         b.Tier.String(),
		TierLabel:    b.Tier.Label(),
		Grade:        b.Tier.Grade(),
		Categories:   make([]dto.CategoryScoreResponse, 0, len(b.Categories)),
		Attributes:   make([]dto.AttributeScoreResponse, 0, len(b.Attributes)),
	}
	for _, c := range b.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryScoreResponse{
			Category:     c.Category,
			SubScoreSum:  c.SubScoreSum,
			MaxSum:       c.MaxSum,
			Weight:       c.Weight,
			Blend:        c.Blend,
			Contribution: c.Contribution,
		})
	}
	for _, a := range b.Attributes {
		resp.Attributes = append(resp.Attributes, dto.AttributeScoreResponse{
			Attribute:   a.Attribute,
			Category:    a.Category,
			Raw:         a.Raw,
			RuleValue:   a.RuleValue,
			SubScore:    a.SubScore,
			MaxSubScore: a.MaxSubScore,
			Fallback:    string(a.Fallback),
		})
		if a.Degraded() {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %s (%s)", a.Attribute, a.Fallback, a.Raw))
		}
	}
	return resp
}
