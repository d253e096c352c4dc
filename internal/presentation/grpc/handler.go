package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/usecase"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
)

// ScoringHandler is the gRPC handler for scoring operations.
type ScoringHandler struct {
	UnimplementedScoringServiceServer
	score *usecase.ScoreFarmerUseCase
	batch *usecase.ScoreBatchUseCase
	list  *usecase.ListScorecardsUseCase
}

// NewScoringHandler creates a new handler with all use-case dependencies.
func NewScoringHandler(
	score *usecase.ScoreFarmerUseCase,
	batch *usecase.ScoreBatchUseCase,
	list *usecase.ListScorecardsUseCase,
) *ScoringHandler {
	return &ScoringHandler{score: score, batch: batch, list: list}
}

// Score scores a single farmer record.
func (h *ScoringHandler) Score(ctx context.Context, req *dto.ScoreRequest) (*dto.ScoreResponse, error) {
	resp, err := h.score.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// ScoreBatch scores many records; row failures are reported inline.
func (h *ScoringHandler) ScoreBatch(ctx context.Context, req *dto.BatchScoreRequest) (*dto.BatchScoreResponse, error) {
	resp, err := h.batch.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// ListScorecards describes the loaded scorecards.
func (h *ScoringHandler) ListScorecards(ctx context.Context, _ *ListScorecardsRequest) (*dto.ListScorecardsResponse, error) {
	resp, err := h.list.Execute(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// toStatus maps domain errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, model.ErrScorecardNotFound):
		return status.Error(codes.NotFound, err.Error())
	case model.IsRequestError(err), errors.Is(err, usecase.ErrEmptyBatch):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
