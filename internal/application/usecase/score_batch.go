package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
)

// ErrEmptyBatch is returned when a batch request has no records.
var ErrEmptyBatch = errors.New("batch contains no records")

// DefaultBatchConcurrency bounds concurrent scoring when none is configured.
const DefaultBatchConcurrency = 8

// ScoreBatchUseCase scores many records concurrently. Row-level validation
// failures are reported per row; an unknown scorecard or a canceled context
// fails the whole batch.
type ScoreBatchUseCase struct {
	scorer      *ScoreFarmerUseCase
	concurrency int
}

// NewScoreBatchUseCase wires dependencies.
func NewScoreBatchUseCase(scorer *ScoreFarmerUseCase, concurrency int) *ScoreBatchUseCase {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	return &ScoreBatchUseCase{scorer: scorer, concurrency: concurrency}
}

// Execute scores every record. Results keep the request order.
func (uc *ScoreBatchUseCase) Execute(ctx context.Context, req dto.BatchScoreRequest) (dto.BatchScoreResponse, error) {
	if len(req.Records) == 0 {
		return dto.BatchScoreResponse{}, ErrEmptyBatch
	}

	results := make([]dto.BatchItemResponse, len(req.Records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, rec := range req.Records {
		i, rec := i, rec
		if rec.Scorecard == "" {
			rec.Scorecard = req.Scorecard
		}
		g.Go(func() error {
			resp, err := uc.scorer.Execute(gctx, rec)
			if err != nil {
				if errors.Is(err, model.ErrScorecardNotFound) ||
					errors.Is(err, context.Canceled) ||
					errors.Is(err, context.DeadlineExceeded) {
					return fmt.Errorf("record %d: %w", i, err)
				}
				results[i] = failedItem(i, err)
				return nil
			}
			results[i] = dto.BatchItemResponse{Index: i, Result: &resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.BatchScoreResponse{}, err
	}

	out := dto.BatchScoreResponse{Results: results}
	for _, r := range results {
		if r.Result != nil {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	return out, nil
}

func failedItem(i int, err error) dto.BatchItemResponse {
	item := dto.BatchItemResponse{Index: i, Error: err.Error()}
	var attrErr *model.AttributeError
	if errors.As(err, &attrErr) {
		item.Attribute = attrErr.Attribute
	}
	return item
}
