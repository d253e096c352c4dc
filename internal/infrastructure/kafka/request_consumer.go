package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	pkgkafka "github.com/BrianGithinji-BMG/Credit--Scoring/pkg/kafka"
)

const correlationHeader = "correlation_id"

// Scorer scores a single request.
type Scorer interface {
	Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error)
}

// ScoreResult is the payload written to the result topic for every consumed
// request. Exactly one of Result or Error is set.
type ScoreResult struct {
	RequestKey string             `json:"request_key,omitempty"`
	Result     *dto.ScoreResponse `json:"result,omitempty"`
	Error      string             `json:"error,omitempty"`
	Attribute  string             `json:"attribute,omitempty"`
}

// ScoreRequestHandler consumes score requests and publishes their results.
// Requests that can never succeed (malformed JSON, invalid attributes,
// unknown scorecard) produce an error result and are committed; only a
// failure to publish the result leaves the message uncommitted.
type ScoreRequestHandler struct {
	scorer      Scorer
	producer    Producer
	resultTopic string
	logger      *slog.Logger
}

// NewScoreRequestHandler wires dependencies.
func NewScoreRequestHandler(scorer Scorer, producer Producer, resultTopic string, logger *slog.Logger) *ScoreRequestHandler {
	return &ScoreRequestHandler{
		scorer:      scorer,
		producer:    producer,
		resultTopic: resultTopic,
		logger:      logger,
	}
}

// Handle implements pkg/kafka.Handler.
func (h *ScoreRequestHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	result := ScoreResult{RequestKey: string(msg.Key)}

	var req dto.ScoreRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		result.Error = fmt.Sprintf("decode request: %v", err)
	} else {
		resp, err := h.scorer.Execute(ctx, req)
		switch {
		case err == nil:
			result.Result = &resp
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			result.Error = err.Error()
			var attrErr *model.AttributeError
			if errors.As(err, &attrErr) {
				result.Attribute = attrErr.Attribute
			}
		}
	}

	if result.Error != "" {
		h.logger.WarnContext(ctx, "score request failed",
			"request_key", result.RequestKey,
			"error", result.Error,
		)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	out := pkgkafka.Message{
		Key:     msg.Key,
		Value:   payload,
		Headers: map[string]string{"content_type": "application/json"},
	}
	if id, ok := msg.Headers[correlationHeader]; ok {
		out.Headers[correlationHeader] = id
	}

	if err := h.producer.Publish(ctx, h.resultTopic, out); err != nil {
		return fmt.Errorf("publish result to %s: %w", h.resultTopic, err)
	}
	return nil
}
