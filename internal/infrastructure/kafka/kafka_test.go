package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/dto"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/event"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
	pkgkafka "github.com/BrianGithinji-BMG/Credit--Scoring/pkg/kafka"
)

// --- Mock implementations ---

type mockProducer struct {
	publishFunc func(ctx context.Context, topic string, messages ...pkgkafka.Message) error
	topics      []string
	messages    []pkgkafka.Message
}

func (m *mockProducer) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, messages...)
	}
	m.topics = append(m.topics, topic)
	m.messages = append(m.messages, messages...)
	return nil
}

type mockScorer struct {
	executeFunc func(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error)
}

func (m *mockScorer) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	return m.executeFunc(ctx, req)
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)) }

// --- Tests ---

func TestKafkaEventPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := NewKafkaEventPublisher(producer, "farmscore.assessments", discard())

	evt := event.NewCreditAssessmentRejected("asm-1", "farm-operations", "f-1", "farm_size", "missing attribute")
	require.NoError(t, pub.Publish(context.Background(), evt))

	require.Len(t, producer.messages, 1)
	msg := producer.messages[0]
	assert.Equal(t, []string{"farmscore.assessments"}, producer.topics)
	assert.Equal(t, "asm-1", string(msg.Key))
	assert.Equal(t, event.TypeAssessmentRejected, msg.Headers["event_type"])
	assert.Equal(t, evt.EventID(), msg.Headers["event_id"])
	assert.Equal(t, "CreditAssessment", msg.Headers["aggregate_type"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "farm_size", decoded["attribute"])
}

func TestKafkaEventPublisher_NoEvents(t *testing.T) {
	producer := &mockProducer{}
	pub := NewKafkaEventPublisher(producer, "t", discard())

	require.NoError(t, pub.Publish(context.Background()))
	assert.Empty(t, producer.topics)
}

func TestKafkaEventPublisher_ProducerError(t *testing.T) {
	producer := &mockProducer{
		publishFunc: func(context.Context, string, ...pkgkafka.Message) error { return errors.New("broker down") },
	}
	pub := NewKafkaEventPublisher(producer, "t", discard())

	err := pub.Publish(context.Background(), event.NewCreditAssessmentRejected("a", "s", "", "", "r"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestLogEventPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogEventPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, pub.Publish(context.Background(),
		event.NewCreditAssessmentRejected("asm-9", "s", "", "age", "missing attribute")))

	assert.Contains(t, buf.String(), `"event_type":"farmscore.assessment.rejected"`)
	assert.Contains(t, buf.String(), `"aggregate_id":"asm-9"`)
}

func TestScoreRequestHandler_Success(t *testing.T) {
	producer := &mockProducer{}
	scorer := &mockScorer{executeFunc: func(_ context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
		assert.Equal(t, "farm-operations", req.Scorecard)
		return dto.ScoreResponse{AssessmentID: "asm-1", Scorecard: req.Scorecard, Tier: "HIGH_RISK"}, nil
	}}
	h := NewScoreRequestHandler(scorer, producer, "farmscore.results", discard())

	err := h.Handle(context.Background(), pkgkafka.Message{
		Key:     []byte("req-1"),
		Value:   []byte(`{"scorecard":"farm-operations","attributes":{"income":10000}}`),
		Headers: map[string]string{"correlation_id": "c-1"},
	})
	require.NoError(t, err)

	require.Len(t, producer.messages, 1)
	out := producer.messages[0]
	assert.Equal(t, []string{"farmscore.results"}, producer.topics)
	assert.Equal(t, "req-1", string(out.Key))
	assert.Equal(t, "c-1", out.Headers["correlation_id"])

	var result ScoreResult
	require.NoError(t, json.Unmarshal(out.Value, &result))
	require.NotNil(t, result.Result)
	assert.Equal(t, "asm-1", result.Result.AssessmentID)
	assert.Empty(t, result.Error)
}

func TestScoreRequestHandler_ErrorResults(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		err       error
		attribute string
	}{
		{"malformed json", `{not json`, nil, ""},
		{"invalid attribute", `{}`, &model.AttributeError{Attribute: "age", Err: model.ErrMissingAttribute}, "age"},
		{"unknown scorecard", `{"scorecard":"x"}`, model.ErrScorecardNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := &mockProducer{}
			scorer := &mockScorer{executeFunc: func(context.Context, dto.ScoreRequest) (dto.ScoreResponse, error) {
				return dto.ScoreResponse{}, tt.err
			}}
			h := NewScoreRequestHandler(scorer, producer, "results", discard())

			require.NoError(t, h.Handle(context.Background(), pkgkafka.Message{Value: []byte(tt.value)}))

			require.Len(t, producer.messages, 1)
			var result ScoreResult
			require.NoError(t, json.Unmarshal(producer.messages[0].Value, &result))
			assert.Nil(t, result.Result)
			assert.NotEmpty(t, result.Error)
			assert.Equal(t, tt.attribute, result.Attribute)
		})
	}
}

func TestScoreRequestHandler_TransientErrors(t *testing.T) {
	t.Run("publish failure leaves message uncommitted", func(t *testing.T) {
		producer := &mockProducer{
			publishFunc: func(context.Context, string, ...pkgkafka.Message) error { return errors.New("broker down") },
		}
		scorer := &mockScorer{executeFunc: func(context.Context, dto.ScoreRequest) (dto.ScoreResponse, error) {
			return dto.ScoreResponse{}, nil
		}}
		h := NewScoreRequestHandler(scorer, producer, "results", discard())

		assert.Error(t, h.Handle(context.Background(), pkgkafka.Message{Value: []byte(`{}`)}))
	})

	t.Run("canceled context", func(t *testing.T) {
		producer := &mockProducer{}
		scorer := &mockScorer{executeFunc: func(context.Context, dto.ScoreRequest) (dto.ScoreResponse, error) {
			return dto.ScoreResponse{}, context.Canceled
		}}
		h := NewScoreRequestHandler(scorer, producer, "results", discard())

		assert.ErrorIs(t, h.Handle(context.Background(), pkgkafka.Message{Value: []byte(`{}`)}), context.Canceled)
		assert.Empty(t, producer.messages)
	})
}
