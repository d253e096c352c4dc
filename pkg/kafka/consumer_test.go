package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrianGithinji-BMG/Credit--Scoring/pkg/observability"
)

// fakeReader serves queued messages, then blocks until ctx ends.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []int64
	fetchErr  error
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if r.fetchErr != nil {
		err := r.fetchErr
		r.mu.Unlock()
		return kafkago.Message{}, err
	}
	if len(r.queue) > 0 {
		m := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func runConsumer(t *testing.T, c *Consumer, until func() bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	require.Eventually(t, until, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestConsumer_HandlesAndCommits(t *testing.T) {
	reader := &fakeReader{queue: []kafkago.Message{
		{Offset: 1, Key: []byte("a"), Headers: []kafkago.Header{{Key: "correlation_id", Value: []byte("c-1")}}},
		{Offset: 2, Key: []byte("b")},
	}}
	var (
		mu  sync.Mutex
		got []Message
	)
	c := newConsumer(reader, Config{}, "requests", func(_ context.Context, msg Message) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, msg)
		return nil
	}, observability.NopLogger())

	runConsumer(t, c, func() bool { return len(reader.commits()) == 2 })

	assert.Equal(t, []int64{1, 2}, reader.commits())
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "c-1", got[0].Headers["correlation_id"])
}

func TestConsumer_RetriesThenSucceeds(t *testing.T) {
	reader := &fakeReader{queue: []kafkago.Message{{Offset: 7}}}
	var (
		mu    sync.Mutex
		calls int
	)
	c := newConsumer(reader, Config{MaxAttempts: 3, RetryBackoff: time.Millisecond}, "requests", func(context.Context, Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls < 3 {
			return errors.New("broker unavailable")
		}
		return nil
	}, observability.NopLogger())

	runConsumer(t, c, func() bool { return len(reader.commits()) == 1 })
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, calls)
}

func TestConsumer_GivesUpAndCommits(t *testing.T) {
	reader := &fakeReader{queue: []kafkago.Message{{Offset: 3}, {Offset: 4}}}
	var (
		mu    sync.Mutex
		calls int
	)
	c := newConsumer(reader, Config{MaxAttempts: 2, RetryBackoff: time.Millisecond}, "requests", func(_ context.Context, msg Message) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("always fails")
	}, observability.NopLogger())

	runConsumer(t, c, func() bool { return len(reader.commits()) == 2 })
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 4, calls)
}

func TestConsumer_FetchError(t *testing.T) {
	reader := &fakeReader{fetchErr: errors.New("group coordinator not available")}
	c := newConsumer(reader, Config{}, "requests", func(context.Context, Message) error { return nil }, observability.NopLogger())

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching message")
}

func TestNewConsumer_Defaults(t *testing.T) {
	c, err := NewConsumer(Config{Brokers: []string{"localhost:9092"}, ConsumerGroup: "farmscore"}, "requests", nil, observability.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, defaultMaxAttempts, c.maxAttempts)
	assert.Equal(t, defaultRetryBackoff, c.backoff)
	assert.Equal(t, "farmscore", c.group)
}
