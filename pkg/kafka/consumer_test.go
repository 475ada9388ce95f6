package kafka

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubReader serves queued messages and records commits together with the
// number of handler attempts seen at commit time.
type stubReader struct {
	msgs     chan kafkago.Message
	attempts *atomic.Int32

	mu        sync.Mutex
	committed []int64
	attemptAt []int32
}

func newStubReader(attempts *atomic.Int32, msgs ...kafkago.Message) *stubReader {
	r := &stubReader{msgs: make(chan kafkago.Message, len(msgs)), attempts: attempts}
	for _, m := range msgs {
		r.msgs <- m
	}
	return r
}

func (r *stubReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	select {
	case m := <-r.msgs:
		return m, nil
	case <-ctx.Done():
		return kafkago.Message{}, ctx.Err()
	}
}

func (r *stubReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
		r.attemptAt = append(r.attemptAt, r.attempts.Load())
	}
	return nil
}

func (r *stubReader) Close() error { return nil }

func (r *stubReader) commits() ([]int64, []int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...), append([]int32(nil), r.attemptAt...)
}

func newTestConsumer(r messageReader) *Consumer {
	return &Consumer{
		reader:  r,
		backOff: func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) },
		logger:  zap.NewNop(),
	}
}

func runConsumer(ctx context.Context, c *Consumer, h MessageHandler) <-chan error {
	done := make(chan error, 1)
	go func() { done <- c.Consume(ctx, h) }()
	return done
}

func TestConsume_RetriesTransientFailureThenCommits(t *testing.T) {
	var attempts atomic.Int32
	reader := newStubReader(&attempts, kafkago.Message{Offset: 7})
	c := newTestConsumer(reader)

	handler := func(context.Context, kafkago.Message) error {
		if attempts.Add(1) < 3 {
			return errors.New("connection refused")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runConsumer(ctx, c, handler)

	require.Eventually(t, func() bool {
		committed, _ := reader.commits()
		return len(committed) == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	committed, attemptAt := reader.commits()
	assert.Equal(t, []int64{7}, committed)
	assert.Equal(t, []int32{3}, attemptAt, "commit must follow the successful attempt")
}

func TestConsume_PermanentFailureIsCommittedWithoutRetry(t *testing.T) {
	var attempts atomic.Int32
	reader := newStubReader(&attempts, kafkago.Message{Offset: 1}, kafkago.Message{Offset: 2})
	c := newTestConsumer(reader)

	handler := func(_ context.Context, msg kafkago.Message) error {
		attempts.Add(1)
		if msg.Offset == 1 {
			return Permanent(errors.New("undecodable payload"))
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runConsumer(ctx, c, handler)

	require.Eventually(t, func() bool {
		committed, _ := reader.commits()
		return len(committed) == 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done

	committed, attemptAt := reader.commits()
	assert.Equal(t, []int64{1, 2}, committed)
	assert.Equal(t, []int32{1, 2}, attemptAt)
}

func TestConsume_CancelDuringRetryLeavesMessageUncommitted(t *testing.T) {
	var attempts atomic.Int32
	reader := newStubReader(&attempts, kafkago.Message{Offset: 3})
	c := newTestConsumer(reader)

	handler := func(context.Context, kafkago.Message) error {
		attempts.Add(1)
		return errors.New("database is starting up")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runConsumer(ctx, c, handler)

	require.Eventually(t, func() bool { return attempts.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	committed, _ := reader.commits()
	assert.Empty(t, committed)
}
