package queue

import (
	"context"
	"testing"
	"time"

	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReminderQueue_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	q := NewMemoryReminderQueue(4, &MemoryQueueConfig{RetryDelay: 10 * time.Millisecond})
	require.NoError(t, q.Publish(ctx, &model.ReminderMessage{EventID: 1, CustomerID: 2, Day: "2026-10-14"}))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		assert.Equal(t, 1, d.Data.EventID)
		assert.Equal(t, 2, d.Data.CustomerID)
		d.Ack()
	case <-ctx.Done():
		t.Fatal("no delivery")
	}
}

func TestMemoryReminderQueue_NackRequeue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	q := NewMemoryReminderQueue(4, &MemoryQueueConfig{RetryDelay: 10 * time.Millisecond})
	require.NoError(t, q.Publish(ctx, &model.ReminderMessage{EventID: 7}))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	first := <-deliveries
	first.Nack(true)

	select {
	case again := <-deliveries:
		assert.Equal(t, 7, again.Data.EventID)
	case <-ctx.Done():
		t.Fatal("nacked message was not redelivered")
	}
}

func TestMemoryReminderQueue_RetryBackoffAndCap(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var discarded []*model.ReminderMessage
	done := make(chan struct{})
	q := NewMemoryReminderQueue(4, &MemoryQueueConfig{
		RetryDelay:    30 * time.Millisecond,
		MaxRetryCount: 2,
		OnDiscard: func(msg *model.ReminderMessage) {
			discarded = append(discarded, msg)
			close(done)
		},
	})
	require.NoError(t, q.Publish(ctx, &model.ReminderMessage{EventID: 8}))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	first := <-deliveries
	nackedAt := time.Now()
	first.Nack(true)

	second := <-deliveries
	assert.GreaterOrEqual(t, time.Since(nackedAt), 30*time.Millisecond)
	second.Nack(true)

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("message past its retry cap was not discarded")
	}
	require.Len(t, discarded, 1)
	assert.Equal(t, 8, discarded[0].EventID)

	select {
	case d := <-deliveries:
		t.Fatalf("discarded message was delivered again: %+v", d.Data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemoryReminderQueue_NackWithoutRequeueDrops(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	q := NewMemoryReminderQueue(4, &MemoryQueueConfig{RetryDelay: 5 * time.Millisecond})
	require.NoError(t, q.Publish(ctx, &model.ReminderMessage{EventID: 9}))

	deliveries, err := q.Subscribe(ctx)
	require.NoError(t, err)

	(<-deliveries).Nack(false)

	select {
	case d := <-deliveries:
		t.Fatalf("dropped message was delivered again: %+v", d.Data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryReminderQueue_PublishHonoursContext(t *testing.T) {
	q := NewMemoryReminderQueue(0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.Publish(ctx, &model.ReminderMessage{})
	assert.ErrorIs(t, err, context.Canceled)
}
