package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/queue"

	"github.com/stretchr/testify/mock"
)

type MockReminderQueue struct {
	mock.Mock
}

func NewMockReminderQueue(t *testing.T) *MockReminderQueue {
	m := &MockReminderQueue{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReminderQueue) Publish(ctx context.Context, msg *model.ReminderMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockReminderQueue) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
