package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockReminderService struct {
	mock.Mock
}

func NewMockReminderService(t *testing.T) *MockReminderService {
	m := &MockReminderService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReminderService) Trigger(ctx context.Context, p *authz.Principal) (*model.ReminderRunResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReminderRunResult), args.Error(1)
}

func (m *MockReminderService) Run(ctx context.Context) (*model.ReminderRunResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReminderRunResult), args.Error(1)
}

func (m *MockReminderService) Deliver(ctx context.Context, msg *model.ReminderMessage) error {
	return m.Called(ctx, msg).Error(0)
}
