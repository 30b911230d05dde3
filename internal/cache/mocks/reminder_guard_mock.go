package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockReminderGuard struct {
	mock.Mock
}

func NewMockReminderGuard(t *testing.T) *MockReminderGuard {
	m := &MockReminderGuard{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReminderGuard) Claim(ctx context.Context, day time.Time, eventID, customerID int) (bool, error) {
	args := m.Called(ctx, day, eventID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderGuard) Release(ctx context.Context, day time.Time, eventID, customerID int) error {
	return m.Called(ctx, day, eventID, customerID).Error(0)
}
