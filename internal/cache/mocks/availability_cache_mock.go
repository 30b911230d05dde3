package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAvailabilityCache struct {
	mock.Mock
}

func NewMockAvailabilityCache(t *testing.T) *MockAvailabilityCache {
	m := &MockAvailabilityCache{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAvailabilityCache) Get(ctx context.Context, eventID int) ([]model.Availability, bool, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.Availability), args.Bool(1), args.Error(2)
}

func (m *MockAvailabilityCache) Version(ctx context.Context, eventID int) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAvailabilityCache) Merge(ctx context.Context, eventID int, version int64, items []model.Availability) (bool, error) {
	args := m.Called(ctx, eventID, version, items)
	return args.Bool(0), args.Error(1)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context, eventID int) error {
	return m.Called(ctx, eventID).Error(0)
}
