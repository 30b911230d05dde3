package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockEventRepository struct {
	mock.Mock
}

func NewMockEventRepository(t *testing.T) *MockEventRepository {
	m := &MockEventRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventRepository) event(args mock.Arguments) (*model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id int) (*model.Event, error) {
	return m.event(m.Called(ctx, id))
}

func (m *MockEventRepository) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	return m.event(m.Called(ctx, id, params))
}

func (m *MockEventRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventRepository) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	return m.event(m.Called(ctx, tx, event))
}

func (m *MockEventRepository) FindByIDForShare(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	return m.event(m.Called(ctx, tx, id))
}
