package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTicketTypeRepository struct {
	mock.Mock
}

func NewMockTicketTypeRepository(t *testing.T) *MockTicketTypeRepository {
	m := &MockTicketTypeRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketTypeRepository) ticketType(args mock.Arguments) (*model.TicketType, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *MockTicketTypeRepository) Create(ctx context.Context, name string) (*model.TicketType, error) {
	return m.ticketType(m.Called(ctx, name))
}

func (m *MockTicketTypeRepository) List(ctx context.Context) ([]*model.TicketType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketType), args.Error(1)
}

func (m *MockTicketTypeRepository) FindByID(ctx context.Context, id int) (*model.TicketType, error) {
	return m.ticketType(m.Called(ctx, id))
}

func (m *MockTicketTypeRepository) Update(ctx context.Context, id int, params model.UpdateTicketTypeParams) (*model.TicketType, error) {
	return m.ticketType(m.Called(ctx, id, params))
}

func (m *MockTicketTypeRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
