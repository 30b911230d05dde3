package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockEventTicketTypeRepository struct {
	mock.Mock
}

func NewMockEventTicketTypeRepository(t *testing.T) *MockEventTicketTypeRepository {
	m := &MockEventTicketTypeRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventTicketTypeRepository) ListByEventID(ctx context.Context, eventID int) ([]*model.EventTicketType, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventTicketType), args.Error(1)
}

func (m *MockEventTicketTypeRepository) ListByEventIDs(ctx context.Context, eventIDs []int) (map[int][]*model.EventTicketType, error) {
	args := m.Called(ctx, eventIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int][]*model.EventTicketType), args.Error(1)
}

func (m *MockEventTicketTypeRepository) Deactivate(ctx context.Context, eventID, id int) error {
	return m.Called(ctx, eventID, id).Error(0)
}

func (m *MockEventTicketTypeRepository) Create(ctx context.Context, tx pgx.Tx, ett *model.EventTicketType) (*model.EventTicketType, error) {
	args := m.Called(ctx, tx, ett)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventTicketType), args.Error(1)
}

func (m *MockEventTicketTypeRepository) CountByEventID(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	args := m.Called(ctx, tx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockEventTicketTypeRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, eventID, ticketTypeID int) (*model.EventTicketType, error) {
	args := m.Called(ctx, tx, eventID, ticketTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventTicketType), args.Error(1)
}

func (m *MockEventTicketTypeRepository) DecrementQuantity(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	return m.Called(ctx, tx, id, quantity).Error(0)
}
