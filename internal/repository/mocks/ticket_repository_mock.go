package mocks

import (
	"context"
	"testing"
	"time"

	"go-gin-event-ticketing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepository struct {
	mock.Mock
}

func NewMockTicketRepository(t *testing.T) *MockTicketRepository {
	m := &MockTicketRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketRepository) ticket(args mock.Arguments) (*model.Ticket, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, scope model.TicketScope) ([]*model.Ticket, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

func (m *MockTicketRepository) Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error) {
	return m.ticket(m.Called(ctx, id, params))
}

func (m *MockTicketRepository) CheckIn(ctx context.Context, id int) (*model.Ticket, error) {
	return m.ticket(m.Called(ctx, id))
}

func (m *MockTicketRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTicketRepository) ListReminderTargets(ctx context.Context, from, to time.Time) ([]model.ReminderTarget, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReminderTarget), args.Error(1)
}

func (m *MockTicketRepository) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	return m.ticket(m.Called(ctx, tx, ticket))
}
