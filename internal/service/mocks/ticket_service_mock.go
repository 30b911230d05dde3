package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTicketService struct {
	mock.Mock
}

func NewMockTicketService(t *testing.T) *MockTicketService {
	m := &MockTicketService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketService) ticket(args mock.Arguments) (*model.Ticket, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *MockTicketService) tickets(args mock.Arguments) ([]*model.Ticket, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *MockTicketService) Purchase(ctx context.Context, p *authz.Principal, req model.PurchaseRequest) ([]*model.Ticket, error) {
	return m.tickets(m.Called(ctx, p, req))
}

func (m *MockTicketService) List(ctx context.Context, p *authz.Principal) ([]*model.Ticket, error) {
	return m.tickets(m.Called(ctx, p))
}

func (m *MockTicketService) Get(ctx context.Context, p *authz.Principal, id int) (*model.Ticket, error) {
	return m.ticket(m.Called(ctx, p, id))
}

func (m *MockTicketService) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateTicketRequest) (*model.Ticket, error) {
	return m.ticket(m.Called(ctx, p, id, req))
}

func (m *MockTicketService) Delete(ctx context.Context, p *authz.Principal, id int) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockTicketService) CheckIn(ctx context.Context, p *authz.Principal, id int) (*model.Ticket, error) {
	return m.ticket(m.Called(ctx, p, id))
}
