package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTicketTypeService struct {
	mock.Mock
}

func NewMockTicketTypeService(t *testing.T) *MockTicketTypeService {
	m := &MockTicketTypeService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTicketTypeService) ticketType(args mock.Arguments) (*model.TicketType, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *MockTicketTypeService) List(ctx context.Context, p *authz.Principal) ([]*model.TicketType, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketType), args.Error(1)
}

func (m *MockTicketTypeService) Get(ctx context.Context, p *authz.Principal, id int) (*model.TicketType, error) {
	return m.ticketType(m.Called(ctx, p, id))
}

func (m *MockTicketTypeService) Create(ctx context.Context, p *authz.Principal, req model.CreateTicketTypeRequest) (*model.TicketType, error) {
	return m.ticketType(m.Called(ctx, p, req))
}

func (m *MockTicketTypeService) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateTicketTypeRequest) (*model.TicketType, error) {
	return m.ticketType(m.Called(ctx, p, id, req))
}

func (m *MockTicketTypeService) Delete(ctx context.Context, p *authz.Principal, id int) error {
	return m.Called(ctx, p, id).Error(0)
}
