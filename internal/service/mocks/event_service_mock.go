package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

func NewMockEventService(t *testing.T) *MockEventService {
	m := &MockEventService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventService) event(args mock.Arguments) (*model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) List(ctx context.Context, p *authz.Principal, filter model.EventFilter) ([]*model.Event, error) {
	args := m.Called(ctx, p, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, p *authz.Principal, id int) (*model.Event, error) {
	return m.event(m.Called(ctx, p, id))
}

func (m *MockEventService) Create(ctx context.Context, p *authz.Principal, req model.CreateEventRequest) (*model.Event, error) {
	return m.event(m.Called(ctx, p, req))
}

func (m *MockEventService) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateEventRequest) (*model.Event, error) {
	return m.event(m.Called(ctx, p, id, req))
}

func (m *MockEventService) Delete(ctx context.Context, p *authz.Principal, id int) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockEventService) Availability(ctx context.Context, id int) ([]model.Availability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Availability), args.Error(1)
}

func (m *MockEventService) AddTicketType(ctx context.Context, p *authz.Principal, eventID int, req model.EventTicketRequest) (*model.EventTicketType, error) {
	args := m.Called(ctx, p, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventTicketType), args.Error(1)
}

func (m *MockEventService) DeactivateTicketType(ctx context.Context, p *authz.Principal, eventID, offerID int) error {
	return m.Called(ctx, p, eventID, offerID).Error(0)
}

func (m *MockEventService) AddPhoto(ctx context.Context, p *authz.Principal, eventID int, req model.AddPhotoRequest) (*model.Photo, error) {
	args := m.Called(ctx, p, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Photo), args.Error(1)
}
