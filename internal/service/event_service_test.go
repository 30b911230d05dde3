package service_test

import (
	"context"
	"errors"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	cacheMocks "go-gin-event-ticketing/internal/cache/mocks"
	"go-gin-event-ticketing/internal/model"
	repoMocks "go-gin-event-ticketing/internal/repository/mocks"
	"go-gin-event-ticketing/internal/service"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type eventMocks struct {
	tx           *repoMocks.MockTransactor
	events       *repoMocks.MockEventRepository
	offers       *repoMocks.MockEventTicketTypeRepository
	photos       *repoMocks.MockPhotoRepository
	availability *cacheMocks.MockAvailabilityCache
}

func setupEventService(t *testing.T) (service.EventService, eventMocks) {
	m := eventMocks{
		tx:           repoMocks.NewMockTransactor(t),
		events:       repoMocks.NewMockEventRepository(t),
		offers:       repoMocks.NewMockEventTicketTypeRepository(t),
		photos:       repoMocks.NewMockPhotoRepository(t),
		availability: cacheMocks.NewMockAvailabilityCache(t),
	}
	return service.NewEventService(m.tx, m.events, m.offers, m.photos, m.availability), m
}

func validCreateEventRequest() model.CreateEventRequest {
	return model.CreateEventRequest{
		Name:        " Launch ",
		Date:        "2099-06-01",
		Time:        "18:30",
		Location:    "Hall A",
		Description: "Product launch",
		Photos:      []string{"https://img.example.com/1.png"},
		Tickets: []model.EventTicketRequest{
			{TicketType: 1, Price: 50, Quantity: 3},
		},
	}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := setupEventService(t)

		m.tx.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		m.events.On("Create", ctx, mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.Name == "Launch" && e.Time == "18:30:00" && e.CreatedBy == organizer.AccountID &&
				e.Date.Format(model.DateLayout) == "2099-06-01"
		})).Return(&model.Event{ID: 9, Name: "Launch", CreatedBy: organizer.AccountID, IsActive: true}, nil).Once()
		m.photos.On("Create", ctx, mock.Anything, 9, "https://img.example.com/1.png").
			Return(&model.Photo{ID: 1, EventID: 9, URL: "https://img.example.com/1.png"}, nil).Once()
		m.offers.On("Create", ctx, mock.Anything, mock.MatchedBy(func(o *model.EventTicketType) bool {
			return o.EventID == 9 && o.TicketTypeID == 1 && o.Price == 50 && o.Quantity == 3
		})).Return(&model.EventTicketType{ID: 4, EventID: 9, TicketTypeID: 1, Quantity: 3, IsActive: true}, nil).Once()

		event, err := svc.Create(ctx, organizer, validCreateEventRequest())

		require.NoError(t, err)
		assert.Equal(t, 9, event.ID)
		assert.Len(t, event.Photos, 1)
		assert.Len(t, event.Tickets, 1)
	})

	t.Run("Failed - date in the past", func(t *testing.T) {
		svc, _ := setupEventService(t)
		req := validCreateEventRequest()
		req.Date = "2000-01-01"

		_, err := svc.Create(ctx, organizer, req)
		assert.ErrorIs(t, err, apperrors.ErrEventInPast)
	})

	t.Run("Failed - malformed time", func(t *testing.T) {
		svc, _ := setupEventService(t)
		req := validCreateEventRequest()
		req.Time = "half past six"

		_, err := svc.Create(ctx, organizer, req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - ticket type listed twice", func(t *testing.T) {
		svc, _ := setupEventService(t)
		req := validCreateEventRequest()
		req.Tickets = append(req.Tickets, model.EventTicketRequest{TicketType: 1, Price: 10, Quantity: 1})

		_, err := svc.Create(ctx, organizer, req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - attendee cannot create", func(t *testing.T) {
		svc, m := setupEventService(t)

		_, err := svc.Create(ctx, customer, validCreateEventRequest())

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.tx.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})
}

func TestEventService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner sees event with relations", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, CreatedBy: organizer.AccountID, IsActive: true}, nil).Once()
		m.photos.On("ListByEventIDs", ctx, []int{9}).Return(map[int][]*model.Photo{}, nil).Once()
		m.offers.On("ListByEventIDs", ctx, []int{9}).Return(map[int][]*model.EventTicketType{
			9: {{ID: 4, EventID: 9, TicketTypeID: 1, IsActive: true}},
		}, nil).Once()

		event, err := svc.Get(ctx, organizer, 9)

		require.NoError(t, err)
		assert.NotNil(t, event.Photos)
		assert.Empty(t, event.Photos)
		assert.Len(t, event.Tickets, 1)
	})

	t.Run("Failed - other organizer", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, CreatedBy: 55}, nil).Once()

		_, err := svc.Get(ctx, organizer, 9)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Failed - anonymous", func(t *testing.T) {
		svc, m := setupEventService(t)

		_, err := svc.Get(ctx, nil, 9)

		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		m.events.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	svc, m := setupEventService(t)

	filter := model.EventFilter{Search: "launch"}
	m.events.On("List", ctx, filter).Return([]*model.Event{{ID: 1}, {ID: 2}}, nil).Once()
	m.photos.On("ListByEventIDs", ctx, []int{1, 2}).Return(map[int][]*model.Photo{}, nil).Once()
	m.offers.On("ListByEventIDs", ctx, []int{1, 2}).Return(map[int][]*model.EventTicketType{}, nil).Once()

	events, err := svc.List(ctx, nil, filter)

	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success invalidates availability", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, CreatedBy: organizer.AccountID, IsActive: true}, nil).Once()
		m.events.On("Delete", ctx, 9).Return(nil).Once()
		m.availability.On("Invalidate", ctx, 9).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, organizer, 9))
	})

	t.Run("Admin may delete any event", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, CreatedBy: 55, IsActive: true}, nil).Once()
		m.events.On("Delete", ctx, 9).Return(nil).Once()
		m.availability.On("Invalidate", ctx, 9).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, admin, 9))
	})
}

func TestEventService_Availability(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache hit", func(t *testing.T) {
		svc, m := setupEventService(t)
		cached := []model.Availability{{TicketTypeID: 1, Remaining: 2}}
		m.availability.On("Get", ctx, 9).Return(cached, true, nil).Once()

		items, err := svc.Availability(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, cached, items)
		m.events.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Cache miss loads and stores", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.availability.On("Get", ctx, 9).Return(nil, false, nil).Once()
		m.availability.On("Version", ctx, 9).Return(int64(2), nil).Once()
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, IsActive: true}, nil).Once()
		m.offers.On("ListByEventID", ctx, 9).Return([]*model.EventTicketType{
			{TicketTypeID: 1, Quantity: 3, IsActive: true},
			{TicketTypeID: 2, Quantity: 8, IsActive: false},
		}, nil).Once()
		expected := []model.Availability{{TicketTypeID: 1, Remaining: 3}}
		m.availability.On("Merge", ctx, 9, int64(2), expected).Return(true, nil).Once()

		items, err := svc.Availability(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, expected, items)
	})

	t.Run("Snapshot is not stored without a version", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.availability.On("Get", ctx, 9).Return(nil, false, nil).Once()
		m.availability.On("Version", ctx, 9).Return(int64(0), errors.New("redis down")).Once()
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, IsActive: true}, nil).Once()
		m.offers.On("ListByEventID", ctx, 9).Return([]*model.EventTicketType{
			{TicketTypeID: 1, Quantity: 3, IsActive: true},
		}, nil).Once()

		items, err := svc.Availability(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, []model.Availability{{TicketTypeID: 1, Remaining: 3}}, items)
		m.availability.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - inactive event", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.availability.On("Get", ctx, 9).Return(nil, false, nil).Once()
		m.availability.On("Version", ctx, 9).Return(int64(0), nil).Once()
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, IsActive: false}, nil).Once()

		_, err := svc.Availability(ctx, 9)
		assert.ErrorIs(t, err, apperrors.ErrEventInactive)
	})
}

func TestEventService_AddTicketType(t *testing.T) {
	ctx := context.Background()
	req := model.EventTicketRequest{TicketType: 2, Price: 20, Quantity: 5}

	t.Run("Failed - already offered", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, CreatedBy: organizer.AccountID, IsActive: true}, nil).Once()
		m.tx.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		m.offers.On("Create", ctx, mock.Anything, mock.Anything).Return(nil, apperrors.ErrAlreadyExists).Once()

		_, err := svc.AddTicketType(ctx, organizer, 9, req)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
		m.availability.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("Failed - inactive event", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, CreatedBy: organizer.AccountID, IsActive: false}, nil).Once()

		_, err := svc.AddTicketType(ctx, organizer, 9, req)
		assert.ErrorIs(t, err, apperrors.ErrEventInactive)
	})

	t.Run("Failed - not the owner", func(t *testing.T) {
		svc, m := setupEventService(t)
		m.events.On("FindByID", ctx, 9).Return(&model.Event{ID: 9, CreatedBy: 55, IsActive: true}, nil).Once()

		other := &authz.Principal{AccountID: 4, Role: model.RoleOrganizer}
		_, err := svc.AddTicketType(ctx, other, 9, req)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
