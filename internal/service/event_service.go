package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/cache"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context, p *authz.Principal, filter model.EventFilter) ([]*model.Event, error)
	Get(ctx context.Context, p *authz.Principal, id int) (*model.Event, error)
	Create(ctx context.Context, p *authz.Principal, req model.CreateEventRequest) (*model.Event, error)
	Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, p *authz.Principal, id int) error
	Availability(ctx context.Context, id int) ([]model.Availability, error)
	AddTicketType(ctx context.Context, p *authz.Principal, eventID int, req model.EventTicketRequest) (*model.EventTicketType, error)
	DeactivateTicketType(ctx context.Context, p *authz.Principal, eventID, offerID int) error
	AddPhoto(ctx context.Context, p *authz.Principal, eventID int, req model.AddPhotoRequest) (*model.Photo, error)
}

type EventServiceImpl struct {
	tx           repository.Transactor
	repo         repository.EventRepository
	offers       repository.EventTicketTypeRepository
	photos       repository.PhotoRepository
	availability cache.AvailabilityCache
	now          func() time.Time
}

func NewEventService(
	tx repository.Transactor,
	repo repository.EventRepository,
	offers repository.EventTicketTypeRepository,
	photos repository.PhotoRepository,
	availability cache.AvailabilityCache,
) EventService {
	return &EventServiceImpl{
		tx:           tx,
		repo:         repo,
		offers:       offers,
		photos:       photos,
		availability: availability,
		now:          time.Now,
	}
}

func (s *EventServiceImpl) List(ctx context.Context, p *authz.Principal, filter model.EventFilter) ([]*model.Event, error) {
	if err := authz.Can(p, authz.EventList, authz.Resource{}); err != nil {
		return nil, err
	}
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, events...); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventServiceImpl) Get(ctx context.Context, p *authz.Principal, id int) (*model.Event, error) {
	event, err := s.findAuthorized(ctx, p, authz.EventRead, id)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, p *authz.Principal, req model.CreateEventRequest) (*model.Event, error) {
	if err := authz.Can(p, authz.EventCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	date, err := s.validDate(req.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := model.NormalizeTime(req.Time)
	if err != nil {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "%s", err.Error())
	}

	seen := make(map[int]bool, len(req.Tickets))
	for _, t := range req.Tickets {
		if seen[t.TicketType] {
			return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "ticket type %d listed twice", t.TicketType)
		}
		seen[t.TicketType] = true
	}

	var created *model.Event
	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		event, err := s.repo.Create(ctx, tx, &model.Event{
			Name:        strings.TrimSpace(req.Name),
			Date:        date,
			Time:        startTime,
			Location:    req.Location,
			Description: req.Description,
			CreatedBy:   p.AccountID,
		})
		if err != nil {
			return err
		}

		event.Photos = make([]*model.Photo, 0, len(req.Photos))
		for _, url := range req.Photos {
			photo, err := s.photos.Create(ctx, tx, event.ID, url)
			if err != nil {
				return err
			}
			event.Photos = append(event.Photos, photo)
		}

		event.Tickets = make([]*model.EventTicketType, 0, len(req.Tickets))
		for _, t := range req.Tickets {
			offer, err := s.offers.Create(ctx, tx, &model.EventTicketType{
				EventID:      event.ID,
				TicketTypeID: t.TicketType,
				Price:        t.Price,
				Quantity:     t.Quantity,
			})
			if err != nil {
				return err
			}
			event.Tickets = append(event.Tickets, offer)
		}

		created = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("event created",
		zap.Int("event_id", created.ID),
		zap.Int("created_by", created.CreatedBy),
		zap.Int("ticket_types", len(created.Tickets)))

	return created, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateEventRequest) (*model.Event, error) {
	if _, err := s.findAuthorized(ctx, p, authz.EventUpdate, id); err != nil {
		return nil, err
	}

	params := model.UpdateEventParams{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := s.validDate(*req.Date)
		if err != nil {
			return nil, err
		}
		params.Date = &date
	}
	if req.Time != nil {
		t, err := model.NormalizeTime(*req.Time)
		if err != nil {
			return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "%s", err.Error())
		}
		params.Time = &t
	}
	if params.IsEmpty() {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "no fields to update")
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, p *authz.Principal, id int) error {
	if _, err := s.findAuthorized(ctx, p, authz.EventDelete, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateAvailability(ctx, s.availability, id)
	return nil
}

// Availability is served from the cache when possible.
func (s *EventServiceImpl) Availability(ctx context.Context, id int) ([]model.Availability, error) {
	log := logger.WithComponent("service").With(zap.Int("event_id", id))

	items, ok, err := s.availability.Get(ctx, id)
	if err != nil {
		log.Warn("availability cache read failed", zap.Error(err))
	}
	if ok {
		return items, nil
	}

	version, verr := s.availability.Version(ctx, id)
	if verr != nil {
		log.Warn("availability version read failed", zap.Error(verr))
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, apperrors.ErrEventInactive
	}

	offers, err := s.offers.ListByEventID(ctx, id)
	if err != nil {
		return nil, err
	}
	items = availabilityOf(offers)

	if verr == nil {
		mergeAvailability(ctx, s.availability, id, version, items)
	}
	return items, nil
}

func (s *EventServiceImpl) AddTicketType(ctx context.Context, p *authz.Principal, eventID int, req model.EventTicketRequest) (*model.EventTicketType, error) {
	event, err := s.findAuthorized(ctx, p, authz.EventManageInventory, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, apperrors.ErrEventInactive
	}

	var created *model.EventTicketType
	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		offer, err := s.offers.Create(ctx, tx, &model.EventTicketType{
			EventID:      eventID,
			TicketTypeID: req.TicketType,
			Price:        req.Price,
			Quantity:     req.Quantity,
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				return apperrors.WithDetail(apperrors.ErrAlreadyExists, "ticket type %d is already offered for this event", req.TicketType)
			}
			return err
		}
		created = offer
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAvailability(ctx, s.availability, eventID)
	return created, nil
}

// DeactivateTicketType stops further sales; the remaining quantity is left as is.
func (s *EventServiceImpl) DeactivateTicketType(ctx context.Context, p *authz.Principal, eventID, offerID int) error {
	if _, err := s.findAuthorized(ctx, p, authz.EventManageInventory, eventID); err != nil {
		return err
	}
	if err := s.offers.Deactivate(ctx, eventID, offerID); err != nil {
		return err
	}
	invalidateAvailability(ctx, s.availability, eventID)
	return nil
}

func (s *EventServiceImpl) AddPhoto(ctx context.Context, p *authz.Principal, eventID int, req model.AddPhotoRequest) (*model.Photo, error) {
	if _, err := s.findAuthorized(ctx, p, authz.EventManageInventory, eventID); err != nil {
		return nil, err
	}

	var created *model.Photo
	err := s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		photo, err := s.photos.Create(ctx, tx, eventID, req.Image)
		if err != nil {
			return err
		}
		created = photo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// findAuthorized loads the event then checks action against its owner.
// Anonymous callers get 401 before the lookup so ids are not probed.
func (s *EventServiceImpl) findAuthorized(ctx context.Context, p *authz.Principal, action authz.Action, id int) (*model.Event, error) {
	if p == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(p, action, authz.Resource{EventOwnerID: event.CreatedBy}); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventServiceImpl) validDate(raw string) (time.Time, error) {
	date, err := model.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.WithDetail(apperrors.ErrInvalidInput, "%s", err.Error())
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return time.Time{}, apperrors.ErrEventInPast
	}
	return date, nil
}

func (s *EventServiceImpl) attach(ctx context.Context, events ...*model.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]int, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	photos, err := s.photos.ListByEventIDs(ctx, ids)
	if err != nil {
		return err
	}
	offers, err := s.offers.ListByEventIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, e := range events {
		e.Photos = photos[e.ID]
		if e.Photos == nil {
			e.Photos = make([]*model.Photo, 0)
		}
		e.Tickets = offers[e.ID]
		if e.Tickets == nil {
			e.Tickets = make([]*model.EventTicketType, 0)
		}
	}
	return nil
}
