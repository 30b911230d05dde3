package service

import (
	"context"
	"sort"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/cache"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"
	"go-gin-event-ticketing/pkg/telemetry"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type TicketService interface {
	// Purchase allocates tickets for one event inside a single transaction.
	Purchase(ctx context.Context, p *authz.Principal, req model.PurchaseRequest) ([]*model.Ticket, error)
	List(ctx context.Context, p *authz.Principal) ([]*model.Ticket, error)
	Get(ctx context.Context, p *authz.Principal, id int) (*model.Ticket, error)
	Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateTicketRequest) (*model.Ticket, error)
	Delete(ctx context.Context, p *authz.Principal, id int) error
	CheckIn(ctx context.Context, p *authz.Principal, id int) (*model.Ticket, error)
}

type TicketServiceImpl struct {
	tx           repository.Transactor
	repo         repository.TicketRepository
	events       repository.EventRepository
	offers       repository.EventTicketTypeRepository
	availability cache.AvailabilityCache
}

func NewTicketService(
	tx repository.Transactor,
	repo repository.TicketRepository,
	events repository.EventRepository,
	offers repository.EventTicketTypeRepository,
	availability cache.AvailabilityCache,
) TicketService {
	return &TicketServiceImpl{
		tx:           tx,
		repo:         repo,
		events:       events,
		offers:       offers,
		availability: availability,
	}
}

// mergeItems sums quantities per ticket type and sorts by type id, which is
// also the lock order.
func mergeItems(items []model.PurchaseItem) ([]model.PurchaseItem, error) {
	totals := make(map[int]int, len(items))
	for _, item := range items {
		if item.Type <= 0 {
			return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "invalid ticket type %d", item.Type)
		}
		if item.Quantity <= 0 {
			return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "quantity must be positive")
		}
		totals[item.Type] += item.Quantity
	}

	merged := make([]model.PurchaseItem, 0, len(totals))
	for typeID, qty := range totals {
		merged = append(merged, model.PurchaseItem{Type: typeID, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Type < merged[j].Type })
	return merged, nil
}

func (s *TicketServiceImpl) Purchase(ctx context.Context, p *authz.Principal, req model.PurchaseRequest) (tickets []*model.Ticket, err error) {
	if err := authz.Can(p, authz.TicketPurchase, authz.Resource{}); err != nil {
		return nil, err
	}
	if len(req.Tickets) == 0 {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "at least one ticket is required")
	}
	items, err := mergeItems(req.Tickets)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "ticket.purchase",
		attribute.Int("event_id", req.Event),
		attribute.Int("customer_id", p.AccountID),
		attribute.Int("ticket_types", len(items)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		event, err := s.events.FindByIDForShare(ctx, tx, req.Event)
		if err != nil {
			return err
		}
		if !event.IsActive {
			return apperrors.ErrEventInactive
		}

		count, err := s.offers.CountByEventID(ctx, tx, event.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return apperrors.ErrNoTicketsAvailable
		}

		// lock every row first, in ascending type order
		locked := make([]*model.EventTicketType, 0, len(items))
		for _, item := range items {
			offer, err := s.offers.FindForUpdate(ctx, tx, event.ID, item.Type)
			if err != nil {
				return err
			}
			if !offer.IsActive {
				return apperrors.ErrEventTicketTypeNotFound
			}
			if !offer.CanSell(item.Quantity) {
				return apperrors.WithDetail(apperrors.ErrInsufficientInventory,
					"%d ticket type %s tickets are not available for event %s",
					item.Quantity, offer.TicketTypeName, event.Name)
			}
			locked = append(locked, offer)
		}

		created := make([]*model.Ticket, 0)
		for i, offer := range locked {
			qty := items[i].Quantity
			if err := s.offers.DecrementQuantity(ctx, tx, offer.ID, qty); err != nil {
				return err
			}
			for n := 0; n < qty; n++ {
				ticket, err := s.repo.Create(ctx, tx, &model.Ticket{
					EventID:      event.ID,
					TicketTypeID: offer.TicketTypeID,
					CustomerID:   p.AccountID,
					Price:        offer.Price,
				})
				if err != nil {
					return err
				}
				created = append(created, ticket)
			}
		}

		tickets = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithComponent("service").Info("tickets purchased",
		zap.Int("event_id", req.Event),
		zap.Int("customer_id", p.AccountID),
		zap.Int("count", len(tickets)),
		zap.String("trace_id", telemetry.TraceID(ctx)))

	refreshAvailability(ctx, s.offers, s.availability, req.Event)
	return tickets, nil
}

func (s *TicketServiceImpl) List(ctx context.Context, p *authz.Principal) ([]*model.Ticket, error) {
	if err := authz.Can(p, authz.TicketList, authz.Resource{}); err != nil {
		return nil, err
	}

	var scope model.TicketScope
	switch p.Role {
	case model.RoleAdmin:
		scope.All = true
	case model.RoleOrganizer:
		scope.EventOwnerID = p.AccountID
	default:
		scope.CustomerID = p.AccountID
	}
	return s.repo.List(ctx, scope)
}

func (s *TicketServiceImpl) Get(ctx context.Context, p *authz.Principal, id int) (*model.Ticket, error) {
	if p == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	ticket, res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(p, authz.TicketRead, res); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketServiceImpl) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateTicketRequest) (*model.Ticket, error) {
	if err := authz.Can(p, authz.TicketUpdate, authz.Resource{}); err != nil {
		return nil, err
	}
	params := model.UpdateTicketParams{IsActive: req.IsActive, Archived: req.Archived}
	if params.IsEmpty() {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "no fields to update")
	}
	return s.repo.Update(ctx, id, params)
}

func (s *TicketServiceImpl) Delete(ctx context.Context, p *authz.Principal, id int) error {
	if err := authz.Can(p, authz.TicketDelete, authz.Resource{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TicketServiceImpl) CheckIn(ctx context.Context, p *authz.Principal, id int) (*model.Ticket, error) {
	if p == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	ticket, res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(p, authz.TicketCheckIn, res); err != nil {
		return nil, err
	}

	switch ticket.Status() {
	case model.TicketStatusArchived:
		return nil, apperrors.ErrTicketArchived
	case model.TicketStatusCheckedIn:
		return nil, apperrors.ErrTicketAlreadyCheckedIn
	}

	return s.repo.CheckIn(ctx, id)
}

// load returns the ticket with the ownership facts of it and its event.
func (s *TicketServiceImpl) load(ctx context.Context, id int) (*model.Ticket, authz.Resource, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, authz.Resource{}, err
	}
	event, err := s.events.FindByID(ctx, ticket.EventID)
	if err != nil {
		return nil, authz.Resource{}, err
	}
	return ticket, authz.Resource{OwnerID: ticket.CustomerID, EventOwnerID: event.CreatedBy}, nil
}
