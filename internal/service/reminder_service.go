package service

import (
	"context"
	"fmt"
	"time"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/cache"
	"go-gin-event-ticketing/internal/mailer"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/queue"
	"go-gin-event-ticketing/internal/repository"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

type ReminderService interface {
	// Trigger is Run for an authenticated administrator.
	Trigger(ctx context.Context, p *authz.Principal) (*model.ReminderRunResult, error)
	// Run publishes one reminder per (event, customer) with a valid ticket for an
	// event happening within the lookahead window.
	Run(ctx context.Context) (*model.ReminderRunResult, error)
	// Deliver mails one queued reminder.
	Deliver(ctx context.Context, msg *model.ReminderMessage) error
}

type ReminderServiceImpl struct {
	tickets       repository.TicketRepository
	events        repository.EventRepository
	accounts      repository.AccountRepository
	guard         cache.ReminderGuard
	queue         queue.ReminderQueue
	mailer        mailer.Mailer
	lookaheadDays int
	now           func() time.Time
}

func NewReminderService(
	tickets repository.TicketRepository,
	events repository.EventRepository,
	accounts repository.AccountRepository,
	guard cache.ReminderGuard,
	q queue.ReminderQueue,
	m mailer.Mailer,
	lookaheadDays int,
) ReminderService {
	if lookaheadDays < 0 {
		lookaheadDays = 1
	}
	return &ReminderServiceImpl{
		tickets:       tickets,
		events:        events,
		accounts:      accounts,
		guard:         guard,
		queue:         q,
		mailer:        m,
		lookaheadDays: lookaheadDays,
		now:           time.Now,
	}
}

func (s *ReminderServiceImpl) Trigger(ctx context.Context, p *authz.Principal) (*model.ReminderRunResult, error) {
	if err := authz.Can(p, authz.ReminderRun, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

func (s *ReminderServiceImpl) Run(ctx context.Context) (*model.ReminderRunResult, error) {
	log := logger.WithComponent("service").With(zap.String("operation", "RunReminders"))

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, s.lookaheadDays)

	targets, err := s.tickets.ListReminderTargets(ctx, today, until)
	if err != nil {
		return nil, err
	}

	result := &model.ReminderRunResult{
		Day:     today.Format(model.DateLayout),
		Targets: len(targets),
	}

	for _, target := range targets {
		claimed, err := s.guard.Claim(ctx, today, target.EventID, target.CustomerID)
		if err != nil {
			return result, fmt.Errorf("claim reminder: %w", err)
		}
		if !claimed {
			result.Skipped++
			continue
		}

		msg := &model.ReminderMessage{
			EventID:    target.EventID,
			CustomerID: target.CustomerID,
			Day:        result.Day,
		}
		if err := s.queue.Publish(ctx, msg); err != nil {
			// let the next run pick it up again
			if relErr := s.guard.Release(context.Background(), today, target.EventID, target.CustomerID); relErr != nil {
				log.Warn("failed to release reminder claim", zap.Error(relErr))
			}
			return result, fmt.Errorf("publish reminder: %w", err)
		}
		result.Published++
	}

	log.Info("reminders published",
		zap.String("day", result.Day),
		zap.Int("targets", result.Targets),
		zap.Int("published", result.Published),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

func (s *ReminderServiceImpl) Deliver(ctx context.Context, msg *model.ReminderMessage) error {
	log := logger.WithComponent("service").With(
		zap.Int("event_id", msg.EventID),
		zap.Int("customer_id", msg.CustomerID))

	event, err := s.events.FindByID(ctx, msg.EventID)
	if err != nil {
		return err
	}
	account, err := s.accounts.FindByID(ctx, msg.CustomerID)
	if err != nil {
		return err
	}

	// things changed since the run; nothing to remind
	if !event.IsActive || !account.IsActive {
		log.Info("reminder dropped, event or account no longer active")
		return nil
	}

	email := mailer.ReminderEmail(account.Email, mailer.ReminderData{
		Name:      account.FullName(),
		EventName: event.Name,
		Date:      event.Date.Format(model.DateLayout),
		Time:      event.Time,
		Location:  event.Location,
	})
	if err := s.mailer.Send(ctx, email); err != nil {
		return err
	}

	log.Info("reminder sent")
	return nil
}
