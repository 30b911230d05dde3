package service

import (
	"context"

	"go-gin-event-ticketing/internal/cache"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

func availabilityOf(offers []*model.EventTicketType) []model.Availability {
	items := make([]model.Availability, 0, len(offers))
	for _, o := range offers {
		if !o.IsActive {
			continue
		}
		items = append(items, model.Availability{TicketTypeID: o.TicketTypeID, Remaining: o.Quantity})
	}
	return items
}

// refreshAvailability merges a fresh database read into the cached snapshot.
// Failures are logged only; the database stays authoritative.
func refreshAvailability(ctx context.Context, offers repository.EventTicketTypeRepository, c cache.AvailabilityCache, eventID int) {
	log := logger.WithComponent("cache").With(zap.Int("event_id", eventID))

	version, err := c.Version(ctx, eventID)
	if err != nil {
		log.Warn("failed to read availability version", zap.Error(err))
		return
	}
	current, err := offers.ListByEventID(ctx, eventID)
	if err != nil {
		log.Warn("failed to load availability", zap.Error(err))
		return
	}
	mergeAvailability(ctx, c, eventID, version, availabilityOf(current))
}

func mergeAvailability(ctx context.Context, c cache.AvailabilityCache, eventID int, version int64, items []model.Availability) {
	applied, err := c.Merge(ctx, eventID, version, items)
	if err != nil {
		logger.WithComponent("cache").Warn("failed to refresh availability cache",
			zap.Int("event_id", eventID), zap.Error(err))
		return
	}
	if !applied {
		logger.WithComponent("cache").Debug("availability invalidated meanwhile, snapshot dropped",
			zap.Int("event_id", eventID))
	}
}

func invalidateAvailability(ctx context.Context, c cache.AvailabilityCache, eventID int) {
	if err := c.Invalidate(ctx, eventID); err != nil {
		logger.WithComponent("cache").Warn("failed to invalidate availability cache",
			zap.Int("event_id", eventID), zap.Error(err))
	}
}
