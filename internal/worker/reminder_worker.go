package worker

import (
	"context"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/queue"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

// ReminderDeliverer is the part of the reminder service the worker needs.
type ReminderDeliverer interface {
	Deliver(ctx context.Context, msg *model.ReminderMessage) error
}

type ReminderWorker interface {
	// Start subscribes and consumes in the background until ctx is done.
	Start(ctx context.Context) error
	// Done is closed once the subscription channel is drained.
	Done() <-chan struct{}
}

type ReminderWorkerImpl struct {
	service ReminderDeliverer
	queue   queue.ReminderQueue
	done    chan struct{}
}

func NewReminderWorker(service ReminderDeliverer, q queue.ReminderQueue) ReminderWorker {
	return &ReminderWorkerImpl{
		service: service,
		queue:   q,
		done:    make(chan struct{}),
	}
}

func (w *ReminderWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")

	go func() {
		defer close(w.done)
		for msg := range msgs {
			if err := w.service.Deliver(ctx, msg.Data); err != nil {
				// mail provider or database hiccup, try again later
				log.Warn("reminder delivery failed",
					zap.Int("event_id", msg.Data.EventID),
					zap.Int("customer_id", msg.Data.CustomerID),
					zap.Error(err))
				msg.Nack(true)
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}

func (w *ReminderWorkerImpl) Done() <-chan struct{} {
	return w.done
}
