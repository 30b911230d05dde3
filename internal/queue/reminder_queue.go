package queue

import (
	"context"
	"time"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.ReminderMessage
	Ack  func()
	Nack func(requeue bool)
}

type ReminderQueue interface {
	Publish(ctx context.Context, msg *model.ReminderMessage) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

// MemoryQueueConfig retry limits; zero values fall back to the defaults.
type MemoryQueueConfig struct {
	RetryDelay    time.Duration // the n-th requeue waits n * RetryDelay
	MaxRetryCount int           // deliveries beyond this count are discarded as poison
	// OnDiscard, when set, is called for every message dropped after its last attempt.
	OnDiscard func(msg *model.ReminderMessage)
}

func defaultMemoryQueueConfig() MemoryQueueConfig {
	return MemoryQueueConfig{
		RetryDelay:    500 * time.Millisecond,
		MaxRetryCount: 5,
	}
}

type memoryEntry struct {
	msg      *model.ReminderMessage
	attempts int
}

// MemoryReminderQueue a buffered channel standing in for a broker. Used by
// the one-shot CLI and in tests.
type MemoryReminderQueue struct {
	ch  chan *memoryEntry
	cfg MemoryQueueConfig
	log *zap.Logger
}

// NewMemoryReminderQueue config may be nil.
func NewMemoryReminderQueue(bufferSize int, config *MemoryQueueConfig) ReminderQueue {
	cfg := defaultMemoryQueueConfig()
	if config != nil {
		if config.RetryDelay > 0 {
			cfg.RetryDelay = config.RetryDelay
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		cfg.OnDiscard = config.OnDiscard
	}
	return &MemoryReminderQueue{
		ch:  make(chan *memoryEntry, bufferSize),
		cfg: cfg,
		log: logger.WithComponent("mq"),
	}
}

func (q *MemoryReminderQueue) Publish(ctx context.Context, msg *model.ReminderMessage) error {
	select {
	case q.ch <- &memoryEntry{msg: msg}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryReminderQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-q.ch:
				if !ok {
					return
				}
				entry.attempts++

				select {
				case out <- q.newDelivery(entry):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (q *MemoryReminderQueue) newDelivery(entry *memoryEntry) Delivery {
	return Delivery{
		Data: entry.msg,
		Ack:  func() {},
		Nack: func(requeue bool) {
			if !requeue {
				return
			}
			if entry.attempts >= q.cfg.MaxRetryCount {
				q.discard(entry)
				return
			}
			time.AfterFunc(time.Duration(entry.attempts)*q.cfg.RetryDelay, func() {
				select {
				case q.ch <- entry:
				default:
					q.log.Warn("memory queue full, dropping requeued reminder",
						zap.Int("event_id", entry.msg.EventID), zap.Int("customer_id", entry.msg.CustomerID))
					if q.cfg.OnDiscard != nil {
						q.cfg.OnDiscard(entry.msg)
					}
				}
			})
		},
	}
}

func (q *MemoryReminderQueue) discard(entry *memoryEntry) {
	q.log.Warn("discard poison message",
		zap.Int("event_id", entry.msg.EventID),
		zap.Int("customer_id", entry.msg.CustomerID),
		zap.Int("retries", entry.attempts),
		zap.Int("max_retries", q.cfg.MaxRetryCount))
	if q.cfg.OnDiscard != nil {
		q.cfg.OnDiscard(entry.msg)
	}
}
