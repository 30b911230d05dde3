package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StreamKey          = "reminders:stream"
	DeadLetterKey      = "reminders:dead"
	ConsumerGroupName  = "reminder-workers"
	ConsumerNamePrefix = "worker"

	payloadField     = "reminder"
	deadLetterMaxLen = 10000
)

// RedisStreamConfig timeouts and retry limits; zero values fall back to the defaults.
type RedisStreamConfig struct {
	ClaimMinIdleTime   time.Duration // pending entries idle this long are reclaimed with XAUTOCLAIM
	MaxRetryCount      int           // deliveries beyond this count are discarded as poison
	ReadGroupBlockTime time.Duration // XREADGROUP block time
}

func defaultRedisStreamConfig() RedisStreamConfig {
	return RedisStreamConfig{
		ClaimMinIdleTime:   5 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
	}
}

type RedisStreamReminderQueue struct {
	client       *redis.Client
	streamKey    string
	groupName    string
	consumerName string
	cfg          RedisStreamConfig
	log          *zap.Logger
}

// NewRedisStreamReminderQueue config may be nil.
func NewRedisStreamReminderQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamConfig) (ReminderQueue, error) {
	if consumerID == "" {
		consumerID = uuid.New().String()
	}
	cfg := defaultRedisStreamConfig()
	if config != nil {
		if config.ClaimMinIdleTime > 0 {
			cfg.ClaimMinIdleTime = config.ClaimMinIdleTime
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		if config.ReadGroupBlockTime > 0 {
			cfg.ReadGroupBlockTime = config.ReadGroupBlockTime
		}
	}
	q := &RedisStreamReminderQueue{
		client:       client,
		streamKey:    StreamKey,
		groupName:    ConsumerGroupName,
		consumerName: fmt.Sprintf("%s:%s", ConsumerNamePrefix, consumerID),
		cfg:          cfg,
		log:          logger.WithComponent("mq"),
	}
	if err := q.ensureConsumerGroup(ctx); err != nil {
		return nil, fmt.Errorf("ensure consumer group: %w", err)
	}
	return q, nil
}

func (q *RedisStreamReminderQueue) ensureConsumerGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.streamKey, q.groupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (q *RedisStreamReminderQueue) Publish(ctx context.Context, msg *model.ReminderMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}
	_, err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.streamKey,
		ID:     "*",
		Values: map[string]interface{}{payloadField: string(payload)},
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd: %w", err)
	}
	return nil
}

func (q *RedisStreamReminderQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)
	go func() {
		defer close(out)

		done := make(chan struct{})
		go func() {
			defer close(done)
			q.runAutoClaim(ctx, out)
		}()

		q.runReadLoop(ctx, out)
		// out must stay open until the claimer stops sending
		<-done
	}()
	return out, nil
}

func (q *RedisStreamReminderQueue) runReadLoop(ctx context.Context, out chan<- Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			q.readAndDeliver(ctx, out)
		}
	}
}

// readAndDeliver reads new entries only (">"). Entries already delivered to this
// consumer stay pending and come back through XAUTOCLAIM once they idle out.
func (q *RedisStreamReminderQueue) readAndDeliver(ctx context.Context, out chan<- Delivery) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: q.consumerName,
		Streams:  []string{q.streamKey, ">"},
		Count:    10,
		Block:    q.cfg.ReadGroupBlockTime,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		q.log.Error("XReadGroup failed", zap.Error(err))
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
		}
		return
	}

	for _, stream := range streams {
		if stream.Stream != q.streamKey {
			continue
		}
		for _, msg := range stream.Messages {
			d := q.newDelivery(ctx, msg)
			if d == nil {
				continue
			}
			select {
			case out <- *d:
			case <-ctx.Done():
				return
			}
		}
	}
}

// shouldProcessMessage moves entries that exceeded the retry budget to the
// dead letter stream and acks them.
func (q *RedisStreamReminderQueue) shouldProcessMessage(ctx context.Context, msg redis.XMessage) bool {
	n, err := q.getMessageRetryCount(ctx, msg.ID)
	if err != nil {
		q.log.Warn("getMessageRetryCount failed", zap.String("message_id", msg.ID), zap.Error(err))
		return true
	}
	if n < q.cfg.MaxRetryCount {
		return true
	}

	q.log.Warn("discard poison message",
		zap.String("message_id", msg.ID),
		zap.Int("retries", n),
		zap.Int("max_retries", q.cfg.MaxRetryCount))

	values := map[string]interface{}{
		"source_id": msg.ID,
		"retries":   n,
	}
	if raw, ok := msg.Values[payloadField]; ok {
		values[payloadField] = raw
	}
	if err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: DeadLetterKey,
		MaxLen: deadLetterMaxLen,
		Approx: true,
		Values: values,
	}).Err(); err != nil {
		// keep it pending rather than lose it
		q.log.Error("dead letter XAdd failed", zap.String("message_id", msg.ID), zap.Error(err))
		return false
	}
	_ = q.client.XAck(ctx, q.streamKey, q.groupName, msg.ID).Err()
	return false
}

func (q *RedisStreamReminderQueue) getMessageRetryCount(ctx context.Context, messageID string) (int, error) {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: q.streamKey,
		Group:  q.groupName,
		Start:  messageID,
		End:    messageID,
		Count:  1,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	return int(pending[0].RetryCount), nil
}

func (q *RedisStreamReminderQueue) runAutoClaim(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	startID := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			claimed, nextID, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
				Stream:   q.streamKey,
				Group:    q.groupName,
				Consumer: q.consumerName,
				MinIdle:  q.cfg.ClaimMinIdleTime,
				Count:    10,
				Start:    startID,
			}).Result()

			if err != nil && !errors.Is(err, redis.Nil) {
				if ctx.Err() != nil {
					return
				}
				q.log.Error("XAutoClaim failed", zap.Error(err))
				continue
			}
			if nextID != "" && nextID != "0-0" {
				startID = nextID
			} else {
				startID = "0-0"
			}

			for _, msg := range claimed {
				if !q.shouldProcessMessage(ctx, msg) {
					continue
				}
				d := q.newDelivery(ctx, msg)
				if d == nil {
					continue
				}
				select {
				case out <- *d:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (q *RedisStreamReminderQueue) newDelivery(ctx context.Context, msg redis.XMessage) *Delivery {
	raw, ok := msg.Values[payloadField].(string)
	if !ok {
		q.log.Warn("invalid message: missing payload", zap.String("message_id", msg.ID))
		_ = q.client.XAck(ctx, q.streamKey, q.groupName, msg.ID).Err()
		return nil
	}
	var reminder model.ReminderMessage
	if err := json.Unmarshal([]byte(raw), &reminder); err != nil {
		q.log.Warn("unmarshal reminder failed", zap.String("message_id", msg.ID), zap.Error(err))
		_ = q.client.XAck(ctx, q.streamKey, q.groupName, msg.ID).Err()
		return nil
	}
	msgID := msg.ID
	return &Delivery{
		Data: &reminder,
		Ack: func() {
			if err := q.client.XAck(ctx, q.streamKey, q.groupName, msgID).Err(); err != nil {
				q.log.Error("XAck failed", zap.String("message_id", msgID), zap.Error(err))
			}
		},
		Nack: func(requeue bool) {
			if requeue {
				// left in the pending list; XAUTOCLAIM picks it up after ClaimMinIdleTime
				q.log.Info("message nack(requeue), will retry",
					zap.String("message_id", msgID),
					zap.Duration("claim_min_idle", q.cfg.ClaimMinIdleTime))
				return
			}
			if err := q.client.XAck(ctx, q.streamKey, q.groupName, msgID).Err(); err != nil {
				q.log.Error("XAck discard failed", zap.String("message_id", msgID), zap.Error(err))
			}
		},
	}
}
