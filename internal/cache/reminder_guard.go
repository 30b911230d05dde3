package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReminderGuard makes sure one (event, customer) pair is reminded at most once per day.
type ReminderGuard interface {
	// Claim returns true when the caller won the right to send this reminder.
	Claim(ctx context.Context, day time.Time, eventID, customerID int) (bool, error)
	// Release undoes a claim so a failed send can be retried by a later run.
	Release(ctx context.Context, day time.Time, eventID, customerID int) error
}

type RedisReminderGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReminderGuard(client *redis.Client, ttl time.Duration) ReminderGuard {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &RedisReminderGuard{client: client, ttl: ttl}
}

func reminderKey(day time.Time, eventID, customerID int) string {
	return fmt.Sprintf("reminder:%s:%d:%d", day.Format("2006-01-02"), eventID, customerID)
}

func (g *RedisReminderGuard) Claim(ctx context.Context, day time.Time, eventID, customerID int) (bool, error) {
	return g.client.SetNX(ctx, reminderKey(day, eventID, customerID), 1, g.ttl).Result()
}

func (g *RedisReminderGuard) Release(ctx context.Context, day time.Time, eventID, customerID int) error {
	return g.client.Del(ctx, reminderKey(day, eventID, customerID)).Err()
}
