package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go-gin-event-ticketing/internal/model"

	"github.com/redis/go-redis/v9"
)

const AvailabilityTTL = 5 * time.Minute

// AvailabilityCache mirrors the remaining quantity per ticket type of an event.
// It is read-only information for clients; a sale is decided by the database row lock.
//
// Writers race each other after their transactions commit, so a write never
// raises a cached quantity. Anything that can raise one, or change the set of
// types, goes through Invalidate, which also bumps the event's version so
// snapshots loaded before it are refused.
type AvailabilityCache interface {
	// Get returns ok=false on a cache miss.
	Get(ctx context.Context, eventID int) (items []model.Availability, ok bool, err error)
	// Version must be read before loading the snapshot passed to Merge.
	Version(ctx context.Context, eventID int) (int64, error)
	// Merge keeps the lower remaining per type and adds missing types. It is a
	// no-op when the event was invalidated after version was read.
	Merge(ctx context.Context, eventID int, version int64, items []model.Availability) (applied bool, err error)
	Invalidate(ctx context.Context, eventID int) error
}

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client) AvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
		ttl:    AvailabilityTTL,
	}
}

func (c *RedisAvailabilityCache) key(eventID int) string {
	return fmt.Sprintf("event:%d:availability", eventID)
}

func (c *RedisAvailabilityCache) versionKey(eventID int) string {
	return fmt.Sprintf("event:%d:availability:version", eventID)
}

// versionTTL outlives any snapshot load by far; an expired version reads as 0
// and only makes older loads miss their write.
const versionTTL = 24 * time.Hour

var mergeAvailabilityScript = redis.NewScript(`
	local key = KEYS[1]
	local version = tonumber(redis.call('GET', KEYS[2]) or '0')
	if version ~= tonumber(ARGV[1]) then
		return 0
	end

	for i = 3, #ARGV, 2 do
		local current = redis.call('HGET', key, ARGV[i])
		if not current or tonumber(ARGV[i + 1]) < tonumber(current) then
			redis.call('HSET', key, ARGV[i], ARGV[i + 1])
		end
	end
	if #ARGV > 2 then
		redis.call('EXPIRE', key, tonumber(ARGV[2]))
	end
	return 1
`)

var invalidateAvailabilityScript = redis.NewScript(`
	redis.call('DEL', KEYS[1])
	redis.call('INCR', KEYS[2])
	redis.call('EXPIRE', KEYS[2], tonumber(ARGV[1]))
	return 1
`)

func (c *RedisAvailabilityCache) Version(ctx context.Context, eventID int) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(eventID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisAvailabilityCache) Merge(ctx context.Context, eventID int, version int64, items []model.Availability) (bool, error) {
	args := make([]interface{}, 0, 2+2*len(items))
	args = append(args, version, int(c.ttl.Seconds()))
	for _, item := range items {
		args = append(args, item.TicketTypeID, item.Remaining)
	}

	applied, err := mergeAvailabilityScript.Run(ctx, c.client,
		[]string{c.key(eventID), c.versionKey(eventID)}, args...).Int()
	if err != nil {
		return false, err
	}
	return applied == 1, nil
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, eventID int) ([]model.Availability, bool, error) {
	result, err := c.client.HGetAll(ctx, c.key(eventID)).Result()
	if err != nil {
		return nil, false, err
	}

	// missing key
	if len(result) == 0 {
		return nil, false, nil
	}

	items := make([]model.Availability, 0, len(result))
	for field, value := range result {
		typeID, err := strconv.Atoi(field)
		if err != nil {
			return nil, false, fmt.Errorf("invalid ticket type id %q: %w", field, err)
		}
		remaining, err := strconv.Atoi(value)
		if err != nil {
			return nil, false, fmt.Errorf("invalid remaining %q: %w", value, err)
		}
		items = append(items, model.Availability{TicketTypeID: typeID, Remaining: remaining})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].TicketTypeID < items[j].TicketTypeID
	})

	return items, true, nil
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, eventID int) error {
	return invalidateAvailabilityScript.Run(ctx, c.client,
		[]string{c.key(eventID), c.versionKey(eventID)}, int(versionTTL.Seconds())).Err()
}

