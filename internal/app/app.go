// Package app wires configuration, storage and services together for the binaries.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"go-gin-event-ticketing/config"
	"go-gin-event-ticketing/internal/auth"
	"go-gin-event-ticketing/internal/cache"
	"go-gin-event-ticketing/internal/database"
	"go-gin-event-ticketing/internal/handler"
	"go-gin-event-ticketing/internal/mailer"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/queue"
	"go-gin-event-ticketing/internal/repository"
	"go-gin-event-ticketing/internal/service"
	"go-gin-event-ticketing/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type App struct {
	Config *config.Config
	Pool   *pgxpool.Pool
	Redis  *redis.Client

	Accounts    service.AccountService
	Auth        service.AuthService
	Events      service.EventService
	TicketTypes service.TicketTypeService
	Tickets     service.TicketService
	Wishlist    service.WishlistService
	Reminders   service.ReminderService

	ReminderQueue queue.ReminderQueue

	discarded *atomic.Int64
}

// DiscardedReminders counts reminders the in-process queue gave up on.
func (a *App) DiscardedReminders() int64 {
	return a.discarded.Load()
}

// New connects to Postgres and Redis, applies migrations and builds the services.
// useStream selects the Redis stream reminder queue over the in-process one.
func New(ctx context.Context, cfg *config.Config, useStream bool) (*App, error) {
	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	discarded := &atomic.Int64{}
	var reminderQueue queue.ReminderQueue
	if useStream {
		reminderQueue, err = queue.NewRedisStreamReminderQueue(ctx, rdb, cfg.Reminder.ConsumerID, nil)
		if err != nil {
			pool.Close()
			rdb.Close()
			return nil, fmt.Errorf("init reminder queue: %w", err)
		}
	} else {
		reminderQueue = queue.NewMemoryReminderQueue(1024, &queue.MemoryQueueConfig{
			OnDiscard: func(*model.ReminderMessage) { discarded.Add(1) },
		})
	}

	tx := repository.NewTransactor(pool)
	accountRepo := repository.NewAccountRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ticketTypeRepo := repository.NewTicketTypeRepository(pool)
	offerRepo := repository.NewEventTicketTypeRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	wishlistRepo := repository.NewWishlistRepository(pool)
	photoRepo := repository.NewPhotoRepository(pool)

	availability := cache.NewRedisAvailabilityCache(rdb)
	guard := cache.NewRedisReminderGuard(rdb, cfg.Reminder.DedupTTL)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.JWT.Issuer)
	revoked := auth.NewRedisRevocationStore(rdb)
	mail := mailer.New(cfg.Mail.APIKey, cfg.Mail.FromName, cfg.Mail.FromEmail)

	return &App{
		Config: cfg,
		Pool:   pool,
		Redis:  rdb,

		Accounts:    service.NewAccountService(accountRepo, hasher, mail),
		Auth:        service.NewAuthService(accountRepo, tokens, revoked, hasher),
		Events:      service.NewEventService(tx, eventRepo, offerRepo, photoRepo, availability),
		TicketTypes: service.NewTicketTypeService(ticketTypeRepo),
		Tickets:     service.NewTicketService(tx, ticketRepo, eventRepo, offerRepo, availability),
		Wishlist:    service.NewWishlistService(wishlistRepo, eventRepo),
		Reminders: service.NewReminderService(ticketRepo, eventRepo, accountRepo, guard,
			reminderQueue, mail, cfg.Reminder.LookaheadDays),

		ReminderQueue: reminderQueue,
		discarded:     discarded,
	}, nil
}

// Router builds the gin engine with every handler registered.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), telemetry.TracingMiddleware(), handler.RequestLogger(), handler.Authenticate(a.Auth))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewAccountHandler(a.Accounts, a.Auth).RegisterRoutes(r)
	handler.NewEventHandler(a.Events).RegisterRoutes(r)
	handler.NewTicketTypeHandler(a.TicketTypes).RegisterRoutes(r)
	handler.NewTicketHandler(a.Tickets).RegisterRoutes(r)
	handler.NewWishlistHandler(a.Wishlist).RegisterRoutes(r)
	handler.NewJobHandler(a.Reminders).RegisterRoutes(r)

	return r
}

func (a *App) Close() {
	a.Redis.Close()
	a.Pool.Close()
}
