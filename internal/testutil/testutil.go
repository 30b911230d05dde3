// Package testutil connects integration tests to the test Postgres and Redis
// from config.LoadTestConfig. Tests skip when either is unreachable.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-gin-event-ticketing/config"
	"go-gin-event-ticketing/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

var (
	dbOnce  sync.Once
	testDB  *pgxpool.Pool
	dbErr   error
	rdbOnce sync.Once
	testRdb *redis.Client
	rdbErr  error
)

// DB returns the shared migrated pool, skipping t if the database is down.
func DB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbOnce.Do(func() {
		cfg := config.LoadTestConfig()
		testDB, dbErr = database.InitDatabase(context.Background(), &cfg.Database)
		if dbErr != nil {
			return
		}
		dbErr = database.Migrate(context.Background(), testDB)
	})
	if dbErr != nil {
		t.Skipf("test database unavailable: %v", dbErr)
	}
	return testDB
}

// Redis returns the shared client for the test redis db, skipping t if it is down.
func Redis(t *testing.T) *redis.Client {
	t.Helper()
	rdbOnce.Do(func() {
		cfg := config.LoadTestConfig()
		testRdb, rdbErr = database.InitRedis(context.Background(), &cfg.Redis)
	})
	if rdbErr != nil {
		t.Skipf("test redis unavailable: %v", rdbErr)
	}
	return testRdb
}

// Truncate empties every table and resets ids.
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"TRUNCATE photos, wishlists, tickets, event_ticket_types, ticket_types, events, accounts RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

func FlushRedis(t *testing.T, rdb *redis.Client) {
	t.Helper()
	if err := rdb.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to flush redis: %v", err)
	}
}

func CreateAccount(t *testing.T, pool *pgxpool.Pool, username, role string) int {
	t.Helper()
	query := `
		INSERT INTO accounts (username, email, first_name, role, password_hash)
		VALUES ($1, $2, $3, $4, 'x')
		RETURNING id
	`
	var id int
	err := pool.QueryRow(context.Background(), query, username, username+"@example.com", username, role).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
	return id
}

func CreateEvent(t *testing.T, pool *pgxpool.Pool, createdBy int, name string, date time.Time) int {
	t.Helper()
	query := `
		INSERT INTO events (name, date, start_time, location, description, created_by)
		VALUES ($1, $2, '18:00', 'Main Hall', $3, $4)
		RETURNING id
	`
	var id int
	err := pool.QueryRow(context.Background(), query, name, date, name+" description", createdBy).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return id
}

func CreateTicketType(t *testing.T, pool *pgxpool.Pool, name string) int {
	t.Helper()
	var id int
	err := pool.QueryRow(context.Background(), `INSERT INTO ticket_types (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test ticket type: %v", err)
	}
	return id
}

// CreateOffer puts quantity units of a ticket type on sale for an event.
func CreateOffer(t *testing.T, pool *pgxpool.Pool, eventID, ticketTypeID int, price float64, quantity int) int {
	t.Helper()
	query := `
		INSERT INTO event_ticket_types (event_id, ticket_type_id, price, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int
	err := pool.QueryRow(context.Background(), query, eventID, ticketTypeID, price, quantity).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test offer: %v", err)
	}
	return id
}

func OfferQuantity(t *testing.T, pool *pgxpool.Pool, offerID int) int {
	t.Helper()
	var qty int
	err := pool.QueryRow(context.Background(), `SELECT quantity FROM event_ticket_types WHERE id = $1`, offerID).Scan(&qty)
	if err != nil {
		t.Fatalf("Failed to read offer quantity: %v", err)
	}
	return qty
}

func CountTickets(t *testing.T, pool *pgxpool.Pool, eventID int) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM tickets WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count tickets: %v", err)
	}
	return n
}
