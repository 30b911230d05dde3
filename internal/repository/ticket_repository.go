package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	List(ctx context.Context, scope model.TicketScope) ([]*model.Ticket, error)
	FindByID(ctx context.Context, id int) (*model.Ticket, error)
	Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error)
	CheckIn(ctx context.Context, id int) (*model.Ticket, error)
	Delete(ctx context.Context, id int) error
	ListReminderTargets(ctx context.Context, from, to time.Time) ([]model.ReminderTarget, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

const ticketColumns = `t.id, t.event_id, t.ticket_type_id, t.customer_id, t.price,
	t.is_active, t.archived, t.created_at, t.updated_at`

func scanTicket(row rowScanner) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.TicketTypeID,
		&ticket.CustomerID,
		&ticket.Price,
		&ticket.IsActive,
		&ticket.Archived,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets AS t (event_id, ticket_type_id, customer_id, price)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + ticketColumns

	created, err := scanTicket(tx.QueryRow(ctx, query,
		ticket.EventID, ticket.TicketTypeID, ticket.CustomerID, ticket.Price,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return created, nil
}

// List hides archived tickets and tickets of deactivated events.
func (r *TicketRepositoryImpl) List(ctx context.Context, scope model.TicketScope) ([]*model.Ticket, error) {
	conds := []string{"NOT t.archived", "e.is_active"}
	args := []interface{}{}

	if !scope.All {
		switch {
		case scope.EventOwnerID > 0:
			args = append(args, scope.EventOwnerID)
			conds = append(conds, fmt.Sprintf("e.created_by = $%d", len(args)))
		case scope.CustomerID > 0:
			args = append(args, scope.CustomerID)
			conds = append(conds, fmt.Sprintf("t.customer_id = $%d", len(args)))
		default:
			return make([]*model.Ticket, 0), nil
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		WHERE %s
		ORDER BY t.created_at DESC, t.id DESC
	`, ticketColumns, strings.Join(conds, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

// FindByID includes archived tickets.
func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t WHERE t.id = $1`

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.IsActive != nil {
		sets = append(sets, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *params.IsActive)
		argPos++
	}

	if params.Archived != nil {
		sets = append(sets, fmt.Sprintf("archived = $%d", argPos))
		args = append(args, *params.Archived)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE tickets AS t
		SET %s
		WHERE t.id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, ticketColumns)

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return ticket, nil
}

// CheckIn flips a valid ticket to used. A ticket that is no longer valid is left alone.
func (r *TicketRepositoryImpl) CheckIn(ctx context.Context, id int) (*model.Ticket, error) {
	query := `
		UPDATE tickets AS t
		SET is_active = FALSE, updated_at = $1
		WHERE t.id = $2 AND t.is_active AND NOT t.archived
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketAlreadyCheckedIn
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE tickets
		SET is_active = FALSE, archived = TRUE, updated_at = $1
		WHERE id = $2 AND NOT archived
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	// check if ticket exists and not already archived
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}

// ListReminderTargets returns distinct (event, customer) pairs holding a valid
// ticket for an active event dated within [from, to].
func (r *TicketRepositoryImpl) ListReminderTargets(ctx context.Context, from, to time.Time) ([]model.ReminderTarget, error) {
	query := `
		SELECT DISTINCT t.event_id, t.customer_id
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		WHERE t.is_active AND NOT t.archived
			AND e.is_active
			AND e.date BETWEEN $1 AND $2
		ORDER BY t.event_id, t.customer_id
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make([]model.ReminderTarget, 0)
	for rows.Next() {
		var target model.ReminderTarget
		if err := rows.Scan(&target.EventID, &target.CustomerID); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return targets, nil
}
