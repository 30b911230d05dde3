package repository

import (
	"context"
	"errors"
	"fmt"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventTicketTypeRepository interface {
	ListByEventID(ctx context.Context, eventID int) ([]*model.EventTicketType, error)
	ListByEventIDs(ctx context.Context, eventIDs []int) (map[int][]*model.EventTicketType, error)
	Deactivate(ctx context.Context, eventID, id int) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ett *model.EventTicketType) (*model.EventTicketType, error)
	CountByEventID(ctx context.Context, tx pgx.Tx, eventID int) (int, error)
	FindForUpdate(ctx context.Context, tx pgx.Tx, eventID, ticketTypeID int) (*model.EventTicketType, error)
	DecrementQuantity(ctx context.Context, tx pgx.Tx, id int, quantity int) error
}

type EventTicketTypeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventTicketTypeRepository(pool *pgxpool.Pool) EventTicketTypeRepository {
	return &EventTicketTypeRepositoryImpl{
		pool: pool,
	}
}

const eventTicketTypeColumns = `ett.id, ett.event_id, ett.ticket_type_id, tt.name,
	ett.price, ett.quantity, ett.is_active`

func scanEventTicketType(row rowScanner) (*model.EventTicketType, error) {
	var ett model.EventTicketType
	err := row.Scan(
		&ett.ID,
		&ett.EventID,
		&ett.TicketTypeID,
		&ett.TicketTypeName,
		&ett.Price,
		&ett.Quantity,
		&ett.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &ett, nil
}

func (r *EventTicketTypeRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ett *model.EventTicketType) (*model.EventTicketType, error) {
	query := `
		WITH ins AS (
			INSERT INTO event_ticket_types (event_id, ticket_type_id, price, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT ` + eventTicketTypeColumns + `
		FROM ins ett
		JOIN ticket_types tt ON tt.id = ett.ticket_type_id
	`

	created, err := scanEventTicketType(tx.QueryRow(ctx, query,
		ett.EventID, ett.TicketTypeID, ett.Price, ett.Quantity,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, apperrors.ErrAlreadyExists
		case isForeignKeyViolation(err):
			return nil, apperrors.ErrTicketTypeNotFound
		case isCheckViolation(err):
			return nil, apperrors.ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to create event ticket type: %w", err)
	}

	return created, nil
}

// ListByEventID returns active offers of an event ordered by ticket type.
func (r *EventTicketTypeRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.EventTicketType, error) {
	grouped, err := r.ListByEventIDs(ctx, []int{eventID})
	if err != nil {
		return nil, err
	}
	if offers, ok := grouped[eventID]; ok {
		return offers, nil
	}
	return make([]*model.EventTicketType, 0), nil
}

func (r *EventTicketTypeRepositoryImpl) ListByEventIDs(ctx context.Context, eventIDs []int) (map[int][]*model.EventTicketType, error) {
	result := make(map[int][]*model.EventTicketType, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + eventTicketTypeColumns + `
		FROM event_ticket_types ett
		JOIN ticket_types tt ON tt.id = ett.ticket_type_id
		WHERE ett.event_id = ANY($1) AND ett.is_active
		ORDER BY ett.event_id, ett.ticket_type_id
	`

	rows, err := r.pool.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		ett, err := scanEventTicketType(rows)
		if err != nil {
			return nil, err
		}
		result[ett.EventID] = append(result[ett.EventID], ett)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// CountByEventID counts every offer of the event, active or not.
func (r *EventTicketTypeRepositoryImpl) CountByEventID(ctx context.Context, tx pgx.Tx, eventID int) (int, error) {
	var count int
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM event_ticket_types WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EventTicketTypeRepositoryImpl) FindForUpdate(ctx context.Context, tx pgx.Tx, eventID, ticketTypeID int) (*model.EventTicketType, error) {
	query := `
		SELECT ` + eventTicketTypeColumns + `
		FROM event_ticket_types ett
		JOIN ticket_types tt ON tt.id = ett.ticket_type_id
		WHERE ett.event_id = $1 AND ett.ticket_type_id = $2
		FOR UPDATE OF ett
	`

	ett, err := scanEventTicketType(tx.QueryRow(ctx, query, eventID, ticketTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventTicketTypeNotFound
		}
		return nil, err
	}

	return ett, nil
}

// DecrementQuantity never lets the remaining quantity go negative.
func (r *EventTicketTypeRepositoryImpl) DecrementQuantity(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidInput
	}

	query := `
		UPDATE event_ticket_types
		SET quantity = quantity - $1
		WHERE id = $2 AND quantity >= $1
	`

	result, err := tx.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInsufficientInventory
	}

	return nil
}

func (r *EventTicketTypeRepositoryImpl) Deactivate(ctx context.Context, eventID, id int) error {
	query := `
		UPDATE event_ticket_types
		SET is_active = FALSE
		WHERE id = $1 AND event_id = $2 AND is_active
	`

	result, err := r.pool.Exec(ctx, query, id, eventID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventTicketTypeNotFound
	}

	return nil
}
