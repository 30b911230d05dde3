package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketTypeRepository interface {
	Create(ctx context.Context, name string) (*model.TicketType, error)
	List(ctx context.Context) ([]*model.TicketType, error)
	FindByID(ctx context.Context, id int) (*model.TicketType, error)
	Update(ctx context.Context, id int, params model.UpdateTicketTypeParams) (*model.TicketType, error)
	Delete(ctx context.Context, id int) error
}

type TicketTypeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &TicketTypeRepositoryImpl{
		pool: pool,
	}
}

func (r *TicketTypeRepositoryImpl) Create(ctx context.Context, name string) (*model.TicketType, error) {
	query := `
		INSERT INTO ticket_types (name)
		VALUES ($1)
		RETURNING id, name, is_active
	`

	var tt model.TicketType
	err := r.pool.QueryRow(ctx, query, name).Scan(&tt.ID, &tt.Name, &tt.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket type: %w", err)
	}

	return &tt, nil
}

func (r *TicketTypeRepositoryImpl) List(ctx context.Context) ([]*model.TicketType, error) {
	query := `
		SELECT id, name, is_active
		FROM ticket_types
		WHERE is_active
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]*model.TicketType, 0)
	for rows.Next() {
		var tt model.TicketType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.IsActive); err != nil {
			return nil, err
		}
		types = append(types, &tt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

func (r *TicketTypeRepositoryImpl) FindByID(ctx context.Context, id int) (*model.TicketType, error) {
	query := `SELECT id, name, is_active FROM ticket_types WHERE id = $1`

	var tt model.TicketType
	err := r.pool.QueryRow(ctx, query, id).Scan(&tt.ID, &tt.Name, &tt.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		return nil, err
	}

	return &tt, nil
}

func (r *TicketTypeRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateTicketTypeParams) (*model.TicketType, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.IsActive != nil {
		sets = append(sets, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *params.IsActive)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE ticket_types
		SET %s
		WHERE id = $%d
		RETURNING id, name, is_active
	`, strings.Join(sets, ", "), argPos)

	var tt model.TicketType
	err := r.pool.QueryRow(ctx, query, args...).Scan(&tt.ID, &tt.Name, &tt.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		return nil, err
	}

	return &tt, nil
}

// Delete deactivates the ticket type. Existing event offers keep working.
func (r *TicketTypeRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `UPDATE ticket_types SET is_active = FALSE WHERE id = $1 AND is_active`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketTypeNotFound
	}

	return nil
}
