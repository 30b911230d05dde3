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

type EventRepository interface {
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error)
	FindByIDForShare(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `e.id, e.name, e.date, e.start_time::text, e.location, e.description,
	e.created_by, e.is_active, e.created_at, e.updated_at`

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.Time,
		&event.Location,
		&event.Description,
		&event.CreatedBy,
		&event.IsActive,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events AS e (name, date, start_time, location, description, created_by)
		VALUES ($1, $2, $3::time, $4, $5, $6)
		RETURNING ` + eventColumns

	created, err := scanEvent(tx.QueryRow(ctx, query,
		event.Name, event.Date, event.Time, event.Location, event.Description, event.CreatedBy,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

// List returns active events only, soonest first.
func (r *EventRepositoryImpl) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	conds := []string{"e.is_active"}
	args := []interface{}{}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.TicketTypes) > 0 {
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM event_ticket_types ett
			JOIN ticket_types tt ON tt.id = ett.ticket_type_id
			WHERE ett.event_id = e.id AND tt.name = ANY(%s))`, next(filter.TicketTypes)))
	}
	if filter.PriceMin != nil || filter.PriceMax != nil {
		priceConds := []string{"ett.event_id = e.id"}
		if filter.PriceMin != nil {
			priceConds = append(priceConds, "ett.price >= "+next(*filter.PriceMin))
		}
		if filter.PriceMax != nil {
			priceConds = append(priceConds, "ett.price <= "+next(*filter.PriceMax))
		}
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM event_ticket_types ett WHERE %s)`, strings.Join(priceConds, " AND ")))
	}
	if filter.DateAfter != nil {
		conds = append(conds, "e.date >= "+next(*filter.DateAfter))
	}
	if filter.DateBefore != nil {
		conds = append(conds, "e.date <= "+next(*filter.DateBefore))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := next("%" + escapeLike(s) + "%")
		conds = append(conds, fmt.Sprintf(
			`(e.name ILIKE %[1]s ESCAPE '\' OR e.location ILIKE %[1]s ESCAPE '\'
			OR e.description ILIKE %[1]s ESCAPE '\' OR a.username ILIKE %[1]s ESCAPE '\')`, p))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN accounts a ON a.id = e.created_by
		WHERE %s
		ORDER BY e.date, e.start_time, e.id
	`, eventColumns, strings.Join(conds, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// FindByID returns the event whatever its active flag.
func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// FindByIDForShare blocks concurrent deactivation until the purchase commits.
func (r *EventRepositoryImpl) FindByIDForShare(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1 FOR SHARE`

	event, err := scanEvent(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.Date != nil {
		sets = append(sets, fmt.Sprintf("date = $%d", argPos))
		args = append(args, *params.Date)
		argPos++
	}

	if params.Time != nil {
		sets = append(sets, fmt.Sprintf("start_time = $%d::time", argPos))
		args = append(args, *params.Time)
		argPos++
	}

	if params.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", argPos))
		args = append(args, *params.Location)
		argPos++
	}

	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
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
		UPDATE events AS e
		SET %s
		WHERE e.id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// Delete deactivates the event; its tickets drop out of normal listings.
func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		UPDATE events
		SET is_active = FALSE, updated_at = $1
		WHERE id = $2 AND is_active
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes the search term match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
