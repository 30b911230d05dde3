package repository

import (
	"context"
	"fmt"

	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepository interface {
	ListByEventIDs(ctx context.Context, eventIDs []int) (map[int][]*model.Photo, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, eventID int, url string) (*model.Photo, error)
}

type PhotoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) PhotoRepository {
	return &PhotoRepositoryImpl{
		pool: pool,
	}
}

func (r *PhotoRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, eventID int, url string) (*model.Photo, error) {
	query := `
		INSERT INTO photos (event_id, url)
		VALUES ($1, $2)
		RETURNING id, event_id, url
	`

	var p model.Photo
	err := tx.QueryRow(ctx, query, eventID, url).Scan(&p.ID, &p.EventID, &p.URL)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	return &p, nil
}

func (r *PhotoRepositoryImpl) ListByEventIDs(ctx context.Context, eventIDs []int) (map[int][]*model.Photo, error) {
	result := make(map[int][]*model.Photo, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, event_id, url
		FROM photos
		WHERE event_id = ANY($1)
		ORDER BY event_id, id
	`

	rows, err := r.pool.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.EventID, &p.URL); err != nil {
			return nil, err
		}
		result[p.EventID] = append(result[p.EventID], &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
