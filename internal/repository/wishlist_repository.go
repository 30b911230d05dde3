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

type WishlistRepository interface {
	Create(ctx context.Context, accountID, eventID int) (*model.Wishlist, error)
	ListByAccount(ctx context.Context, accountID int) ([]*model.Wishlist, error)
	FindByID(ctx context.Context, id int) (*model.Wishlist, error)
	Delete(ctx context.Context, id int) error
}

type WishlistRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewWishlistRepository(pool *pgxpool.Pool) WishlistRepository {
	return &WishlistRepositoryImpl{
		pool: pool,
	}
}

func (r *WishlistRepositoryImpl) Create(ctx context.Context, accountID, eventID int) (*model.Wishlist, error) {
	query := `
		INSERT INTO wishlists (created_by, event_id)
		VALUES ($1, $2)
		RETURNING id, created_by, event_id, created_at
	`

	var w model.Wishlist
	err := r.pool.QueryRow(ctx, query, accountID, eventID).Scan(
		&w.ID, &w.CreatedBy, &w.EventID, &w.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, apperrors.ErrAlreadyWishlisted
		case isForeignKeyViolation(err):
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	return &w, nil
}

func (r *WishlistRepositoryImpl) ListByAccount(ctx context.Context, accountID int) ([]*model.Wishlist, error) {
	query := `
		SELECT id, created_by, event_id, created_at
		FROM wishlists
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*model.Wishlist, 0)
	for rows.Next() {
		var w model.Wishlist
		if err := rows.Scan(&w.ID, &w.CreatedBy, &w.EventID, &w.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *WishlistRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Wishlist, error) {
	query := `SELECT id, created_by, event_id, created_at FROM wishlists WHERE id = $1`

	var w model.Wishlist
	err := r.pool.QueryRow(ctx, query, id).Scan(&w.ID, &w.CreatedBy, &w.EventID, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrWishlistNotFound
		}
		return nil, err
	}

	return &w, nil
}

// Delete removes the row.
func (r *WishlistRepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrWishlistNotFound
	}

	return nil
}
