package repository

import (
	"context"
	"errors"
	"fmt"
	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountFilter struct {
	Username        string
	IncludeInactive bool
}

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) (*model.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]*model.Account, error)
	FindByID(ctx context.Context, id int) (*model.Account, error)
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByResetToken(ctx context.Context, token uuid.UUID) (*model.Account, error)
	Update(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error)
	SetPassword(ctx context.Context, id int, passwordHash string) error
	SetResetToken(ctx context.Context, id int, token uuid.UUID) error
	TouchLastLogin(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type AccountRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &AccountRepositoryImpl{
		pool: pool,
	}
}

const accountColumns = `id, username, email, first_name, last_name, gender, role,
	is_active, is_staff, is_admin, password_hash, forget_password_token::text,
	date_joined, last_login`

func scanAccount(row rowScanner) (*model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.FirstName,
		&account.LastName,
		&account.Gender,
		&account.Role,
		&account.IsActive,
		&account.IsStaff,
		&account.IsAdmin,
		&account.PasswordHash,
		&account.ForgetPasswordToken,
		&account.DateJoined,
		&account.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	query := `
		INSERT INTO accounts (
			username, email, first_name, last_name, gender, role,
			is_active, is_staff, is_admin, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + accountColumns

	created, err := scanAccount(r.pool.QueryRow(ctx, query,
		account.Username, account.Email, account.FirstName, account.LastName,
		account.Gender, account.Role, account.IsActive, account.IsStaff,
		account.IsAdmin, account.PasswordHash,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return created, nil
}

func (r *AccountRepositoryImpl) List(ctx context.Context, filter AccountFilter) ([]*model.Account, error) {
	conds := []string{}
	args := []interface{}{}

	if !filter.IncludeInactive {
		conds = append(conds, "is_active")
	}
	if filter.Username != "" {
		args = append(args, filter.Username)
		conds = append(conds, fmt.Sprintf("username = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts
		%s
		ORDER BY id
	`, accountColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*model.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *AccountRepositoryImpl) findOne(ctx context.Context, where string, arg interface{}) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where

	account, err := scanAccount(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// FindByID also returns deactivated accounts; callers decide visibility.
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Account, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *AccountRepositoryImpl) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.findOne(ctx, "username = $1", username)
}

func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.findOne(ctx, "lower(email) = lower($1) AND is_active ORDER BY id LIMIT 1", email)
}

func (r *AccountRepositoryImpl) FindByResetToken(ctx context.Context, token uuid.UUID) (*model.Account, error) {
	account, err := r.findOne(ctx, "forget_password_token = $1", token)
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, apperrors.ErrResetTokenNotFound
	}
	return account, err
}

func (r *AccountRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Email != nil {
		add("email", strings.ToLower(*params.Email))
	}
	if params.FirstName != nil {
		add("first_name", *params.FirstName)
	}
	if params.LastName != nil {
		add("last_name", *params.LastName)
	}
	if params.Gender != nil {
		add("gender", *params.Gender)
	}
	if params.Role != nil {
		add("role", *params.Role)
		add("is_staff", *params.Role == model.RoleOrganizer || *params.Role == model.RoleAdmin)
		add("is_admin", *params.Role == model.RoleAdmin)
	}
	if params.IsActive != nil {
		add("is_active", *params.IsActive)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE accounts
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, accountColumns)

	account, err := scanAccount(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

func (r *AccountRepositoryImpl) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// SetPassword stores a new hash and invalidates any outstanding reset token.
func (r *AccountRepositoryImpl) SetPassword(ctx context.Context, id int, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE accounts
		SET password_hash = $1, forget_password_token = NULL
		WHERE id = $2
	`, passwordHash, id)
}

func (r *AccountRepositoryImpl) SetResetToken(ctx context.Context, id int, token uuid.UUID) error {
	return r.exec(ctx, `UPDATE accounts SET forget_password_token = $1 WHERE id = $2`, token, id)
}

func (r *AccountRepositoryImpl) TouchLastLogin(ctx context.Context, id int) error {
	return r.exec(ctx, `UPDATE accounts SET last_login = $1 WHERE id = $2`, time.Now().UTC(), id)
}

// Delete deactivates the account; the row is kept.
func (r *AccountRepositoryImpl) Delete(ctx context.Context, id int) error {
	return r.exec(ctx, `UPDATE accounts SET is_active = FALSE WHERE id = $1 AND is_active`, id)
}
