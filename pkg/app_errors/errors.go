package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
	ErrAlreadyExists       = errors.New("already exists")

	// auth
	ErrUnauthenticated    = errors.New("authentication credentials were not provided or are invalid")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrResetTokenNotFound = errors.New("password reset token not found")

	ErrEventNotFound = errors.New("event not found")
	ErrEventInactive = errors.New("invalid event")
	ErrEventInPast   = errors.New("date must be greater than or equal to today")

	ErrTicketTypeNotFound      = errors.New("ticket type not found")
	ErrEventTicketTypeNotFound = errors.New("ticket type not offered for this event")
	ErrNoTicketsAvailable      = errors.New("no ticket available for this event")
	ErrInsufficientInventory   = errors.New("insufficient inventory")

	ErrTicketNotFound         = errors.New("ticket not found")
	ErrTicketAlreadyCheckedIn = errors.New("ticket already checked in")
	ErrTicketArchived         = errors.New("ticket is archived")

	ErrWishlistNotFound  = errors.New("wishlist entry not found")
	ErrAlreadyWishlisted = errors.New("event already in wishlist")
)

// detailError keeps the sentinel for errors.Is and replaces the client facing message.
type detailError struct {
	err error
	msg string
}

func (e *detailError) Error() string { return e.msg }

func (e *detailError) Unwrap() error { return e.err }

// WithDetail wraps a sentinel with a message meant for the API response.
func WithDetail(err error, format string, args ...interface{}) error {
	return &detailError{err: err, msg: fmt.Sprintf(format, args...)}
}

// Message returns the detail attached with WithDetail, or fallback's text.
func Message(err error, fallback error) string {
	var d *detailError
	if errors.As(err, &d) {
		return d.msg
	}
	return fallback.Error()
}
