package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-gin-event-ticketing/internal/authz"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// BindID reads a positive integer path parameter.
func BindID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

const (
	principalKey = "principal"
	authErrorKey = "auth_error"
)

// principal returns the caller set by the auth middleware, nil when anonymous.
func principal(c *gin.Context) *authz.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*authz.Principal)
	return p
}

func viewerID(c *gin.Context) int {
	if p := principal(c); p != nil {
		return p.AccountID
	}
	return 0
}

// errorStatus maps sentinels to HTTP status codes. First match wins.
var errorStatus = []struct {
	err    error
	status int
}{
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized},
	{apperrors.ErrAccountInactive, http.StatusUnauthorized},

	{apperrors.ErrForbidden, http.StatusForbidden},

	{apperrors.ErrAccountNotFound, http.StatusNotFound},
	{apperrors.ErrResetTokenNotFound, http.StatusNotFound},
	{apperrors.ErrEventNotFound, http.StatusNotFound},
	{apperrors.ErrTicketTypeNotFound, http.StatusNotFound},
	{apperrors.ErrEventTicketTypeNotFound, http.StatusNotFound},
	{apperrors.ErrTicketNotFound, http.StatusNotFound},
	{apperrors.ErrWishlistNotFound, http.StatusNotFound},

	{apperrors.ErrInvalidInput, http.StatusBadRequest},
	{apperrors.ErrAlreadyExists, http.StatusBadRequest},
	{apperrors.ErrUsernameTaken, http.StatusBadRequest},
	{apperrors.ErrEventInactive, http.StatusBadRequest},
	{apperrors.ErrEventInPast, http.StatusBadRequest},
	{apperrors.ErrNoTicketsAvailable, http.StatusBadRequest},
	{apperrors.ErrInsufficientInventory, http.StatusBadRequest},
	{apperrors.ErrTicketAlreadyCheckedIn, http.StatusBadRequest},
	{apperrors.ErrTicketArchived, http.StatusBadRequest},
	{apperrors.ErrAlreadyWishlisted, http.StatusBadRequest},
}

func respondError(c *gin.Context, err error, operation string) {
	// an anonymous caller that sent a bad token hears why it was refused
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		if tokenErr, ok := c.Get(authErrorKey); ok {
			err = tokenErr.(error)
		}
	}

	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			msg := apperrors.Message(err, e.err)
			log.Warn(msg, zap.Int("status", e.status))
			c.JSON(e.status, gin.H{
				"error": msg,
			})
			return
		}
	}

	log.Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}

func respond(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
