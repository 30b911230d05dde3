package handler

import (
	"errors"
	"strings"
	"time"

	"go-gin-event-ticketing/internal/service"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger writes one line per request.
func RequestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// bearerToken accepts "Bearer <jwt>" and "Token <jwt>".
func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found {
		return "", true
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		return strings.TrimSpace(token), true
	}
	return "", true
}

// Authenticate sets the principal when a valid token is present. Requests
// without a usable token continue anonymous, so public routes still answer;
// the token error is kept and reported by any route that needs a caller.
func Authenticate(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			c.Next()
			return
		}

		p, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !isTokenError(err) {
				respondError(c, err, "Authenticate")
				c.Abort()
				return
			}
			c.Set(authErrorKey, err)
			c.Next()
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

func isTokenError(err error) bool {
	for _, e := range []error{
		apperrors.ErrInvalidToken,
		apperrors.ErrTokenExpired,
		apperrors.ErrTokenRevoked,
		apperrors.ErrAccountInactive,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
