package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/service/mocks"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAuthTestRouter(t *testing.T) (*gin.Engine, *mocks.MockAuthService) {
	gin.SetMode(gin.TestMode)
	mockAuth := mocks.NewMockAuthService(t)
	router := gin.New()
	router.Use(Authenticate(mockAuth))
	router.GET("/whoami", func(c *gin.Context) {
		if p := principal(c); p != nil {
			c.JSON(http.StatusOK, gin.H{"username": p.Username})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": ""})
	})
	router.GET("/me", func(c *gin.Context) {
		if err := authz.Can(principal(c), authz.TicketList, authz.Resource{}); err != nil {
			respondError(c, err, "Me")
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": principal(c).Username})
	})
	return router, mockAuth
}

func TestAuthenticate(t *testing.T) {
	t.Run("No header is anonymous", func(t *testing.T) {
		router, mockAuth := setupAuthTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/whoami", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":""}`, w.Body.String())
		mockAuth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("Bearer token sets the principal", func(t *testing.T) {
		router, mockAuth := setupAuthTestRouter(t)
		mockAuth.On("Authenticate", mock.Anything, "abc").Return(&authz.Principal{AccountID: 7, Username: "carol"}, nil).Once()

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"carol"}`, w.Body.String())
	})

	t.Run("Token scheme is accepted", func(t *testing.T) {
		router, mockAuth := setupAuthTestRouter(t)
		mockAuth.On("Authenticate", mock.Anything, "abc").Return(&authz.Principal{AccountID: 7, Username: "carol"}, nil).Once()

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Revoked token is anonymous on public routes", func(t *testing.T) {
		router, mockAuth := setupAuthTestRouter(t)
		mockAuth.On("Authenticate", mock.Anything, "abc").Return(nil, apperrors.ErrTokenRevoked).Once()

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":""}`, w.Body.String())
	})

	t.Run("Revoked token is reported on protected routes", func(t *testing.T) {
		router, mockAuth := setupAuthTestRouter(t)
		mockAuth.On("Authenticate", mock.Anything, "abc").Return(nil, apperrors.ErrTokenRevoked).Once()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"token revoked"}`, w.Body.String())
	})

	t.Run("Missing token on protected routes", func(t *testing.T) {
		router, _ := setupAuthTestRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"`+apperrors.ErrUnauthenticated.Error()+`"}`, w.Body.String())
	})

	t.Run("Unknown scheme is anonymous", func(t *testing.T) {
		router, mockAuth := setupAuthTestRouter(t)
		mockAuth.On("Authenticate", mock.Anything, "").Return(nil, apperrors.ErrInvalidToken).Once()

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Revocation store failure is not anonymous", func(t *testing.T) {
		router, mockAuth := setupAuthTestRouter(t)
		mockAuth.On("Authenticate", mock.Anything, "abc").Return(nil, errors.New("redis down")).Once()

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
