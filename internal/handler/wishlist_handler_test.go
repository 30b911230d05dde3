package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/service/mocks"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupWishlistTestRouter(t *testing.T, p *authz.Principal) (*gin.Engine, *mocks.MockWishlistService) {
	mockService := mocks.NewMockWishlistService(t)
	router := newTestRouter(p)
	NewWishlistHandler(mockService).RegisterRoutes(router)
	return router, mockService
}

func TestAddToWishlist(t *testing.T) {
	req := model.CreateWishlistRequest{Event: 4}

	t.Run("Success", func(t *testing.T) {
		router, mockService := setupWishlistTestRouter(t, customerCaller)
		mockService.On("Add", mock.Anything, customerCaller, req).
			Return(&model.Wishlist{ID: 1, CreatedBy: 7, EventID: 4}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest("POST", "/api/v1/wishlist", req))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed - duplicate", func(t *testing.T) {
		router, mockService := setupWishlistTestRouter(t, customerCaller)
		mockService.On("Add", mock.Anything, customerCaller, req).Return(nil, apperrors.ErrAlreadyWishlisted).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest("POST", "/api/v1/wishlist", req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrAlreadyWishlisted.Error(), decodeError(t, w.Body.Bytes()))
	})

	t.Run("Failed - missing event", func(t *testing.T) {
		router, mockService := setupWishlistTestRouter(t, customerCaller)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest("POST", "/api/v1/wishlist", `{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWishlistListAndRemove(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		router, mockService := setupWishlistTestRouter(t, customerCaller)
		mockService.On("List", mock.Anything, customerCaller).Return([]*model.Wishlist{{ID: 1, EventID: 4}}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest("GET", "/api/v1/wishlist", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Remove someone else's entry", func(t *testing.T) {
		router, mockService := setupWishlistTestRouter(t, customerCaller)
		mockService.On("Remove", mock.Anything, customerCaller, 3).Return(apperrors.ErrForbidden).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest("DELETE", "/api/v1/wishlist/3", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Remove", func(t *testing.T) {
		router, mockService := setupWishlistTestRouter(t, customerCaller)
		mockService.On("Remove", mock.Anything, customerCaller, 1).Return(nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, createJSONHTTPRequest("DELETE", "/api/v1/wishlist/1", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
