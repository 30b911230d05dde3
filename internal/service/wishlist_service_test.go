package service_test

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"
	repoMocks "go-gin-event-ticketing/internal/repository/mocks"
	"go-gin-event-ticketing/internal/service"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (service.WishlistService, *repoMocks.MockWishlistRepository, *repoMocks.MockEventRepository) {
		repo := repoMocks.NewMockWishlistRepository(t)
		events := repoMocks.NewMockEventRepository(t)
		return service.NewWishlistService(repo, events), repo, events
	}

	t.Run("Add", func(t *testing.T) {
		svc, repo, events := setup(t)
		events.On("FindByID", ctx, 1).Return(&model.Event{ID: 1, IsActive: true}, nil).Once()
		repo.On("Create", ctx, 7, 1).Return(&model.Wishlist{ID: 3, EventID: 1, CreatedBy: 7}, nil).Once()

		entry, err := svc.Add(ctx, customer, model.CreateWishlistRequest{Event: 1})

		require.NoError(t, err)
		assert.Equal(t, 3, entry.ID)
	})

	t.Run("Add - inactive event", func(t *testing.T) {
		svc, _, events := setup(t)
		events.On("FindByID", ctx, 1).Return(&model.Event{ID: 1, IsActive: false}, nil).Once()

		_, err := svc.Add(ctx, customer, model.CreateWishlistRequest{Event: 1})
		assert.ErrorIs(t, err, apperrors.ErrEventInactive)
	})

	t.Run("Add - already wishlisted", func(t *testing.T) {
		svc, repo, events := setup(t)
		events.On("FindByID", ctx, 1).Return(&model.Event{ID: 1, IsActive: true}, nil).Once()
		repo.On("Create", ctx, 7, 1).Return(nil, apperrors.ErrAlreadyWishlisted).Once()

		_, err := svc.Add(ctx, customer, model.CreateWishlistRequest{Event: 1})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyWishlisted)
	})

	t.Run("Remove - someone else's entry", func(t *testing.T) {
		svc, repo, _ := setup(t)
		repo.On("FindByID", ctx, 3).Return(&model.Wishlist{ID: 3, EventID: 1, CreatedBy: 99}, nil).Once()

		err := svc.Remove(ctx, customer, 3)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Remove - own entry", func(t *testing.T) {
		svc, repo, _ := setup(t)
		repo.On("FindByID", ctx, 3).Return(&model.Wishlist{ID: 3, EventID: 1, CreatedBy: 7}, nil).Once()
		repo.On("Delete", ctx, 3).Return(nil).Once()

		assert.NoError(t, svc.Remove(ctx, customer, 3))
	})

	t.Run("List - anonymous", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.List(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
