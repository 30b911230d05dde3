package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockWishlistRepository struct {
	mock.Mock
}

func NewMockWishlistRepository(t *testing.T) *MockWishlistRepository {
	m := &MockWishlistRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWishlistRepository) Create(ctx context.Context, accountID, eventID int) (*model.Wishlist, error) {
	args := m.Called(ctx, accountID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) ListByAccount(ctx context.Context, accountID int) ([]*model.Wishlist, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) FindByID(ctx context.Context, id int) (*model.Wishlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
