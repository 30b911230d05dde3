package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockWishlistService struct {
	mock.Mock
}

func NewMockWishlistService(t *testing.T) *MockWishlistService {
	m := &MockWishlistService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWishlistService) List(ctx context.Context, p *authz.Principal) ([]*model.Wishlist, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Wishlist), args.Error(1)
}

func (m *MockWishlistService) Add(ctx context.Context, p *authz.Principal, req model.CreateWishlistRequest) (*model.Wishlist, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wishlist), args.Error(1)
}

func (m *MockWishlistService) Remove(ctx context.Context, p *authz.Principal, id int) error {
	return m.Called(ctx, p, id).Error(0)
}
