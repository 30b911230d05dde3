package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockRevocationStore struct {
	mock.Mock
}

func NewMockRevocationStore(t *testing.T) *MockRevocationStore {
	m := &MockRevocationStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}
