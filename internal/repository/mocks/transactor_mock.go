package mocks

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockTransactor runs fn with a nil tx unless an expectation returns an error first.
type MockTransactor struct {
	mock.Mock
}

func NewMockTransactor(t *testing.T) *MockTransactor {
	m := &MockTransactor{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactor) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}
