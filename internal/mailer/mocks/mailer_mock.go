package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/mailer"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMailer) Send(ctx context.Context, email mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}
