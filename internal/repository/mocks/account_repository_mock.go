package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) account(args mock.Arguments) (*model.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	return m.account(m.Called(ctx, account))
}

func (m *MockAccountRepository) List(ctx context.Context, filter repository.AccountFilter) ([]*model.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int) (*model.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	return m.account(m.Called(ctx, username))
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return m.account(m.Called(ctx, email))
}

func (m *MockAccountRepository) FindByResetToken(ctx context.Context, token uuid.UUID) (*model.Account, error) {
	return m.account(m.Called(ctx, token))
}

func (m *MockAccountRepository) Update(ctx context.Context, id int, params model.UpdateAccountParams) (*model.Account, error) {
	return m.account(m.Called(ctx, id, params))
}

func (m *MockAccountRepository) SetPassword(ctx context.Context, id int, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockAccountRepository) SetResetToken(ctx context.Context, id int, token uuid.UUID) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockAccountRepository) TouchLastLogin(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
