package mocks

import (
	"context"
	"testing"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

func NewMockAccountService(t *testing.T) *MockAccountService {
	m := &MockAccountService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountService) account(args mock.Arguments) (*model.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) Register(ctx context.Context, p *authz.Principal, req model.CreateAccountRequest) (*model.Account, error) {
	return m.account(m.Called(ctx, p, req))
}

func (m *MockAccountService) List(ctx context.Context, p *authz.Principal, username string) ([]*model.Account, error) {
	args := m.Called(ctx, p, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, p *authz.Principal, id int) (*model.Account, error) {
	return m.account(m.Called(ctx, p, id))
}

func (m *MockAccountService) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateAccountRequest) (*model.Account, error) {
	return m.account(m.Called(ctx, p, id, req))
}

func (m *MockAccountService) Delete(ctx context.Context, p *authz.Principal, id int) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockAccountService) ChangePassword(ctx context.Context, p *authz.Principal, req model.ChangePasswordRequest) error {
	return m.Called(ctx, p, req).Error(0)
}

func (m *MockAccountService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAccountService) ResetPassword(ctx context.Context, token string, req model.ResetPasswordRequest) error {
	return m.Called(ctx, token, req).Error(0)
}
