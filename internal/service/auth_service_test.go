package service_test

import (
	"context"
	"testing"
	"time"

	"go-gin-event-ticketing/internal/auth"
	authMocks "go-gin-event-ticketing/internal/auth/mocks"
	"go-gin-event-ticketing/internal/model"
	repoMocks "go-gin-event-ticketing/internal/repository/mocks"
	"go-gin-event-ticketing/internal/service"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthService(t *testing.T) (service.AuthService, *repoMocks.MockAccountRepository, *authMocks.MockRevocationStore) {
	accounts := repoMocks.NewMockAccountRepository(t)
	revoked := authMocks.NewMockRevocationStore(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour, "event-ticketing-test")
	return service.NewAuthService(accounts, tokens, revoked, auth.NewBcryptHasher(bcrypt.MinCost)), accounts, revoked
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	account := &model.Account{ID: 7, Username: "carol", Role: model.RoleAttendee, IsActive: true, PasswordHash: hashOf(t, "secret")}

	t.Run("Success", func(t *testing.T) {
		svc, accounts, _ := setupAuthService(t)
		accounts.On("FindByUsername", ctx, "carol").Return(account, nil).Once()
		accounts.On("TouchLastLogin", ctx, 7).Return(nil).Once()

		resp, err := svc.Login(ctx, model.LoginRequest{Username: "carol", Password: "secret"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
		assert.Equal(t, 7, resp.Account.ID)
	})

	t.Run("Failed - wrong password", func(t *testing.T) {
		svc, accounts, _ := setupAuthService(t)
		accounts.On("FindByUsername", ctx, "carol").Return(account, nil).Once()

		_, err := svc.Login(ctx, model.LoginRequest{Username: "carol", Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failed - unknown user", func(t *testing.T) {
		svc, accounts, _ := setupAuthService(t)
		accounts.On("FindByUsername", ctx, "ghost").Return(nil, apperrors.ErrAccountNotFound).Once()

		_, err := svc.Login(ctx, model.LoginRequest{Username: "ghost", Password: "secret"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failed - deactivated account", func(t *testing.T) {
		svc, accounts, _ := setupAuthService(t)
		inactive := *account
		inactive.IsActive = false
		accounts.On("FindByUsername", ctx, "carol").Return(&inactive, nil).Once()

		_, err := svc.Login(ctx, model.LoginRequest{Username: "carol", Password: "secret"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	account := &model.Account{ID: 7, Username: "carol", Role: model.RoleAttendee, IsActive: true, PasswordHash: hashOf(t, "secret")}

	login := func(t *testing.T, svc service.AuthService, accounts *repoMocks.MockAccountRepository) string {
		t.Helper()
		accounts.On("FindByUsername", ctx, "carol").Return(account, nil).Once()
		accounts.On("TouchLastLogin", ctx, 7).Return(nil).Once()
		resp, err := svc.Login(ctx, model.LoginRequest{Username: "carol", Password: "secret"})
		require.NoError(t, err)
		return resp.Token
	}

	t.Run("Role comes from the current account", func(t *testing.T) {
		svc, accounts, revoked := setupAuthService(t)
		token := login(t, svc, accounts)

		promoted := *account
		promoted.Role = model.RoleOrganizer
		revoked.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
		accounts.On("FindByID", ctx, 7).Return(&promoted, nil).Once()

		p, err := svc.Authenticate(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, 7, p.AccountID)
		assert.Equal(t, model.RoleOrganizer, p.Role)
	})

	t.Run("Failed - revoked", func(t *testing.T) {
		svc, accounts, revoked := setupAuthService(t)
		token := login(t, svc, accounts)
		revoked.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()

		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	})

	t.Run("Failed - deactivated since login", func(t *testing.T) {
		svc, accounts, revoked := setupAuthService(t)
		token := login(t, svc, accounts)
		inactive := *account
		inactive.IsActive = false
		revoked.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
		accounts.On("FindByID", ctx, 7).Return(&inactive, nil).Once()

		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
	})

	t.Run("Failed - garbage token", func(t *testing.T) {
		svc, _, _ := setupAuthService(t)
		_, err := svc.Authenticate(ctx, "not.a.token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, accounts, revoked := setupAuthService(t)

	account := &model.Account{ID: 7, Username: "carol", IsActive: true, PasswordHash: hashOf(t, "secret")}
	accounts.On("FindByUsername", ctx, "carol").Return(account, nil).Once()
	accounts.On("TouchLastLogin", ctx, 7).Return(nil).Once()
	resp, err := svc.Login(ctx, model.LoginRequest{Username: "carol", Password: "secret"})
	require.NoError(t, err)

	revoked.On("Revoke", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Hour
	})).Return(nil).Once()

	assert.NoError(t, svc.Logout(ctx, resp.Token))
}
