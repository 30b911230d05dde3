package service

import (
	"context"
	"errors"
	"time"

	"go-gin-event-ticketing/internal/auth"
	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the current state of its account.
	Authenticate(ctx context.Context, token string) (*authz.Principal, error)
}

type AuthServiceImpl struct {
	accounts repository.AccountRepository
	tokens   auth.TokenManager
	revoked  auth.RevocationStore
	hasher   auth.PasswordHasher
}

func NewAuthService(
	accounts repository.AccountRepository,
	tokens auth.TokenManager,
	revoked auth.RevocationStore,
	hasher auth.PasswordHasher,
) AuthService {
	return &AuthServiceImpl{
		accounts: accounts,
		tokens:   tokens,
		revoked:  revoked,
		hasher:   hasher,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	account, err := s.accounts.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, claims, err := s.tokens.Issue(account)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.TouchLastLogin(ctx, account.ID); err != nil {
		logger.WithComponent("service").Warn("failed to update last login",
			zap.Int("account_id", account.ID), zap.Error(err))
	}

	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   account,
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	return s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

func (s *AuthServiceImpl) Authenticate(ctx context.Context, token string) (*authz.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	return &authz.Principal{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	}, nil
}
