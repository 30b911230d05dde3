package service

import (
	"context"
	"errors"
	"strings"

	"go-gin-event-ticketing/internal/auth"
	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/mailer"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	Register(ctx context.Context, p *authz.Principal, req model.CreateAccountRequest) (*model.Account, error)
	List(ctx context.Context, p *authz.Principal, username string) ([]*model.Account, error)
	Get(ctx context.Context, p *authz.Principal, id int) (*model.Account, error)
	Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateAccountRequest) (*model.Account, error)
	Delete(ctx context.Context, p *authz.Principal, id int) error
	ChangePassword(ctx context.Context, p *authz.Principal, req model.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, token string, req model.ResetPasswordRequest) error
}

type AccountServiceImpl struct {
	repo   repository.AccountRepository
	hasher auth.PasswordHasher
	mailer mailer.Mailer
}

func NewAccountService(repo repository.AccountRepository, hasher auth.PasswordHasher, m mailer.Mailer) AccountService {
	return &AccountServiceImpl{
		repo:   repo,
		hasher: hasher,
		mailer: m,
	}
}

func (s *AccountServiceImpl) Register(ctx context.Context, p *authz.Principal, req model.CreateAccountRequest) (*model.Account, error) {
	if err := authz.Can(p, authz.AccountCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleOthers
	}
	if !role.IsValid() {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "%q is not a valid role", role)
	}
	if role == model.RoleAdmin {
		if err := authz.Can(p, authz.AccountAssignRole, authz.Resource{}); err != nil {
			return nil, err
		}
	}
	if !req.Gender.IsValid() {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "%q is not a valid gender", req.Gender)
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "username is required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		Role:         role,
		IsActive:     true,
		PasswordHash: hash,
	}
	account.ApplyRoleFlags()

	return s.repo.Create(ctx, account)
}

func (s *AccountServiceImpl) List(ctx context.Context, p *authz.Principal, username string) ([]*model.Account, error) {
	if err := authz.Can(p, authz.AccountList, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, repository.AccountFilter{Username: strings.TrimSpace(username)})
}

func (s *AccountServiceImpl) Get(ctx context.Context, p *authz.Principal, id int) (*model.Account, error) {
	if err := authz.Can(p, authz.AccountRead, authz.Resource{AccountID: id}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *AccountServiceImpl) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateAccountRequest) (*model.Account, error) {
	if err := authz.Can(p, authz.AccountUpdate, authz.Resource{AccountID: id}); err != nil {
		return nil, err
	}
	// role and activation are administrative
	if req.Role != nil || req.IsActive != nil {
		if err := authz.Can(p, authz.AccountAssignRole, authz.Resource{}); err != nil {
			return nil, err
		}
	}
	if req.Role != nil && !req.Role.IsValid() {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "%q is not a valid role", *req.Role)
	}
	if req.Gender != nil && !req.Gender.IsValid() {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "%q is not a valid gender", *req.Gender)
	}

	params := model.UpdateAccountParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Role:      req.Role,
		IsActive:  req.IsActive,
	}
	if params.IsEmpty() {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "no fields to update")
	}

	return s.repo.Update(ctx, id, params)
}

func (s *AccountServiceImpl) Delete(ctx context.Context, p *authz.Principal, id int) error {
	if err := authz.Can(p, authz.AccountDelete, authz.Resource{AccountID: id}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *AccountServiceImpl) ChangePassword(ctx context.Context, p *authz.Principal, req model.ChangePasswordRequest) error {
	if err := authz.Can(p, authz.AccountChangePassword, authz.Resource{}); err != nil {
		return err
	}

	account, err := s.repo.FindByID(ctx, p.AccountID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(account.PasswordHash, req.OldPassword); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return apperrors.WithDetail(apperrors.ErrInvalidInput, "wrong password")
		}
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, account.ID, hash)
}

// ForgotPassword never reports whether the email is known.
func (s *AccountServiceImpl) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	log := logger.WithComponent("service").With(zap.String("operation", "ForgotPassword"))

	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			log.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.New()
	if err := s.repo.SetResetToken(ctx, account.ID, token); err != nil {
		return err
	}

	email := mailer.PasswordResetEmail(account.Email, account.FullName(), token.String())
	if err := s.mailer.Send(ctx, email); err != nil {
		log.Warn("failed to send password reset email", zap.Int("account_id", account.ID), zap.Error(err))
	}
	return nil
}

func (s *AccountServiceImpl) ResetPassword(ctx context.Context, token string, req model.ResetPasswordRequest) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return apperrors.ErrResetTokenNotFound
	}

	account, err := s.repo.FindByResetToken(ctx, parsed)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	return s.repo.SetPassword(ctx, account.ID, hash)
}
