package service

import (
	"context"
	"strings"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
)

type TicketTypeService interface {
	List(ctx context.Context, p *authz.Principal) ([]*model.TicketType, error)
	Get(ctx context.Context, p *authz.Principal, id int) (*model.TicketType, error)
	Create(ctx context.Context, p *authz.Principal, req model.CreateTicketTypeRequest) (*model.TicketType, error)
	Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateTicketTypeRequest) (*model.TicketType, error)
	Delete(ctx context.Context, p *authz.Principal, id int) error
}

type TicketTypeServiceImpl struct {
	repo repository.TicketTypeRepository
}

func NewTicketTypeService(repo repository.TicketTypeRepository) TicketTypeService {
	return &TicketTypeServiceImpl{repo: repo}
}

func (s *TicketTypeServiceImpl) List(ctx context.Context, p *authz.Principal) ([]*model.TicketType, error) {
	if err := authz.Can(p, authz.TicketTypeList, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *TicketTypeServiceImpl) Get(ctx context.Context, p *authz.Principal, id int) (*model.TicketType, error) {
	if err := authz.Can(p, authz.TicketTypeRead, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *TicketTypeServiceImpl) Create(ctx context.Context, p *authz.Principal, req model.CreateTicketTypeRequest) (*model.TicketType, error) {
	if err := authz.Can(p, authz.TicketTypeCreate, authz.Resource{}); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "name is required")
	}
	return s.repo.Create(ctx, name)
}

func (s *TicketTypeServiceImpl) Update(ctx context.Context, p *authz.Principal, id int, req model.UpdateTicketTypeRequest) (*model.TicketType, error) {
	if err := authz.Can(p, authz.TicketTypeUpdate, authz.Resource{}); err != nil {
		return nil, err
	}
	params := model.UpdateTicketTypeParams{IsActive: req.IsActive}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "name must not be blank")
		}
		params.Name = &name
	}
	if params.Name == nil && params.IsActive == nil {
		return nil, apperrors.WithDetail(apperrors.ErrInvalidInput, "no fields to update")
	}
	return s.repo.Update(ctx, id, params)
}

func (s *TicketTypeServiceImpl) Delete(ctx context.Context, p *authz.Principal, id int) error {
	if err := authz.Can(p, authz.TicketTypeDelete, authz.Resource{}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
