package service

import (
	"context"

	"go-gin-event-ticketing/internal/authz"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/repository"
	apperrors "go-gin-event-ticketing/pkg/app_errors"
)

type WishlistService interface {
	List(ctx context.Context, p *authz.Principal) ([]*model.Wishlist, error)
	Add(ctx context.Context, p *authz.Principal, req model.CreateWishlistRequest) (*model.Wishlist, error)
	Remove(ctx context.Context, p *authz.Principal, id int) error
}

type WishlistServiceImpl struct {
	repo   repository.WishlistRepository
	events repository.EventRepository
}

func NewWishlistService(repo repository.WishlistRepository, events repository.EventRepository) WishlistService {
	return &WishlistServiceImpl{repo: repo, events: events}
}

func (s *WishlistServiceImpl) List(ctx context.Context, p *authz.Principal) ([]*model.Wishlist, error) {
	if err := authz.Can(p, authz.WishlistList, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.repo.ListByAccount(ctx, p.AccountID)
}

func (s *WishlistServiceImpl) Add(ctx context.Context, p *authz.Principal, req model.CreateWishlistRequest) (*model.Wishlist, error) {
	if err := authz.Can(p, authz.WishlistCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	event, err := s.events.FindByID(ctx, req.Event)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, apperrors.ErrEventInactive
	}

	return s.repo.Create(ctx, p.AccountID, event.ID)
}

func (s *WishlistServiceImpl) Remove(ctx context.Context, p *authz.Principal, id int) error {
	if p == nil {
		return apperrors.ErrUnauthenticated
	}
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Can(p, authz.WishlistDelete, authz.Resource{OwnerID: entry.CreatedBy}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
