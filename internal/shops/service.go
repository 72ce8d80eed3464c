package shops

import (
	"context"

	"github.com/google/uuid"

	"studyseat/internal/shared/apperrors"
	"studyseat/internal/shared/constants"
	"studyseat/internal/timeslot"
	"studyseat/pkg/cache"
	"studyseat/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, req CreateShopRequest) (*Shop, error)
	Get(ctx context.Context, id uuid.UUID) (*Shop, error)
	List(ctx context.Context) ([]Shop, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateShopRequest) (*Shop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService builds the shop service. cacheService may be nil; browsing then
// always reads the store directly.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) Create(ctx context.Context, req CreateShopRequest) (*Shop, error) {
	if _, err := timeslot.ParseClock(req.OpenTime); err != nil {
		return nil, apperrors.Validation("invalid open_time %q", req.OpenTime)
	}
	if _, err := timeslot.ParseClock(req.CloseTime); err != nil {
		return nil, apperrors.Validation("invalid close_time %q", req.CloseTime)
	}

	shop := &Shop{
		Name:         req.Name,
		Address:      req.Address,
		Description:  req.Description,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		PricePerHour: req.PricePerHour,
		Visible:      true,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}

	s.invalidate(ctx, shop.ID)
	return shop, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Shop, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var shop Shop
	err := s.cache.GetOrSet(ctx, constants.CacheKeyShopDetail(id.String()), constants.TTLShopDetail,
		func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &shop)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (s *service) List(ctx context.Context) ([]Shop, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}

	var shops []Shop
	err := s.cache.GetOrSet(ctx, constants.CacheKeyShopList, constants.TTLShopList,
		func() (interface{}, error) {
			return s.repo.List(ctx)
		}, &shops)
	if err != nil {
		return nil, err
	}
	return shops, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateShopRequest) (*Shop, error) {
	shop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.OpenTime != nil {
		if _, err := timeslot.ParseClock(*req.OpenTime); err != nil {
			return nil, apperrors.Validation("invalid open_time %q", *req.OpenTime)
		}
		shop.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		if _, err := timeslot.ParseClock(*req.CloseTime); err != nil {
			return nil, apperrors.Validation("invalid close_time %q", *req.CloseTime)
		}
		shop.CloseTime = *req.CloseTime
	}
	if req.PricePerHour != nil {
		shop.PricePerHour = *req.PricePerHour
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return shop, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Hide(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	err := s.cache.Delete(ctx, constants.CacheKeyShopList, constants.CacheKeyShopDetail(id.String()))
	if err != nil {
		logger.GetDefault().WithError(err).Warn("shop cache invalidation failed", "shop_id", id.String())
	}
}
