package reviews

import (
	"context"

	"github.com/google/uuid"

	"studyseat/internal/orders"
	"studyseat/internal/shared/apperrors"
)

type Service interface {
	Create(ctx context.Context, userID, shopID uuid.UUID, req CreateReviewRequest) (*Review, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      Repository
	orderRepo orders.Repository
}

func NewService(repo Repository, orderRepo orders.Repository) Service {
	return &service{repo: repo, orderRepo: orderRepo}
}

func (s *service) Create(ctx context.Context, userID, shopID uuid.UUID, req CreateReviewRequest) (*Review, error) {
	eligible, err := s.orderRepo.HasCompletedOrder(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, apperrors.InvalidState("reviews require a completed order at this shop")
	}

	existing, err := s.repo.GetByUserAndShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.InvalidState("user has already reviewed this shop")
	}

	review := &Review{
		UserID:  userID,
		ShopID:  shopID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *service) ListByShop(ctx context.Context, shopID uuid.UUID) ([]Review, error) {
	return s.repo.ListByShop(ctx, shopID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
