package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyseat/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, review *Review) error
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]Review, error)
	GetByUserAndShop(ctx context.Context, userID, shopID uuid.UUID) (*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.InvalidState("user has already reviewed this shop")
		}
		return apperrors.Persistence("creating review", err)
	}
	return nil
}

func (r *repository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperrors.Persistence("listing reviews", err)
	}
	return reviews, nil
}

func (r *repository) GetByUserAndShop(ctx context.Context, userID, shopID uuid.UUID) (*Review, error) {
	var review Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Persistence("loading review", err)
	}
	return &review, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Review{})
	if result.Error != nil {
		return apperrors.Persistence("deleting review", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("review %s not found", id)
	}
	return nil
}
