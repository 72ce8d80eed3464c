package shops

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyseat/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, shop *Shop) error
	GetByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	List(ctx context.Context) ([]Shop, error)
	Update(ctx context.Context, shop *Shop) error
	Hide(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, shop *Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Shop, error) {
	var shop Shop
	err := r.db.WithContext(ctx).
		Where("id = ? AND visible = ?", id, true).
		First(&shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("shop %s not found", id)
		}
		return nil, err
	}
	return &shop, nil
}

func (r *repository) List(ctx context.Context) ([]Shop, error) {
	var shops []Shop
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("created_at DESC").
		Find(&shops).Error
	return shops, err
}

func (r *repository) Update(ctx context.Context, shop *Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// Hide soft-deletes the shop; rows stay for order history.
func (r *repository) Hide(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Shop{}).
		Where("id = ?", id).
		Update("visible", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("shop %s not found", id)
	}
	return nil
}
