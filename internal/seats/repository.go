package seats

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyseat/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, seat *Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, zone string) ([]Seat, error)
	Update(ctx context.Context, seat *Seat) error
	Hide(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, seat *Seat) error {
	return r.db.WithContext(ctx).Create(seat).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).
		Where("id = ? AND visible = ?", id, true).
		First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("seat %s not found", id)
		}
		return nil, err
	}
	return &seat, nil
}

func (r *repository) ListByShop(ctx context.Context, shopID uuid.UUID, zone string) ([]Seat, error) {
	query := r.db.WithContext(ctx).
		Where("shop_id = ? AND visible = ?", shopID, true)
	if zone != "" {
		query = query.Where("zone = ?", zone)
	}

	var seats []Seat
	err := query.Order("zone, label").Find(&seats).Error
	return seats, err
}

func (r *repository) Update(ctx context.Context, seat *Seat) error {
	return r.db.WithContext(ctx).Save(seat).Error
}

// Hide clears the visibility flag. The row is kept so historical orders and
// schedule entries still resolve.
func (r *repository) Hide(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"visible": false, "is_active": false})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("seat %s not found", id)
	}
	return nil
}
