package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	AddStudyHours(ctx context.Context, userID uuid.UUID, hours float64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddStudyHours bumps the user's cumulative booked hours. Callers treat a
// failure here as non-fatal; the booking itself must not depend on it.
func (r *repository) AddStudyHours(ctx context.Context, userID uuid.UUID, hours float64) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("study_hours", gorm.Expr("study_hours + ?", hours)).Error
}
