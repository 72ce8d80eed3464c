package schedules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is a dumb interval store keyed by seat and date. Conflict logic
// lives in the service; order creation and cancellation write these rows
// inside the order repository's transactions.
type Repository interface {
	ListBySeatAndDate(ctx context.Context, seatID uuid.UUID, date string) ([]ScheduleEntry, error)
	ListBySeatAndDates(ctx context.Context, seatID uuid.UUID, dates []string) ([]ScheduleEntry, error)
	ListBySeatsAndDate(ctx context.Context, seatIDs []uuid.UUID, date string) ([]ScheduleEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListBySeatAndDate(ctx context.Context, seatID uuid.UUID, date string) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("seat_id = ? AND date = ?", seatID, date).
		Order("start_hour").
		Find(&entries).Error
	return entries, err
}

func (r *repository) ListBySeatAndDates(ctx context.Context, seatID uuid.UUID, dates []string) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("seat_id = ? AND date IN ?", seatID, dates).
		Order("date, start_hour").
		Find(&entries).Error
	return entries, err
}

func (r *repository) ListBySeatsAndDate(ctx context.Context, seatIDs []uuid.UUID, date string) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("seat_id IN ? AND date = ?", seatIDs, date).
		Order("start_hour").
		Find(&entries).Error
	return entries, err
}
