package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"studyseat/internal/schedules"
	"studyseat/internal/shared/apperrors"
)

type Repository interface {
	// CreateWithSchedule inserts the order and its schedule entry as one
	// transaction; the pair is never half-written.
	CreateWithSchedule(ctx context.Context, order *Order, entry *schedules.ScheduleEntry) error

	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, userID uuid.UUID, query OrderListQuery) ([]Order, int64, error)

	// CancelAndRelease flips the order to cancelled and deletes its schedule
	// entry in one transaction. Returns the number of schedule rows released
	// so callers can detect a missing counterpart.
	CancelAndRelease(ctx context.Context, orderID uuid.UUID, cancelledAt time.Time) (int64, error)

	// ListOpen fetches all orders in non-terminal states for the reconciler.
	ListOpen(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// HasCompletedOrder reports whether the user finished at least one order
	// at the shop; used for review eligibility.
	HasCompletedOrder(ctx context.Context, userID, shopID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithSchedule(ctx context.Context, order *Order, entry *schedules.ScheduleEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		entry.OrderID = order.ID
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		// The exclusion constraint on schedules is the authoritative overlap
		// guard; a violation here means we lost the race after the advisory
		// conflict check passed.
		if isIntervalConflict(err) {
			return apperrors.SlotConflict("seat %s is already booked for the requested interval", order.SeatID)
		}
		return apperrors.Persistence("creating order with schedule", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %s not found", id)
		}
		return nil, apperrors.Persistence("loading order", err)
	}
	return &order, nil
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Seat").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %s not found", id)
		}
		return nil, apperrors.Persistence("loading order", err)
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, query OrderListQuery) ([]Order, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&Order{})
	if !query.All {
		baseQuery = baseQuery.Where("user_id = ?", userID)
	}
	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}
	if query.ShopID != "" {
		if shopID, err := uuid.Parse(query.ShopID); err == nil {
			baseQuery = baseQuery.Where("shop_id = ?", shopID)
		}
	}

	var totalCount int64
	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, apperrors.Persistence("counting orders", err)
	}

	var orders []Order
	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Shop").
		Preload("Seat").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, apperrors.Persistence("listing orders", err)
	}

	return orders, totalCount, nil
}

func (r *repository) CancelAndRelease(ctx context.Context, orderID uuid.UUID, cancelledAt time.Time) (int64, error) {
	var released int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": cancelledAt,
				"updated_at":   cancelledAt,
			}).Error
		if err != nil {
			return err
		}

		result := tx.Where("order_id = ?", orderID).Delete(&schedules.ScheduleEntry{})
		if result.Error != nil {
			return result.Error
		}
		released = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, apperrors.Persistence("cancelling order", err)
	}
	return released, nil
}

func (r *repository) ListOpen(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", []Status{StatusPending, StatusActive}).
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Persistence("listing open orders", err)
	}
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return apperrors.Persistence("updating order status", err)
	}
	return nil
}

func (r *repository) HasCompletedOrder(ctx context.Context, userID, shopID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Where("user_id = ? AND shop_id = ? AND status = ?", userID, shopID, StatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Persistence("checking completed orders", err)
	}
	return count > 0, nil
}

// isIntervalConflict recognizes Postgres exclusion (23P01) and unique (23505)
// violations on the schedules table.
func isIntervalConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
