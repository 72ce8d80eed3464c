package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studyseat/internal/orders"
	"studyseat/internal/schedules"
	"studyseat/internal/seats"
	"studyseat/internal/shared/apperrors"
	"studyseat/internal/shops"
	"studyseat/internal/users"
)

type fixture struct {
	db      *gorm.DB
	service Service

	user uuid.UUID
	shop uuid.UUID
	seat uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&shops.Shop{},
		&seats.Seat{},
		&schedules.ScheduleEntry{},
		&orders.Order{},
		&Review{},
	))

	user := users.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: users.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	shop := shops.Shop{Name: "Quiet Corner", Visible: true}
	require.NoError(t, db.Create(&shop).Error)
	seat := seats.Seat{ShopID: shop.ID, Zone: "A", Label: "A1", Type: seats.SeatTypeStandard, IsActive: true, Visible: true}
	require.NoError(t, db.Create(&seat).Error)

	orderRepo := orders.NewRepository(db)
	return &fixture{
		db:      db,
		service: NewService(NewRepository(db), orderRepo),
		user:    user.ID,
		shop:    shop.ID,
		seat:    seat.ID,
	}
}

func (f *fixture) seedOrder(t *testing.T, status orders.Status) {
	t.Helper()
	order := orders.Order{
		UserID:        f.user,
		ShopID:        f.shop,
		SeatID:        f.seat,
		Date:          "2024-10-24",
		StartTime:     "14:00",
		EndTime:       "18:00",
		Duration:      4,
		OriginalPrice: 40,
		FinalPrice:    40,
		Status:        status,
		CheckinCode:   "SS-" + uuid.NewString(),
	}
	require.NoError(t, f.db.Create(&order).Error)
}

func TestReviewRequiresCompletedOrder(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, orders.StatusActive)

	_, err := f.service.Create(context.Background(), f.user, f.shop, CreateReviewRequest{Rating: 5})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestReviewAllowedAfterCompletedOrder(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, orders.StatusCompleted)

	review, err := f.service.Create(context.Background(), f.user, f.shop, CreateReviewRequest{
		Rating:  4,
		Comment: "Good light at the window desks",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	listed, err := f.service.ListByShop(context.Background(), f.shop)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestOneReviewPerUserPerShop(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, orders.StatusCompleted)

	_, err := f.service.Create(context.Background(), f.user, f.shop, CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.user, f.shop, CreateReviewRequest{Rating: 2})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestDeleteReview(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, orders.StatusCompleted)

	review, err := f.service.Create(context.Background(), f.user, f.shop, CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), review.ID))

	err = f.service.Delete(context.Background(), review.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
