package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studyseat/internal/schedules"
	"studyseat/internal/seats"
	"studyseat/internal/shared/apperrors"
	"studyseat/internal/shops"
	"studyseat/internal/users"
)

type fixture struct {
	db      *gorm.DB
	service *service
	repo    Repository

	user  users.User
	other users.User
	shop  shops.Shop
	seat  seats.Seat
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&shops.Shop{},
		&seats.Seat{},
		&schedules.ScheduleEntry{},
		&Order{},
	))

	f := &fixture{db: db}

	f.user = users.User{Name: "Alice", Email: "alice@example.com", Password: "x", Role: users.RoleUser}
	require.NoError(t, db.Create(&f.user).Error)
	f.other = users.User{Name: "Bob", Email: "bob@example.com", Password: "x", Role: users.RoleUser}
	require.NoError(t, db.Create(&f.other).Error)

	f.shop = shops.Shop{Name: "Quiet Corner", OpenTime: "08:00", CloseTime: "22:00", PricePerHour: 10, Visible: true}
	require.NoError(t, db.Create(&f.shop).Error)

	f.seat = seats.Seat{ShopID: f.shop.ID, Zone: "A", Label: "A4", Type: seats.SeatTypeWindow, IsActive: true, Visible: true}
	require.NoError(t, db.Create(&f.seat).Error)

	f.repo = NewRepository(db)
	scheduleService := schedules.NewService(schedules.NewRepository(db))
	seatService := seats.NewService(seats.NewRepository(db), nil)
	userRepo := users.NewRepository(db)

	f.service = NewService(f.repo, scheduleService, seatService, userRepo, nil, nil).(*service)
	return f
}

func (f *fixture) setNow(now time.Time) {
	f.service.now = func() time.Time { return now }
}

func baseRequest(f *fixture) CreateOrderRequest {
	return CreateOrderRequest{
		ShopID:        f.shop.ID.String(),
		SeatID:        f.seat.ID.String(),
		Date:          "2024-10-24",
		StartTime:     "14:00",
		EndTime:       "18:00",
		Duration:      4,
		OriginalPrice: 40,
		Discount:      5,
	}
}

func TestCreateOrderPersistsOrderAndSchedule(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 35.0, order.FinalPrice)
	assert.NotEmpty(t, order.CheckinCode)

	var entry schedules.ScheduleEntry
	require.NoError(t, f.db.Where("order_id = ?", order.ID).First(&entry).Error)
	assert.Equal(t, f.seat.ID, entry.SeatID)
	assert.Equal(t, "2024-10-24", entry.Date)
	assert.InDelta(t, 14.0, entry.StartHour, 1e-9)
	assert.InDelta(t, 18.0, entry.EndHour, 1e-9)

	var user users.User
	require.NoError(t, f.db.First(&user, "id = ?", f.user.ID).Error)
	assert.InDelta(t, 4.0, user.StudyHours, 1e-9)
}

func TestCreateOrderInsideAdmissionWindowStartsActive(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 13, 55, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)
	assert.Equal(t, StatusActive, order.Status)
}

func TestCreateOrderRejectsOverlappingInterval(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	_, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	req := baseRequest(f)
	req.StartTime = "16:00"
	req.EndTime = "19:00"
	req.Duration = 3
	_, err = f.service.Create(context.Background(), f.other.ID, req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindSlotConflict, apperrors.KindOf(err))

	var count int64
	require.NoError(t, f.db.Model(&Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBackToBackIntervalsDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	first := baseRequest(f)
	first.StartTime = "14:00"
	first.EndTime = "16:00"
	first.Duration = 2
	_, err := f.service.Create(context.Background(), f.user.ID, first)
	require.NoError(t, err)

	second := baseRequest(f)
	second.StartTime = "16:00"
	second.EndTime = "18:00"
	second.Duration = 2
	_, err = f.service.Create(context.Background(), f.other.ID, second)
	require.NoError(t, err)
}

func TestCreateOrderPriceNeverNegative(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	req := baseRequest(f)
	req.OriginalPrice = 40
	req.Discount = 50
	order, err := f.service.Create(context.Background(), f.user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.FinalPrice)
}

func TestCreateOrderRejectsInvertedInterval(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	req := baseRequest(f)
	req.StartTime = "18:00"
	req.EndTime = "14:00"
	_, err := f.service.Create(context.Background(), f.user.ID, req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateOrderRejectsInactiveSeat(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	require.NoError(t, f.db.Model(&seats.Seat{}).Where("id = ?", f.seat.ID).Update("is_active", false).Error)

	_, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateOrderRejectsSeatFromAnotherShop(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	otherShop := shops.Shop{Name: "Other", OpenTime: "08:00", CloseTime: "22:00", PricePerHour: 8, Visible: true}
	require.NoError(t, f.db.Create(&otherShop).Error)

	req := baseRequest(f)
	req.ShopID = otherShop.ID.String()
	_, err := f.service.Create(context.Background(), f.user.ID, req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCancelReleasesSlotForRebooking(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 13, 55, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)
	require.Equal(t, StatusActive, order.Status)

	cancelled, err := f.service.Cancel(context.Background(), order.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	var entries int64
	require.NoError(t, f.db.Model(&schedules.ScheduleEntry{}).Where("order_id = ?", order.ID).Count(&entries).Error)
	assert.EqualValues(t, 0, entries)

	// The freed interval is immediately bookable by someone else.
	_, err = f.service.Create(context.Background(), f.other.ID, baseRequest(f))
	require.NoError(t, err)
}

func TestCancelRejectsPendingOrder(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)

	_, err = f.service.Cancel(context.Background(), order.ID, f.user.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestCancelIsNotRepeatable(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 13, 55, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), order.ID, f.user.ID)
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), order.ID, f.user.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidState, apperrors.KindOf(err))
}

func TestCancelHidesOtherUsersOrders(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 13, 55, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), order.ID, f.other.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestGetScopesToOwnerUnlessAdmin(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	_, err = f.service.Get(context.Background(), order.ID, f.other.ID, false)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	got, err := f.service.Get(context.Background(), order.ID, f.other.ID, true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestListFiltersByUserAndStatus(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	_, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	second := baseRequest(f)
	second.Date = "2024-10-25"
	_, err = f.service.Create(context.Background(), f.other.ID, second)
	require.NoError(t, err)

	mine, err := f.service.List(context.Background(), f.user.ID, OrderListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.TotalCount)
	require.Len(t, mine.Orders, 1)
	assert.Equal(t, f.user.ID, mine.Orders[0].UserID)

	all, err := f.service.List(context.Background(), f.user.ID, OrderListQuery{All: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.TotalCount)

	none, err := f.service.List(context.Background(), f.user.ID, OrderListQuery{Status: string(StatusCompleted)})
	require.NoError(t, err)
	assert.EqualValues(t, 0, none.TotalCount)

	_, err = f.service.List(context.Background(), f.user.ID, OrderListQuery{Status: "paid"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCheckinCodesAreUnique(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	seen := make(map[string]bool)
	for day := 1; day <= 5; day++ {
		req := baseRequest(f)
		req.Date = time.Date(2024, 11, day, 0, 0, 0, 0, time.Local).Format("2006-01-02")
		order, err := f.service.Create(context.Background(), f.user.ID, req)
		require.NoError(t, err)
		assert.False(t, seen[order.CheckinCode], "duplicate check-in code %s", order.CheckinCode)
		seen[order.CheckinCode] = true
	}
}

func TestHasCompletedOrder(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	eligible, err := f.repo.HasCompletedOrder(context.Background(), f.user.ID, f.shop.ID)
	require.NoError(t, err)
	assert.False(t, eligible)

	require.NoError(t, f.repo.UpdateStatus(context.Background(), order.ID, StatusCompleted))

	eligible, err = f.repo.HasCompletedOrder(context.Background(), f.user.ID, f.shop.ID)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestGenerateCheckinCodeFormat(t *testing.T) {
	now := time.Date(2024, 10, 24, 14, 30, 0, 0, time.Local)
	code := generateCheckinCode(now)
	assert.Contains(t, code, "SS-20241024143000")
	assert.NotEqual(t, code, generateCheckinCode(now))
}
