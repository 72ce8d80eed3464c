package schedules

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studyseat/internal/shared/apperrors"
)

func newTestService(t *testing.T) (*gorm.DB, Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&ScheduleEntry{}))
	return db, NewService(NewRepository(db))
}

func seedEntry(t *testing.T, db *gorm.DB, seatID uuid.UUID, date string, start, end float64) {
	t.Helper()
	entry := ScheduleEntry{
		SeatID:    seatID,
		OrderID:   uuid.New(),
		Date:      date,
		StartHour: start,
		EndHour:   end,
	}
	require.NoError(t, db.Create(&entry).Error)
}

func TestHasConflictDetectsOverlap(t *testing.T) {
	db, svc := newTestService(t)
	seatID := uuid.New()
	seedEntry(t, db, seatID, "2024-10-24", 14, 18)

	cases := []struct {
		name       string
		start, end float64
		want       bool
	}{
		{"identical interval", 14, 18, true},
		{"contained", 15, 16, true},
		{"overlaps start", 12, 15, true},
		{"overlaps end", 17, 20, true},
		{"covers entirely", 10, 22, true},
		{"half hour overlap", 17.5, 19, true},
		{"touches end", 18, 20, false},
		{"touches start", 12, 14, false},
		{"disjoint before", 8, 10, false},
		{"disjoint after", 20, 22, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.HasConflict(context.Background(), seatID, "2024-10-24", tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasConflictScopesToSeatAndDate(t *testing.T) {
	db, svc := newTestService(t)
	seatID := uuid.New()
	seedEntry(t, db, seatID, "2024-10-24", 14, 18)

	otherSeat, err := svc.HasConflict(context.Background(), uuid.New(), "2024-10-24", 14, 18)
	require.NoError(t, err)
	assert.False(t, otherSeat)

	otherDate, err := svc.HasConflict(context.Background(), seatID, "2024-10-25", 14, 18)
	require.NoError(t, err)
	assert.False(t, otherDate)
}

func TestHasConflictRejectsInvalidInterval(t *testing.T) {
	_, svc := newTestService(t)
	seatID := uuid.New()

	for _, interval := range [][2]float64{{-1, 5}, {10, 25}, {18, 14}, {12, 12}} {
		_, err := svc.HasConflict(context.Background(), seatID, "2024-10-24", interval[0], interval[1])
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestSeatCalendarIncludesEmptyDays(t *testing.T) {
	db, svc := newTestService(t)
	seatID := uuid.New()
	seedEntry(t, db, seatID, "2024-10-24", 14, 18)
	seedEntry(t, db, seatID, "2024-10-26", 9, 10.5)

	calendar, err := svc.SeatCalendar(context.Background(), seatID, "2024-10-24", 3)
	require.NoError(t, err)
	require.Len(t, calendar, 3)

	assert.Equal(t, []Interval{{Start: 14, End: 18}}, calendar["2024-10-24"])
	assert.Empty(t, calendar["2024-10-25"])
	assert.Equal(t, []Interval{{Start: 9, End: 10.5}}, calendar["2024-10-26"])
}

func TestSeatCalendarRejectsBadDate(t *testing.T) {
	_, svc := newTestService(t)

	_, err := svc.SeatCalendar(context.Background(), uuid.New(), "24-10-2024", 7)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSeatsAvailabilityGroupsBySeat(t *testing.T) {
	db, svc := newTestService(t)
	seatA, seatB := uuid.New(), uuid.New()
	seedEntry(t, db, seatA, "2024-10-24", 14, 18)
	seedEntry(t, db, seatB, "2024-10-24", 9, 11)
	seedEntry(t, db, seatB, "2024-10-24", 12, 13)

	availability, err := svc.SeatsAvailability(context.Background(), []uuid.UUID{seatA, seatB}, "2024-10-24")
	require.NoError(t, err)
	require.Len(t, availability, 2)

	assert.Len(t, availability[seatA.String()], 1)
	assert.Len(t, availability[seatB.String()], 2)
}

func TestSeatsAvailabilityRequiresSeats(t *testing.T) {
	_, svc := newTestService(t)

	_, err := svc.SeatsAvailability(context.Background(), nil, "2024-10-24")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
