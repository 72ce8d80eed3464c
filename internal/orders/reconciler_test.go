package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(f *fixture) *Reconciler {
	return NewReconciler(f.repo, nil, time.Minute)
}

func (f *fixture) orderStatus(t *testing.T, id interface{}) Status {
	t.Helper()
	var order Order
	require.NoError(t, f.db.First(&order, "id = ?", id).Error)
	return order.Status
}

func TestReconcilerWalksOrderThroughLifecycle(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)

	r := newTestReconciler(f)

	// Before the admission window nothing changes.
	r.now = func() time.Time { return time.Date(2024, 10, 24, 13, 49, 0, 0, time.Local) }
	r.SweepOnce(context.Background())
	assert.Equal(t, StatusPending, f.orderStatus(t, order.ID))

	// Ten minutes before start the order becomes active.
	r.now = func() time.Time { return time.Date(2024, 10, 24, 13, 55, 0, 0, time.Local) }
	r.SweepOnce(context.Background())
	assert.Equal(t, StatusActive, f.orderStatus(t, order.ID))

	// Past the end it completes.
	r.now = func() time.Time { return time.Date(2024, 10, 24, 18, 1, 0, 0, time.Local) }
	r.SweepOnce(context.Background())
	assert.Equal(t, StatusCompleted, f.orderStatus(t, order.ID))
}

func TestReconcilerIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	r := newTestReconciler(f)
	r.now = func() time.Time { return time.Date(2024, 10, 24, 14, 30, 0, 0, time.Local) }

	r.SweepOnce(context.Background())
	require.Equal(t, StatusActive, f.orderStatus(t, order.ID))

	var afterFirst Order
	require.NoError(t, f.db.First(&afterFirst, "id = ?", order.ID).Error)

	// A second sweep at the same instant writes nothing.
	r.SweepOnce(context.Background())

	var afterSecond Order
	require.NoError(t, f.db.First(&afterSecond, "id = ?", order.ID).Error)
	assert.Equal(t, afterFirst.Status, afterSecond.Status)
	assert.Equal(t, afterFirst.UpdatedAt, afterSecond.UpdatedAt)
}

func TestReconcilerSkipsTerminalOrders(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 13, 55, 0, 0, time.Local))

	order, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), order.ID, f.user.ID)
	require.NoError(t, err)

	r := newTestReconciler(f)
	r.now = func() time.Time { return time.Date(2024, 10, 25, 12, 0, 0, 0, time.Local) }
	r.SweepOnce(context.Background())

	// Cancelled stays cancelled, even long past the end instant.
	assert.Equal(t, StatusCancelled, f.orderStatus(t, order.ID))
}

func TestReconcilerIsolatesPerOrderFailures(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2024, 10, 24, 9, 0, 0, 0, time.Local))

	good, err := f.service.Create(context.Background(), f.user.ID, baseRequest(f))
	require.NoError(t, err)

	// A row with garbage time fields, as if written by a buggy migration.
	broken := Order{
		UserID:        f.user.ID,
		ShopID:        f.shop.ID,
		SeatID:        f.seat.ID,
		Date:          "2024-10-24",
		StartTime:     "not-a-time",
		EndTime:       "18:00",
		Duration:      4,
		OriginalPrice: 40,
		FinalPrice:    40,
		Status:        StatusPending,
		CheckinCode:   "SS-broken",
	}
	require.NoError(t, f.db.Create(&broken).Error)

	r := newTestReconciler(f)
	r.now = func() time.Time { return time.Date(2024, 10, 24, 18, 1, 0, 0, time.Local) }
	r.SweepOnce(context.Background())

	// The broken row is skipped, the good one still progresses.
	assert.Equal(t, StatusCompleted, f.orderStatus(t, good.ID))
	assert.Equal(t, StatusPending, f.orderStatus(t, broken.ID))
}
