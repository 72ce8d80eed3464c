package orders

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"studyseat/internal/notifications"
	"studyseat/pkg/logger"
)

// Reconciler periodically re-derives every open order's status from wall-clock
// time, so orders progress even when nobody is looking at them.
type Reconciler struct {
	repo      Repository
	producer  notifications.Producer
	log       *logger.Logger
	interval  time.Duration
	scheduler gocron.Scheduler

	// now is swapped in tests to walk a simulated clock.
	now func() time.Time
}

func NewReconciler(repo Repository, producer notifications.Producer, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reconciler{
		repo:     repo,
		producer: producer,
		log:      logger.GetDefault(),
		interval: interval,
		now:      time.Now,
	}
}

// Start schedules the recurring sweep, with one immediate run so restarts
// catch up on transitions missed while the process was down.
func (r *Reconciler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			r.SweepOnce(ctx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	r.scheduler = scheduler
	scheduler.Start()
	r.log.Info("status reconciler started", "interval", r.interval.String())
	return nil
}

func (r *Reconciler) Stop() error {
	if r.scheduler == nil {
		return nil
	}
	return r.scheduler.Shutdown()
}

// SweepOnce runs a single reconciliation pass over all open orders. An error
// on one order is logged and does not stop the rest of the sweep.
func (r *Reconciler) SweepOnce(ctx context.Context) {
	started := time.Now()

	open, err := r.repo.ListOpen(ctx)
	if err != nil {
		r.log.WithError(err).Error("reconciler sweep failed to list open orders")
		return
	}

	now := r.now()
	updated, failed := 0, 0
	for i := range open {
		order := &open[i]
		changed, err := r.reconcileOrder(ctx, order, now)
		if err != nil {
			failed++
			r.log.WithError(err).Error("failed to reconcile order", "order_id", order.ID.String())
			continue
		}
		if changed {
			updated++
		}
	}

	r.log.LogSweepCompleted(ctx, len(open), updated, failed, time.Since(started))
}

func (r *Reconciler) reconcileOrder(ctx context.Context, order *Order, now time.Time) (bool, error) {
	if order.Status.IsTerminal() {
		return false, nil
	}

	start, end, err := order.Instants()
	if err != nil {
		return false, err
	}

	target := StatusForTime(now, start, end)
	if target == order.Status {
		return false, nil
	}

	if err := r.repo.UpdateStatus(ctx, order.ID, target); err != nil {
		return false, err
	}

	r.log.LogStatusTransition(ctx, order.ID.String(), string(order.Status), string(target))
	r.publishStatusChange(ctx, order, target)
	order.Status = target
	return true, nil
}

func (r *Reconciler) publishStatusChange(ctx context.Context, order *Order, target Status) {
	if r.producer == nil {
		return
	}
	event := notifications.OrderEvent{
		Type:       notifications.OrderEventStatusChanged,
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		SeatID:     order.SeatID.String(),
		ShopID:     order.ShopID.String(),
		Status:     string(target),
		PrevStatus: string(order.Status),
		OccurredAt: r.now(),
	}
	if err := r.producer.PublishOrderEvent(ctx, event); err != nil {
		r.log.WithError(err).Warn("failed to publish status change event",
			"order_id", order.ID.String())
	}
}
