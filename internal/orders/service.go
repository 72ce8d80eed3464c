package orders

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyseat/internal/notifications"
	"studyseat/internal/schedules"
	"studyseat/internal/seats"
	"studyseat/internal/shared/apperrors"
	"studyseat/internal/timeslot"
	"studyseat/internal/users"
	"studyseat/pkg/logger"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error)
	Cancel(ctx context.Context, orderID, userID uuid.UUID) (*OrderResponse, error)
	Get(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*OrderResponse, error)
	List(ctx context.Context, userID uuid.UUID, query OrderListQuery) (*OrderListResponse, error)
}

type service struct {
	repo            Repository
	scheduleService schedules.Service
	seatService     seats.Service
	userRepo        users.Repository
	producer        notifications.Producer
	locker          SeatLocker
	log             *logger.Logger

	// now is swapped in tests to walk a simulated clock.
	now func() time.Time
}

func NewService(
	repo Repository,
	scheduleService schedules.Service,
	seatService seats.Service,
	userRepo users.Repository,
	producer notifications.Producer,
	locker SeatLocker,
) Service {
	if locker == nil {
		locker = noopSeatLocker{}
	}
	return &service{
		repo:            repo,
		scheduleService: scheduleService,
		seatService:     seatService,
		userRepo:        userRepo,
		producer:        producer,
		locker:          locker,
		log:             logger.GetDefault(),
		now:             time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, apperrors.Validation("invalid shop_id")
	}
	seatID, err := uuid.Parse(req.SeatID)
	if err != nil {
		return nil, apperrors.Validation("invalid seat_id")
	}

	startHour, err := timeslot.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	endHour, err := timeslot.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if startHour >= endHour {
		return nil, apperrors.Validation("start_time must be before end_time")
	}

	seat, err := s.seatService.EnsureBookable(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if seat.ShopID != shopID {
		return nil, apperrors.Validation("seat %s does not belong to shop %s", seatID, shopID)
	}

	// The lock keeps concurrent requests for the same seat/day from racing
	// between the conflict check and the insert.
	lockToken, err := s.locker.Acquire(ctx, seatID, req.Date)
	if err != nil {
		return nil, err
	}
	defer s.locker.Release(ctx, seatID, req.Date, lockToken)

	conflict, err := s.scheduleService.HasConflict(ctx, seatID, req.Date, startHour, endHour)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, apperrors.SlotConflict("seat %s is already booked for %s %s-%s",
			seatID, req.Date, req.StartTime, req.EndTime)
	}

	finalPrice := req.OriginalPrice - req.Discount
	if finalPrice < 0 {
		finalPrice = 0
	}

	startInstant, err := timeslot.CombineDateAndClock(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	endInstant, err := timeslot.CombineDateAndClock(req.Date, req.EndTime)
	if err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "mock"
	}

	order := &Order{
		UserID:        userID,
		ShopID:        shopID,
		SeatID:        seatID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
		FinalPrice:    finalPrice,
		Status:        StatusForTime(s.now(), startInstant, endInstant),
		PaymentMethod: paymentMethod,
		CheckinCode:   generateCheckinCode(s.now()),
	}
	entry := &schedules.ScheduleEntry{
		SeatID:    seatID,
		Date:      req.Date,
		StartHour: startHour,
		EndHour:   endHour,
	}

	if err := s.repo.CreateWithSchedule(ctx, order, entry); err != nil {
		return nil, err
	}

	// Side effects below never fail the booking.
	if err := s.userRepo.AddStudyHours(ctx, userID, req.Duration); err != nil {
		s.log.WithError(err).Warn("failed to update user study hours",
			"user_id", userID.String(), "order_id", order.ID.String())
	}
	s.publishEvent(ctx, notifications.OrderEventCreated, order, "")

	s.log.LogOrderCreated(ctx, order.ID.String(), seatID.String(), userID.String(), string(order.Status))

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *service) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Ownership failures read as not-found so users cannot probe other
	// people's order ids.
	if order.UserID != userID {
		return nil, apperrors.NotFound("order %s not found", orderID)
	}
	if !order.Status.CanBeCancelled() {
		return nil, apperrors.InvalidState("order in status %q cannot be cancelled", order.Status)
	}

	cancelledAt := s.now()
	released, err := s.repo.CancelAndRelease(ctx, orderID, cancelledAt)
	if err != nil {
		return nil, err
	}
	if released == 0 {
		// An active order always owns exactly one schedule entry; a zero-row
		// delete means the pair had already diverged before this call.
		s.log.LogInconsistentState(ctx, orderID.String(),
			apperrors.InconsistentState(fmt.Sprintf("cancelled order %s had no schedule entry to release", orderID), nil))
	}

	order.Status = StatusCancelled
	order.CancelledAt = &cancelledAt
	order.UpdatedAt = cancelledAt

	s.publishEvent(ctx, notifications.OrderEventCancelled, order, string(StatusActive))
	s.log.LogOrderCancelled(ctx, orderID.String(), order.SeatID.String(), userID.String())

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*OrderResponse, error) {
	order, err := s.repo.GetByIDWithRelations(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, apperrors.NotFound("order %s not found", orderID)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, query OrderListQuery) (*OrderListResponse, error) {
	if query.Status != "" && !Status(query.Status).IsValid() {
		return nil, apperrors.Validation("invalid status filter %q", query.Status)
	}
	orders, totalCount, err := s.repo.List(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}
	resp := toOrderListResponse(orders, totalCount, query.Page, query.Limit)
	return &resp, nil
}

func (s *service) publishEvent(ctx context.Context, eventType notifications.OrderEventType, order *Order, prevStatus string) {
	if s.producer == nil {
		return
	}
	event := notifications.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		SeatID:     order.SeatID.String(),
		ShopID:     order.ShopID.String(),
		Status:     string(order.Status),
		PrevStatus: prevStatus,
		OccurredAt: s.now(),
	}
	if err := s.producer.PublishOrderEvent(ctx, event); err != nil {
		s.log.WithError(err).Warn("failed to publish order event",
			"order_id", order.ID.String(), "event_type", string(eventType))
	}
}

// generateCheckinCode builds a time-prefixed random token, e.g.
// SS-20241024143000-A1B2C3D4.
func generateCheckinCode(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// math-free fallback keeps codes unique enough via the timestamp
		return "SS-" + now.Format("20060102150405.000000000")
	}
	return "SS-" + now.Format("20060102150405") + "-" + hex.EncodeToString(buf)
}
