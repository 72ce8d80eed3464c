package notifications

import "time"

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "ORDER_CREATED"
	OrderEventCancelled     OrderEventType = "ORDER_CANCELLED"
	OrderEventStatusChanged OrderEventType = "ORDER_STATUS_CHANGED"
)

// OrderEvent is the message published for every order lifecycle change.
// Keyed by order id so one order's events land on one partition in order.
type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"order_id"`
	UserID     string         `json:"user_id"`
	SeatID     string         `json:"seat_id"`
	ShopID     string         `json:"shop_id"`
	Status     string         `json:"status"`
	PrevStatus string         `json:"prev_status,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
