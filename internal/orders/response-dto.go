package orders

import (
	"time"

	"github.com/google/uuid"
)

type OrderResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ShopID        uuid.UUID  `json:"shop_id"`
	SeatID        uuid.UUID  `json:"seat_id"`
	ShopName      string     `json:"shop_name,omitempty"`
	SeatLabel     string     `json:"seat_label,omitempty"`
	SeatZone      string     `json:"seat_zone,omitempty"`
	Date          string     `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Duration      float64    `json:"duration"`
	OriginalPrice float64    `json:"original_price"`
	Discount      float64    `json:"discount"`
	FinalPrice    float64    `json:"final_price"`
	Status        Status     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	CheckinCode   string     `json:"checkin_code"`
	CreatedAt     time.Time  `json:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

func toOrderResponse(o *Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		ShopID:        o.ShopID,
		SeatID:        o.SeatID,
		Date:          o.Date,
		StartTime:     o.StartTime,
		EndTime:       o.EndTime,
		Duration:      o.Duration,
		OriginalPrice: o.OriginalPrice,
		Discount:      o.Discount,
		FinalPrice:    o.FinalPrice,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		CheckinCode:   o.CheckinCode,
		CreatedAt:     o.CreatedAt,
		CancelledAt:   o.CancelledAt,
	}
	if o.Shop != nil {
		resp.ShopName = o.Shop.Name
	}
	if o.Seat != nil {
		resp.SeatLabel = o.Seat.Label
		resp.SeatZone = o.Seat.Zone
	}
	return resp
}

func toOrderListResponse(orders []Order, totalCount int64, page, limit int) OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return OrderListResponse{
		Orders:     out,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
	}
}
