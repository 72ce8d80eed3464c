package orders

type CreateOrderRequest struct {
	ShopID        string  `json:"shop_id" binding:"required,uuid"`
	SeatID        string  `json:"seat_id" binding:"required,uuid"`
	Date          string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime     string  `json:"start_time" binding:"required,clocktime"`
	EndTime       string  `json:"end_time" binding:"required,clocktime"`
	Duration      float64 `json:"duration" binding:"required,gt=0"`
	OriginalPrice float64 `json:"original_price" binding:"required,gte=0"`
	Discount      float64 `json:"discount" binding:"gte=0"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

// UpdateOrderRequest only admits user-initiated cancellation; every other
// status transition is system-controlled.
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderListQuery struct {
	Status string `form:"status"`
	ShopID string `form:"shop_id"`
	All    bool   `form:"all"` // admin view across users
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
