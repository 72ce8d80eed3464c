package shops

type CreateShopRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=200"`
	Address      string  `json:"address"`
	Description  string  `json:"description"`
	OpenTime     string  `json:"open_time" binding:"required"`
	CloseTime    string  `json:"close_time" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gt=0"`
}

type UpdateShopRequest struct {
	Name         *string  `json:"name,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Description  *string  `json:"description,omitempty"`
	OpenTime     *string  `json:"open_time,omitempty"`
	CloseTime    *string  `json:"close_time,omitempty"`
	PricePerHour *float64 `json:"price_per_hour,omitempty"`
}
