package seats

type CreateSeatRequest struct {
	ShopID string `json:"shop_id" binding:"required,uuid"`
	Zone   string `json:"zone" binding:"required,min=1,max=100"`
	Label  string `json:"label" binding:"required,min=1,max=50"`
	Type   string `json:"type,omitempty"` // standard | window | vip, defaults to standard
}

type UpdateSeatRequest struct {
	Zone     *string `json:"zone,omitempty"`
	Label    *string `json:"label,omitempty"`
	Type     *string `json:"type,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
