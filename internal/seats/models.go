package seats

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SeatType string

const (
	SeatTypeStandard SeatType = "standard"
	SeatTypeWindow   SeatType = "window"
	SeatTypeVIP      SeatType = "vip"
)

func (t SeatType) IsValid() bool {
	switch t {
	case SeatTypeStandard, SeatTypeWindow, SeatTypeVIP:
		return true
	}
	return false
}

// Seat is an addressable reservable unit within a shop zone.
type Seat struct {
	ID     uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	ShopID uuid.UUID `json:"shop_id" gorm:"type:uuid;index;not null"`
	Zone   string    `json:"zone" gorm:"not null"`
	Label  string    `json:"label" gorm:"not null"`
	Type   SeatType  `json:"type" gorm:"type:varchar(20);not null;default:'standard'"`
	// IsActive marks the seat bookable; an inactive seat stays visible on the
	// map but rejects new orders.
	IsActive bool `json:"is_active" gorm:"not null;default:true"`
	// Visible is the soft-delete flag. Cleared instead of deleting the row so
	// historical orders keep a valid seat reference.
	Visible   bool      `json:"visible" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Seat) TableName() string {
	return "seats"
}
