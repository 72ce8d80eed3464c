package shops

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is a study space location containing zones of bookable seats.
type Shop struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"not null"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	OpenTime    string    `json:"open_time" gorm:"type:varchar(5);default:'08:00'"`  // HH:MM
	CloseTime   string    `json:"close_time" gorm:"type:varchar(5);default:'22:00'"` // HH:MM
	PricePerHour float64  `json:"price_per_hour" gorm:"not null;default:10"`
	// Visible is a soft-delete flag; hidden shops keep their historical orders.
	Visible   bool      `json:"visible" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Shop) TableName() string {
	return "shops"
}
