package reviews

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyseat/internal/users"
)

// Review is a shop rating, allowed only for users with a completed order at
// the shop. One review per user per shop.
type Review struct {
	ID      uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_reviews_user_shop;not null"`
	ShopID  uuid.UUID `json:"shop_id" gorm:"type:uuid;uniqueIndex:idx_reviews_user_shop;index;not null"`
	Rating  int       `json:"rating" gorm:"not null"`
	Comment string    `json:"comment" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Review) TableName() string {
	return "reviews"
}
