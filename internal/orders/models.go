package orders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyseat/internal/seats"
	"studyseat/internal/shops"
	"studyseat/internal/timeslot"
	"studyseat/internal/users"
)

// Order is the reservation and payment record. Rows are never physically
// deleted; cancelled and completed orders stay for history, audit and review
// eligibility.
type Order struct {
	ID     uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	ShopID uuid.UUID `json:"shop_id" gorm:"type:uuid;index;not null"`
	SeatID uuid.UUID `json:"seat_id" gorm:"type:uuid;index;not null"`

	// Date is the reservation day as YYYY-MM-DD; times are HH:MM clock
	// strings in the shop's local calendar.
	Date      string `json:"date" gorm:"type:varchar(10);not null"`
	StartTime string `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime   string `json:"end_time" gorm:"type:varchar(5);not null"`

	Duration      float64 `json:"duration" gorm:"not null"`
	OriginalPrice float64 `json:"original_price" gorm:"not null"`
	Discount      float64 `json:"discount" gorm:"not null;default:0"`
	FinalPrice    float64 `json:"final_price" gorm:"not null"`

	Status        Status `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	PaymentMethod string `json:"payment_method" gorm:"type:varchar(50);default:'mock'"`
	CheckinCode   string `json:"checkin_code" gorm:"uniqueIndex;not null"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships (display joins only)
	User *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Shop *shops.Shop `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	Seat *seats.Seat `json:"seat,omitempty" gorm:"foreignKey:SeatID"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// Instants resolves the order's stored date/time fields to concrete start and
// end instants in the server's local calendar.
func (o *Order) Instants() (start, end time.Time, err error) {
	start, err = timeslot.CombineDateAndClock(o.Date, o.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = timeslot.CombineDateAndClock(o.Date, o.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}
