package schedules

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleEntry is one interval of seat occupancy owned by exactly one order.
// Created alongside the order, deleted on cancellation, never mutated.
type ScheduleEntry struct {
	ID      uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	SeatID  uuid.UUID `json:"seat_id" gorm:"type:uuid;index:idx_schedules_seat_date;not null"`
	OrderID uuid.UUID `json:"order_id" gorm:"type:uuid;uniqueIndex;not null"`
	// Date is the calendar day as YYYY-MM-DD, no timezone attached.
	Date string `json:"date" gorm:"type:varchar(10);index:idx_schedules_seat_date;not null"`
	// Hours are fractional: 14.5 means 14:30. StartHour < EndHour always.
	StartHour float64   `json:"start_hour" gorm:"not null"`
	EndHour   float64   `json:"end_hour" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *ScheduleEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (ScheduleEntry) TableName() string {
	return "schedules"
}

// Interval is the externalized view of one occupied slot.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
