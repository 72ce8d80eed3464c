package database

import (
	"studyseat/internal/orders"
	"studyseat/internal/reviews"
	"studyseat/internal/schedules"
	"studyseat/internal/seats"
	"studyseat/internal/shops"
	"studyseat/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&shops.Shop{},
		&seats.Seat{},
		&schedules.ScheduleEntry{},
		&orders.Order{},
		&reviews.Review{},
	)
}
