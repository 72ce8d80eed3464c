package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the overlap guard that AutoMigrate cannot express.
// The exclusion constraint rejects any two schedule rows for the same seat and
// day whose [start_hour, end_hour) ranges overlap; numrange upper bounds are
// exclusive, so back-to-back bookings that share an endpoint are allowed.
func MigrateConstraints(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error; err != nil {
		return err
	}

	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'schedules_no_overlap'
			) THEN
				ALTER TABLE schedules
				ADD CONSTRAINT schedules_no_overlap
				EXCLUDE USING gist (
					seat_id WITH =,
					date WITH =,
					numrange(start_hour::numeric, end_hour::numeric) WITH &&
				);
			END IF;
		END $$;
	`).Error
}
