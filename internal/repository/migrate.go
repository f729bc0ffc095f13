package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this service owns. The
// models are the repository-level gorm structs, so the schema stays a
// persistence concern.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roomTypeModel{},
		&roomModel{},
		&serviceModel{},
		&bookingModel{},
		&bookingServiceModel{},
		&adminStatisticModel{},
	)
}
