package migrations

import (
	"gorm.io/gorm"

	"habitat/internal/infrastructure/persistence/models"
)

// MigrateNotificationTables creates or updates every table the
// notification subsystem persists to.
func MigrateNotificationTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ResidentModel{},
		&models.ScopeMembershipModel{},
		&models.DeliveryModel{},
		&models.PreferenceModel{},
		&models.TemplateModel{},
	)
}
