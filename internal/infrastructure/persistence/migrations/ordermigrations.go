package migrations

import (
	"gorm.io/gorm"

	"sezzlegate/internal/infrastructure/persistence/models"
)

// Models lists every table owned by the service, in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.OrderModel{},
		&models.OrderTransactionModel{},
	}
}

// MigrateOrderTables creates the order tables with gorm AutoMigrate. Used for
// sqlite deployments and tests; mysql goes through versioned scripts.
func MigrateOrderTables(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
