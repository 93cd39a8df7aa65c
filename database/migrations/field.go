package migrations

import (
	"kimlik.link/configs/configslog"
	"kimlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFieldsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating fields table...")
	err := db.AutoMigrate(&models.Field{})
	if err != nil {
		configslog.Log.Error("Failed to migrate fields table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Fields table migrated successfully")
	return nil
}
