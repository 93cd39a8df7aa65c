package migrations

import (
	"kimlik.link/configs/configslog"
	"kimlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateRecordsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating records table...")
	err := db.AutoMigrate(&models.Record{})
	if err != nil {
		configslog.Log.Error("Failed to migrate records table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Records table migrated successfully")
	return nil
}
