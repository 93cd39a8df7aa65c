package migrations

import (
	"kimlik.link/configs/configslog"
	"kimlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateOrganizationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating organizations table...")
	err := db.AutoMigrate(&models.Organization{})
	if err != nil {
		configslog.Log.Error("Failed to migrate organizations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Organizations table migrated successfully")
	return nil
}
