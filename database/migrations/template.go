package migrations

import (
	"kimlik.link/configs/configslog"
	"kimlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateTemplatesTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating templates & organization_overrides tables...")
	err := db.AutoMigrate(&models.Template{}, &models.OrganizationOverride{})
	if err != nil {
		configslog.Log.Error("Failed to migrate templates & organization_overrides tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Templates & organization_overrides tables migrated successfully")
	return nil
}
