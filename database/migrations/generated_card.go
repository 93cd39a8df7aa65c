package migrations

import (
	"kimlik.link/configs/configslog"
	"kimlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateGeneratedCardsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating generated_cards table...")
	err := db.AutoMigrate(&models.GeneratedCard{})
	if err != nil {
		configslog.Log.Error("Failed to migrate generated_cards table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Generated_cards table migrated successfully")
	return nil
}
