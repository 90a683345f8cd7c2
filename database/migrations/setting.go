package migrations

import (
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSettingsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating settings table...")
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		configslog.Log.Error("Failed to migrate settings table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Settings table migrated successfully")
	return nil
}
