package migrations

import (
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigratePatientsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating patients table...")
	if err := db.AutoMigrate(&models.Patient{}); err != nil {
		configslog.Log.Error("Failed to migrate patients table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Patients table migrated successfully")
	return nil
}
