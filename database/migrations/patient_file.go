package migrations

import (
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigratePatientFilesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating patient_files table...")
	if err := db.AutoMigrate(&models.PatientFile{}); err != nil {
		configslog.Log.Error("Failed to migrate patient_files table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Patient_files table migrated successfully")
	return nil
}
