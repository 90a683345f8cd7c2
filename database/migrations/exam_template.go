package migrations

import (
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateExamTemplatesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating exam_templates table...")
	if err := db.AutoMigrate(&models.ExamTemplate{}); err != nil {
		configslog.Log.Error("Failed to migrate exam_templates table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Exam_templates table migrated successfully")
	return nil
}
