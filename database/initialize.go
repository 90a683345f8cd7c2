package database

import (
	"praxisnote.app/configs/configslog"
	"praxisnote.app/database/migrations"
	"praxisnote.app/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and seeders inside one transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed requested, nothing to do.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Could not begin database transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Database initialization panicked", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Rolling back after initialization error.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Database initialization starting...")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrations failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrations completed.")
	}

	if seed {
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeders completed.")
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("Database initialization finished successfully")
}

// RunMigrationsInOrder migrates the tables respecting their references.
func RunMigrationsInOrder(db *gorm.DB) error {
	if err := migrations.MigratePatientsTable(db); err != nil {
		return err
	}
	if err := migrations.MigratePatientFilesTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateAppointmentsTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateExamTemplatesTable(db); err != nil {
		return err
	}
	if err := migrations.MigrateSettingsTable(db); err != nil {
		return err
	}
	return nil
}

// CheckAndRunSeeders runs every idempotent seeder.
func CheckAndRunSeeders(db *gorm.DB) error {
	return seeders.SeedExamTemplates(db)
}
