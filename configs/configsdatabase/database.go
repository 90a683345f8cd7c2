package configsdatabase

import (
	"errors"
	"os"
	"path/filepath"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configslog"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the database connection. The default driver is a SQLite file
// inside DATA_DIR (local-first, zero setup); DB_DRIVER=postgres with
// DATABASE_URL switches the same schema to a managed Postgres instance.
func InitDB() {
	driver := configsapp.Env("DB_DRIVER", "sqlite")

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var (
		conn *gorm.DB
		err  error
	)
	switch driver {
	case "postgres":
		dsn := configsapp.Env("DATABASE_URL", "")
		if dsn == "" {
			configslog.Log.Fatal("DB_DRIVER=postgres requires DATABASE_URL")
			return
		}
		conn, err = gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite":
		path := configsapp.Env("DB_PATH", filepath.Join(configsapp.DataDir(), "praxisnote.db"))
		// SQLite does not create parent directories itself.
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			configslog.Log.Fatal("failed to create database directory", zap.String("path", path), zap.Error(mkErr))
			return
		}
		conn, err = gorm.Open(sqlite.Open(path), gormCfg)
	default:
		configslog.Log.Fatal("unknown DB_DRIVER", zap.String("driver", driver))
		return
	}

	if err != nil {
		configslog.Log.Fatal("failed to open database", zap.String("driver", driver), zap.Error(err))
		return
	}

	db = conn
	configslog.SLog.Infof("Database connection established (driver: %s)", driver)
}

// GetDB returns the active connection. InitDB (or UseDB in tests) must have
// run first.
func GetDB() *gorm.DB {
	if db == nil {
		panic("configsdatabase: GetDB called before InitDB")
	}
	return db
}

// UseDB swaps the active connection. Tests use it with an in-memory SQLite
// handle; production code never calls it.
func UseDB(conn *gorm.DB) {
	db = conn
}

// CloseDB closes the underlying sql.DB.
func CloseDB() error {
	if db == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
