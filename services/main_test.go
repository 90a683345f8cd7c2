package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"praxisnote.app/configs/configsdatabase"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// setupTest points the services at a throwaway SQLite file and data dir,
// migrated and seeded.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	configsdatabase.UseDB(db)

	require.NoError(t, database.RunMigrationsInOrder(db))
	require.NoError(t, database.CheckAndRunSeeders(db))
	return db
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}
