package configsdatabase

import (
	"os"
	"path/filepath"
	"testing"

	"praxisnote.app/configs/configslog"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// A fresh install has no data directory yet; opening the default SQLite
// path must still work on the very first boot.
func TestInitDBCreatesMissingDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("DATA_DIR", dataDir)

	InitDB()
	defer func() {
		require.NoError(t, CloseDB())
		db = nil
	}()

	conn := GetDB()
	require.NotNil(t, conn)

	// force a write so the database file materializes
	require.NoError(t, conn.Exec("CREATE TABLE boot_check (id INTEGER)").Error)

	_, err := os.Stat(filepath.Join(dataDir, "praxisnote.db"))
	require.NoError(t, err)
}
