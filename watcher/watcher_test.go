package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configsdatabase"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/database"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/services"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

// setupTest points the watcher at a throwaway SQLite file and data dir and
// returns a patient with an inbox folder ready for drops.
func setupTest(t *testing.T) (*InboxWatcher, *models.Patient, string) {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	configsdatabase.UseDB(db)

	require.NoError(t, database.RunMigrationsInOrder(db))
	require.NoError(t, database.CheckAndRunSeeders(db))
	require.NoError(t, configsapp.EnsureDirs())

	patient, err := services.NewPatientService().CreatePatient(context.Background(), services.PatientInput{
		FullName: "Inbox Drop",
	})
	require.NoError(t, err)

	dir := filepath.Join(configsapp.InboxDir(), patient.PublicID)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	return NewInboxWatcher(), patient, dir
}

func dropFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSweepDirImportsExistingFiles(t *testing.T) {
	w, patient, dir := setupTest(t)
	src := dropFile(t, dir, "referral.pdf", "referral body")

	w.sweepDir(context.Background(), dir)

	result, err := services.NewFileService().ListFiles(context.Background(), patient, queryparams.DefaultListParams("recorded_at"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)

	// the source is consumed once the record exists
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestImportFileIgnoresUnknownFolder(t *testing.T) {
	w, patient, _ := setupTest(t)

	stray := filepath.Join(configsapp.InboxDir(), "not-a-patient")
	require.NoError(t, os.MkdirAll(stray, 0o755))
	src := dropFile(t, stray, "orphan.txt", "nobody's file")

	w.importFile(context.Background(), src)

	result, err := services.NewFileService().ListFiles(context.Background(), patient, queryparams.DefaultListParams("recorded_at"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Meta.TotalItems)

	// unmatched drops stay where they are
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

// A drop observed during shutdown must not be half-imported: the settle wait
// gives up as soon as the context is cancelled.
func TestImportAfterSettleStopsOnCancel(t *testing.T) {
	w, patient, dir := setupTest(t)
	src := dropFile(t, dir, "session-audio.mp3", "bytes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.importAfterSettle(ctx, src)

	result, err := services.NewFileService().ListFiles(context.Background(), patient, queryparams.DefaultListParams("recorded_at"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Meta.TotalItems)

	_, err = os.Stat(src)
	assert.NoError(t, err)
}
