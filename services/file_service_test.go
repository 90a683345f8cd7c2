package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "informe_final.pdf", sanitizeFilename("informe final.pdf"))
	assert.Equal(t, "a_b.txt", sanitizeFilename("../a/b.txt"))
	assert.Equal(t, "file", sanitizeFilename("   "))
}

func TestSaveDocumentStampsAndResolvesCollisions(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	svc := NewFileService()

	at := mustTime(t, "2026-05-01T09:30:00Z")
	first, err := svc.SaveDocument(ctx, patient, DocumentInput{
		Filename:   "report.pdf",
		Data:       []byte("one"),
		RecordedAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t, at.Format("2006-01-02_15-04-05")+"_report.pdf", first.StoredName)

	second, err := svc.SaveDocument(ctx, patient, DocumentInput{
		Filename:   "report.pdf",
		Data:       []byte("two"),
		RecordedAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t, at.Format("2006-01-02_15-04-05")+"_report_2.pdf", second.StoredName)

	dir := configsapp.PatientDir(patient.PublicID)
	for _, f := range []*models.PatientFile{first, second} {
		_, err := os.Stat(filepath.Join(dir, f.StoredName))
		assert.NoError(t, err)
	}
}

func TestSetPhotoOverwritesByConvention(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	svc := NewFileService()

	_, err := svc.SetPhoto(ctx, patient, "portrait.gif", []byte("gif"))
	assert.ErrorIs(t, err, ErrPhotoInvalidType)

	name, err := svc.SetPhoto(ctx, patient, "portrait.JPG", []byte("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", name)

	reloaded, err := NewPatientService().GetPatient(ctx, patient.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", reloaded.PhotoFilename)

	body, err := os.ReadFile(filepath.Join(configsapp.PatientDir(patient.PublicID), "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(body))
}

func TestImportFromPathMovesSource(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	svc := NewFileService()

	src := filepath.Join(t.TempDir(), "dropped scan.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0o644))

	file, err := svc.ImportFromPath(ctx, patient, src)
	require.NoError(t, err)
	assert.Equal(t, "dropped scan.png", file.Filename)
	assert.Equal(t, models.FileKindAttachment, file.Kind)

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteFileRemovesRowAndDisk(t *testing.T) {
	setupTest(t)
	ctx := context.Background()
	patient := createTestPatient(t)
	svc := NewFileService()

	file, err := svc.SaveDocument(ctx, patient, DocumentInput{
		Filename:   "note.txt",
		Data:       []byte("x"),
		RecordedAt: time.Now(),
	})
	require.NoError(t, err)
	path := filepath.Join(configsapp.PatientDir(patient.PublicID), file.StoredName)

	require.NoError(t, svc.DeleteFile(ctx, file.PublicID))

	_, _, err = svc.GetFile(ctx, file.PublicID)
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
