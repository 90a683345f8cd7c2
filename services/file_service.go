package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/repositories"

	"go.uber.org/zap"
)

// FileServiceError is the typed error of the file service.
type FileServiceError string

func (e FileServiceError) Error() string { return string(e) }

const (
	ErrFileNotFound       FileServiceError = "file not found"
	ErrFileInvalidInput   FileServiceError = "invalid file input"
	ErrFileStorageFailed  FileServiceError = "could not write file to storage"
	ErrFileDeletionFailed FileServiceError = "could not delete file"
	ErrPhotoInvalidType   FileServiceError = "photo must be a png or jpeg image"
)

// DocumentInput describes one record item to persist: disk content plus the
// metadata row. Data may be nil for rows without a disk body.
type DocumentInput struct {
	Kind        string
	Filename    string
	ContentType string
	Data        []byte
	Meta        string
	RecordedAt  time.Time
}

// IFileService manages a patient's on-disk folder and its file rows.
type IFileService interface {
	SaveDocument(ctx context.Context, patient *models.Patient, doc DocumentInput) (*models.PatientFile, error)
	ImportFromPath(ctx context.Context, patient *models.Patient, srcPath string) (*models.PatientFile, error)
	SetPhoto(ctx context.Context, patient *models.Patient, filename string, data []byte) (string, error)
	ListFiles(ctx context.Context, patient *models.Patient, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetFile(ctx context.Context, publicID string) (*models.PatientFile, string, error)
	DeleteFile(ctx context.Context, publicID string) error
	RemovePatientStorage(patientPublicID string) error
}

// FileService implements IFileService.
type FileService struct {
	repo        repositories.IPatientFileRepository
	patientRepo repositories.IPatientRepository
}

// NewFileService builds the service on the shared repositories.
func NewFileService() IFileService {
	return &FileService{
		repo:        repositories.NewPatientFileRepository(),
		patientRepo: repositories.NewPatientRepository(),
	}
}

// sanitizeFilename strips path separators and characters invalid on common
// filesystems, and collapses spaces to underscores.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_", "<", "_", ">", "_", ":", "_", "\"", "_",
		"/", "_", "\\", "_", "|", "_", "?", "_", "*", "_",
	)
	cleaned := strings.Trim(replacer.Replace(name), "._ ")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// storedName prefixes the sanitized name with the record timestamp.
func storedName(at time.Time, filename string) string {
	return at.Format("2006-01-02_15-04-05") + "_" + sanitizeFilename(filename)
}

// uniqueDestination resolves collisions inside the patient folder by
// appending _2, _3, ... before the extension.
func uniqueDestination(dir, name string) string {
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// SaveDocument writes the content into the patient folder (when present) and
// records the file row.
func (s *FileService) SaveDocument(ctx context.Context, patient *models.Patient, doc DocumentInput) (*models.PatientFile, error) {
	if patient == nil || patient.ID == 0 {
		return nil, fmt.Errorf("%w: missing patient", ErrFileInvalidInput)
	}
	if doc.Filename == "" {
		return nil, fmt.Errorf("%w: missing filename", ErrFileInvalidInput)
	}
	if doc.Kind == "" {
		doc.Kind = models.FileKindAttachment
	}
	if doc.RecordedAt.IsZero() {
		doc.RecordedAt = time.Now()
	}

	file := models.PatientFile{
		PatientID:   patient.ID,
		Kind:        doc.Kind,
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Meta:        doc.Meta,
		RecordedAt:  doc.RecordedAt,
		SizeBytes:   int64(len(doc.Data)),
	}

	if doc.Data != nil {
		dir := configsapp.PatientDir(patient.PublicID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			configslog.Log.Error("FileService.SaveDocument: mkdir failed", zap.String("dir", dir), zap.Error(err))
			return nil, ErrFileStorageFailed
		}
		dest := uniqueDestination(dir, storedName(doc.RecordedAt, doc.Filename))
		if err := os.WriteFile(dest, doc.Data, 0o644); err != nil {
			configslog.Log.Error("FileService.SaveDocument: write failed", zap.String("dest", dest), zap.Error(err))
			return nil, ErrFileStorageFailed
		}
		file.StoredName = filepath.Base(dest)
	}

	if err := s.repo.Create(ctx, &file); err != nil {
		configslog.Log.Error("FileService.SaveDocument: repo error", zap.Uint("patientID", patient.ID), zap.Error(err))
		return nil, ErrFileStorageFailed
	}
	configslog.SLog.Infof("Stored %s %q for patient %s", file.Kind, file.Filename, patient.PublicID)
	return &file, nil
}

// ImportFromPath attaches an existing file on disk (inbox imports). The
// source is removed after a successful copy.
func (s *FileService) ImportFromPath(ctx context.Context, patient *models.Patient, srcPath string) (*models.PatientFile, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileInvalidInput, err)
	}
	file, err := s.SaveDocument(ctx, patient, DocumentInput{
		Kind:     models.FileKindAttachment,
		Filename: filepath.Base(srcPath),
		Data:     data,
	})
	if err != nil {
		return nil, err
	}
	if err := os.Remove(srcPath); err != nil {
		configslog.SLog.Warnf("Imported %q but could not remove source: %v", srcPath, err)
	}
	return file, nil
}

// SetPhoto stores the profile photo as photo.<ext> (overwriting any previous
// one) and updates the patient record.
func (s *FileService) SetPhoto(ctx context.Context, patient *models.Patient, filename string, data []byte) (string, error) {
	if patient == nil || patient.ID == 0 || len(data) == 0 {
		return "", fmt.Errorf("%w: missing patient or photo data", ErrFileInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		return "", ErrPhotoInvalidType
	}

	dir := configsapp.PatientDir(patient.PublicID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", ErrFileStorageFailed
	}
	destName := "photo" + ext
	if err := os.WriteFile(filepath.Join(dir, destName), data, 0o644); err != nil {
		configslog.Log.Error("FileService.SetPhoto: write failed", zap.String("patient", patient.PublicID), zap.Error(err))
		return "", ErrFileStorageFailed
	}

	patient.PhotoFilename = destName
	if err := s.patientRepo.Update(ctx, patient); err != nil {
		configslog.Log.Error("FileService.SetPhoto: patient update failed", zap.Uint("id", patient.ID), zap.Error(err))
		return "", ErrFileStorageFailed
	}
	return destName, nil
}

// ListFiles pages through a patient's file rows.
func (s *FileService) ListFiles(ctx context.Context, patient *models.Patient, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if patient == nil || patient.ID == 0 {
		return nil, fmt.Errorf("%w: missing patient", ErrFileInvalidInput)
	}
	params.Validate()
	files, totalCount, err := s.repo.FindByPatientPaginated(ctx, patient.ID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: files,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetFile returns the row and, when a disk body exists, its absolute path.
func (s *FileService) GetFile(ctx context.Context, publicID string) (*models.PatientFile, string, error) {
	file, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrFileNotFound
		}
		return nil, "", err
	}
	path := ""
	if file.StoredName != "" {
		patient, err := s.patientRepo.FindByID(ctx, file.PatientID)
		if err != nil {
			return nil, "", err
		}
		path = filepath.Join(configsapp.PatientDir(patient.PublicID), file.StoredName)
	}
	return file, path, nil
}

// DeleteFile removes the row and its disk body.
func (s *FileService) DeleteFile(ctx context.Context, publicID string) error {
	file, path, err := s.GetFile(ctx, publicID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, file); err != nil {
		configslog.Log.Error("FileService.DeleteFile: repo error", zap.String("publicID", publicID), zap.Error(err))
		return ErrFileDeletionFailed
	}
	if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			configslog.SLog.Warnf("File row deleted but disk removal failed for %q: %v", path, err)
		}
	}
	return nil
}

// RemovePatientStorage deletes a patient's whole folder. Used by the patient
// delete cascade.
func (s *FileService) RemovePatientStorage(patientPublicID string) error {
	if patientPublicID == "" {
		return fmt.Errorf("%w: missing patient id", ErrFileInvalidInput)
	}
	return os.RemoveAll(configsapp.PatientDir(patientPublicID))
}

var _ IFileService = (*FileService)(nil)
