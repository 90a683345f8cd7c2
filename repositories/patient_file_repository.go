package repositories

import (
	"context"
	"errors"
	"time"

	"praxisnote.app/configs"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IPatientFileRepository is the persistence interface for record items.
type IPatientFileRepository interface {
	Create(ctx context.Context, file *models.PatientFile) error
	FindByPublicID(ctx context.Context, publicID string) (*models.PatientFile, error)
	FindByPatientPaginated(ctx context.Context, patientID uint, params queryparams.ListParams) ([]models.PatientFile, int64, error)
	FindByPatientAndKinds(ctx context.Context, patientID uint, kinds []string, from, to time.Time) ([]models.PatientFile, error)
	FindAllByPatient(ctx context.Context, patientID uint) ([]models.PatientFile, error)
	Update(ctx context.Context, file *models.PatientFile) error
	Delete(ctx context.Context, file *models.PatientFile) error
	DeleteAllByPatient(ctx context.Context, patientID uint) error
}

// PatientFileRepository implements IPatientFileRepository on GORM.
type PatientFileRepository struct {
	db *gorm.DB
}

func NewPatientFileRepository() IPatientFileRepository {
	return &PatientFileRepository{db: configs.GetDB()}
}

func NewPatientFileRepositoryTx(tx *gorm.DB) IPatientFileRepository {
	return &PatientFileRepository{db: tx}
}

func (r *PatientFileRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *PatientFileRepository) Create(ctx context.Context, file *models.PatientFile) error {
	if file == nil || file.PatientID == 0 {
		return errors.New("patient file requires a patient reference")
	}
	return r.getDB(ctx).Create(file).Error
}

func (r *PatientFileRepository) FindByPublicID(ctx context.Context, publicID string) (*models.PatientFile, error) {
	if publicID == "" {
		return nil, ErrNotFound
	}
	var file models.PatientFile
	err := r.getDB(ctx).Where("public_id = ?", publicID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PatientFileRepository.FindByPublicID: DB error", zap.String("publicID", publicID), zap.Error(err))
		return nil, err
	}
	return &file, nil
}

// FindByPatientPaginated lists a patient's files newest first, optionally
// filtered by kind.
func (r *PatientFileRepository) FindByPatientPaginated(ctx context.Context, patientID uint, params queryparams.ListParams) ([]models.PatientFile, int64, error) {
	var files []models.PatientFile
	var totalCount int64

	query := r.getDB(ctx).Model(&models.PatientFile{}).Where("patient_id = ?", patientID)
	if params.Kind != "" {
		query = query.Where("kind = ?", params.Kind)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("PatientFileRepository.Count: DB error", zap.Uint("patientID", patientID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return files, 0, nil
	}

	allowed := map[string]string{
		"recorded_at": "recorded_at",
		"created_at":  "created_at",
		"filename":    "filename",
		"kind":        "kind",
	}
	query = query.Order(orderClause(allowed, params.SortBy, params.OrderBy, "recorded_at"))
	query = query.Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&files).Error; err != nil {
		configslog.Log.Error("PatientFileRepository.Find: DB error", zap.Uint("patientID", patientID), zap.Error(err))
		return nil, totalCount, err
	}
	return files, totalCount, nil
}

// FindByPatientAndKinds returns files of the given kinds within [from, to],
// ordered oldest first. Zero bounds are open.
func (r *PatientFileRepository) FindByPatientAndKinds(ctx context.Context, patientID uint, kinds []string, from, to time.Time) ([]models.PatientFile, error) {
	var files []models.PatientFile
	query := r.getDB(ctx).Where("patient_id = ? AND kind IN ?", patientID, kinds)
	if !from.IsZero() {
		query = query.Where("recorded_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("recorded_at <= ?", to)
	}
	err := query.Order("recorded_at ASC").Find(&files).Error
	if err != nil {
		configslog.Log.Error("PatientFileRepository.FindByPatientAndKinds: DB error", zap.Uint("patientID", patientID), zap.Error(err))
		return nil, err
	}
	return files, nil
}

func (r *PatientFileRepository) FindAllByPatient(ctx context.Context, patientID uint) ([]models.PatientFile, error) {
	var files []models.PatientFile
	err := r.getDB(ctx).Where("patient_id = ?", patientID).Order("recorded_at DESC").Find(&files).Error
	if err != nil {
		configslog.Log.Error("PatientFileRepository.FindAllByPatient: DB error", zap.Uint("patientID", patientID), zap.Error(err))
		return nil, err
	}
	return files, nil
}

func (r *PatientFileRepository) Update(ctx context.Context, file *models.PatientFile) error {
	if file == nil || file.ID == 0 {
		return errors.New("invalid patient file for update")
	}
	return r.getDB(ctx).Save(file).Error
}

func (r *PatientFileRepository) Delete(ctx context.Context, file *models.PatientFile) error {
	if file == nil || file.ID == 0 {
		return errors.New("invalid patient file for delete")
	}
	result := r.getDB(ctx).Delete(file)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllByPatient removes every file row of a patient. The cascade is a
// linear filter by patient id; there is no FK enforcement beyond this.
func (r *PatientFileRepository) DeleteAllByPatient(ctx context.Context, patientID uint) error {
	return r.getDB(ctx).Where("patient_id = ?", patientID).Delete(&models.PatientFile{}).Error
}

var _ IPatientFileRepository = (*PatientFileRepository)(nil)
