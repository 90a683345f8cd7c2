package repositories

import (
	"context"
	"errors"
	"strings"

	"praxisnote.app/configs"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IPatientRepository is the patient persistence interface.
type IPatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByID(ctx context.Context, id uint) (*models.Patient, error)
	FindByPublicID(ctx context.Context, publicID string) (*models.Patient, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Patient, int64, error)
	FindAll(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, patient *models.Patient) error
	Count(ctx context.Context) (int64, error)
}

// PatientRepository implements IPatientRepository on GORM.
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository builds a repository on the shared connection.
func NewPatientRepository() IPatientRepository {
	return &PatientRepository{db: configs.GetDB()}
}

// NewPatientRepositoryTx builds a repository bound to a transaction.
func NewPatientRepositoryTx(tx *gorm.DB) IPatientRepository {
	return &PatientRepository{db: tx}
}

func (r *PatientRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if patient == nil {
		return errors.New("nil patient")
	}
	return r.getDB(ctx).Create(patient).Error
}

func (r *PatientRepository) FindByID(ctx context.Context, id uint) (*models.Patient, error) {
	if id == 0 {
		return nil, errors.New("invalid patient ID")
	}
	var patient models.Patient
	err := r.getDB(ctx).First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PatientRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) FindByPublicID(ctx context.Context, publicID string) (*models.Patient, error) {
	if publicID == "" {
		return nil, ErrNotFound
	}
	var patient models.Patient
	err := r.getDB(ctx).Where("public_id = ?", publicID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PatientRepository.FindByPublicID: DB error", zap.String("publicID", publicID), zap.Error(err))
		return nil, err
	}
	return &patient, nil
}

// FindAllPaginated lists patients matching the search query. The query is a
// case-insensitive substring over name, document number, city and occupation.
func (r *PatientRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Patient, int64, error) {
	var patients []models.Patient
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Patient{})
	if params.Query != "" {
		like := "%" + strings.ToLower(params.Query) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(COALESCE(document_number,'')) LIKE ? OR LOWER(COALESCE(city,'')) LIKE ? OR LOWER(COALESCE(occupation,'')) LIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("PatientRepository.Count: DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return patients, 0, nil
	}

	allowed := map[string]string{
		"created_at":    "created_at",
		"updated_at":    "updated_at",
		"full_name":     "full_name",
		"city":          "city",
		"date_of_birth": "date_of_birth",
	}
	query = query.Order(orderClause(allowed, params.SortBy, params.OrderBy, "updated_at"))
	query = query.Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&patients).Error; err != nil {
		configslog.Log.Error("PatientRepository.Find: DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return patients, totalCount, nil
}

// FindAll returns the whole roster, newest update first. Used by exports.
func (r *PatientRepository) FindAll(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.getDB(ctx).Order("updated_at DESC").Find(&patients).Error
	if err != nil {
		configslog.Log.Error("PatientRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	if patient == nil || patient.ID == 0 {
		return errors.New("invalid patient for update")
	}
	return r.getDB(ctx).Save(patient).Error
}

func (r *PatientRepository) Delete(ctx context.Context, patient *models.Patient) error {
	if patient == nil || patient.ID == 0 {
		return errors.New("invalid patient for delete")
	}
	result := r.getDB(ctx).Delete(patient)
	if result.Error != nil {
		configslog.Log.Error("PatientRepository.Delete: DB error", zap.Uint("id", patient.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PatientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Patient{}).Count(&count).Error
	return count, err
}

var _ IPatientRepository = (*PatientRepository)(nil)
