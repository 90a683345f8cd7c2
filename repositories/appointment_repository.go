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

// IAppointmentRepository is the appointment persistence interface.
type IAppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByPublicID(ctx context.Context, publicID string) (*models.Appointment, error)
	FindByPatientPaginated(ctx context.Context, patientID uint, params queryparams.ListParams) ([]models.Appointment, int64, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	FindAllByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, appointment *models.Appointment) error
	DeleteAllByPatient(ctx context.Context, patientID uint) error
}

// AppointmentRepository implements IAppointmentRepository on GORM.
type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository() IAppointmentRepository {
	return &AppointmentRepository{db: configs.GetDB()}
}

func NewAppointmentRepositoryTx(tx *gorm.DB) IAppointmentRepository {
	return &AppointmentRepository{db: tx}
}

func (r *AppointmentRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil || appointment.PatientID == 0 {
		return errors.New("appointment requires a patient reference")
	}
	return r.getDB(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) FindByPublicID(ctx context.Context, publicID string) (*models.Appointment, error) {
	if publicID == "" {
		return nil, ErrNotFound
	}
	var appointment models.Appointment
	err := r.getDB(ctx).Preload("Patient").Where("public_id = ?", publicID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AppointmentRepository.FindByPublicID: DB error", zap.String("publicID", publicID), zap.Error(err))
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) FindByPatientPaginated(ctx context.Context, patientID uint, params queryparams.ListParams) ([]models.Appointment, int64, error) {
	var appointments []models.Appointment
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Appointment{}).Where("patient_id = ?", patientID)
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("AppointmentRepository.Count: DB error", zap.Uint("patientID", patientID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return appointments, 0, nil
	}

	allowed := map[string]string{
		"starts_at":  "starts_at",
		"created_at": "created_at",
		"title":      "title",
	}
	query = query.Order(orderClause(allowed, params.SortBy, params.OrderBy, "starts_at"))
	query = query.Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&appointments).Error; err != nil {
		configslog.Log.Error("AppointmentRepository.Find: DB error", zap.Uint("patientID", patientID), zap.Error(err))
		return nil, totalCount, err
	}
	return appointments, totalCount, nil
}

// FindInRange returns appointments overlapping [from, to], patient preloaded,
// ordered by start time. Zero bounds are open.
func (r *AppointmentRepository) FindInRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	query := r.getDB(ctx).Preload("Patient")
	if !from.IsZero() {
		query = query.Where("ends_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("starts_at <= ?", to)
	}
	err := query.Order("starts_at ASC").Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.FindInRange: DB error", zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindAllByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.getDB(ctx).Where("patient_id = ?", patientID).Order("starts_at ASC").Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.FindAllByPatient: DB error", zap.Uint("patientID", patientID), zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil || appointment.ID == 0 {
		return errors.New("invalid appointment for update")
	}
	return r.getDB(ctx).Save(appointment).Error
}

func (r *AppointmentRepository) Delete(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil || appointment.ID == 0 {
		return errors.New("invalid appointment for delete")
	}
	result := r.getDB(ctx).Delete(appointment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) DeleteAllByPatient(ctx context.Context, patientID uint) error {
	return r.getDB(ctx).Where("patient_id = ?", patientID).Delete(&models.Appointment{}).Error
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)
