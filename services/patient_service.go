package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"praxisnote.app/configs"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PatientServiceError is the typed error of the patient service.
type PatientServiceError string

func (e PatientServiceError) Error() string { return string(e) }

const (
	ErrPatientNotFound       PatientServiceError = "patient not found"
	ErrPatientNameRequired   PatientServiceError = "patient full name is required"
	ErrPatientInvalidDOB     PatientServiceError = "date of birth must be YYYY-MM-DD"
	ErrPatientCreationFailed PatientServiceError = "could not create patient"
	ErrPatientUpdateFailed   PatientServiceError = "could not update patient"
	ErrPatientDeletionFailed PatientServiceError = "could not delete patient"
)

// PatientInput carries the editable demographic fields.
type PatientInput struct {
	FullName         string `json:"full_name" form:"full_name"`
	DocumentType     string `json:"document_type" form:"document_type"`
	DocumentNumber   string `json:"document_number" form:"document_number"`
	DateOfBirth      string `json:"date_of_birth" form:"date_of_birth"`
	Sex              string `json:"sex" form:"sex"`
	Phone            string `json:"phone" form:"phone"`
	Email            string `json:"email" form:"email"`
	Address          string `json:"address" form:"address"`
	City             string `json:"city" form:"city"`
	Occupation       string `json:"occupation" form:"occupation"`
	MaritalStatus    string `json:"marital_status" form:"marital_status"`
	Insurance        string `json:"insurance" form:"insurance"`
	EmergencyContact string `json:"emergency_contact" form:"emergency_contact"`
	ChiefComplaint   string `json:"chief_complaint" form:"chief_complaint"`
	Notes            string `json:"notes" form:"notes"`
}

// IPatientService is the patient roster API.
type IPatientService interface {
	CreatePatient(ctx context.Context, input PatientInput) (*models.Patient, error)
	GetPatient(ctx context.Context, publicID string) (*models.Patient, error)
	GetAllPatients(ctx context.Context) ([]models.Patient, error)
	GetPatientsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdatePatient(ctx context.Context, publicID string, input PatientInput) (*models.Patient, error)
	DeletePatient(ctx context.Context, publicID string) error
	GetPatientCount(ctx context.Context) (int64, error)
}

// PatientService implements IPatientService.
type PatientService struct {
	repo  repositories.IPatientRepository
	files IFileService
}

// NewPatientService builds the service on the shared repositories.
func NewPatientService() IPatientService {
	return &PatientService{
		repo:  repositories.NewPatientRepository(),
		files: NewFileService(),
	}
}

func (s *PatientService) validate(input *PatientInput) error {
	input.FullName = strings.TrimSpace(input.FullName)
	if input.FullName == "" {
		return ErrPatientNameRequired
	}
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	if input.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", input.DateOfBirth); err != nil {
			return ErrPatientInvalidDOB
		}
	}
	return nil
}

func applyInput(patient *models.Patient, input PatientInput) {
	patient.FullName = input.FullName
	patient.DocumentType = input.DocumentType
	patient.DocumentNumber = input.DocumentNumber
	patient.DateOfBirth = input.DateOfBirth
	patient.Sex = input.Sex
	patient.Phone = input.Phone
	patient.Email = input.Email
	patient.Address = input.Address
	patient.City = input.City
	patient.Occupation = input.Occupation
	patient.MaritalStatus = input.MaritalStatus
	patient.Insurance = input.Insurance
	patient.EmergencyContact = input.EmergencyContact
	patient.ChiefComplaint = input.ChiefComplaint
	patient.Notes = input.Notes
}

func (s *PatientService) CreatePatient(ctx context.Context, input PatientInput) (*models.Patient, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	patient := models.Patient{}
	applyInput(&patient, input)
	if err := s.repo.Create(ctx, &patient); err != nil {
		configslog.Log.Error("PatientService.CreatePatient: repo error", zap.String("name", input.FullName), zap.Error(err))
		return nil, ErrPatientCreationFailed
	}
	configslog.SLog.Infof("Patient created: %s (%s)", patient.FullName, patient.PublicID)
	return &patient, nil
}

func (s *PatientService) GetPatient(ctx context.Context, publicID string) (*models.Patient, error) {
	patient, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) GetAllPatients(ctx context.Context) ([]models.Patient, error) {
	return s.repo.FindAll(ctx)
}

func (s *PatientService) GetPatientsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	patients, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: patients,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, publicID string, input PatientInput) (*models.Patient, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	patient, err := s.GetPatient(ctx, publicID)
	if err != nil {
		return nil, err
	}
	applyInput(patient, input)
	if err := s.repo.Update(ctx, patient); err != nil {
		configslog.Log.Error("PatientService.UpdatePatient: repo error", zap.String("publicID", publicID), zap.Error(err))
		return nil, ErrPatientUpdateFailed
	}
	return patient, nil
}

// DeletePatient removes the patient together with every file row and
// appointment in one transaction, then drops the on-disk folder. The folder
// removal happens last so a failed transaction leaves the files in place.
func (s *PatientService) DeletePatient(ctx context.Context, publicID string) error {
	patient, err := s.GetPatient(ctx, publicID)
	if err != nil {
		return err
	}

	err = configs.GetDB().Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)
		fileRepo := repositories.NewPatientFileRepositoryTx(tx)
		appointmentRepo := repositories.NewAppointmentRepositoryTx(tx)
		patientRepo := repositories.NewPatientRepositoryTx(tx)

		if err := fileRepo.DeleteAllByPatient(txCtx, patient.ID); err != nil {
			return err
		}
		if err := appointmentRepo.DeleteAllByPatient(txCtx, patient.ID); err != nil {
			return err
		}
		return patientRepo.Delete(txCtx, patient)
	})
	if err != nil {
		configslog.Log.Error("PatientService.DeletePatient: transaction failed", zap.String("publicID", publicID), zap.Error(err))
		return ErrPatientDeletionFailed
	}

	if err := s.files.RemovePatientStorage(patient.PublicID); err != nil {
		configslog.SLog.Warnf("Patient %s deleted but folder removal failed: %v", patient.PublicID, err)
	}
	configslog.SLog.Infof("Patient deleted: %s (%s)", patient.FullName, patient.PublicID)
	return nil
}

func (s *PatientService) GetPatientCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

var _ IPatientService = (*PatientService)(nil)
