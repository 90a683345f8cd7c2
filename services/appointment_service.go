package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/repositories"

	"go.uber.org/zap"
)

// AppointmentServiceError is the typed error of the appointment service.
type AppointmentServiceError string

func (e AppointmentServiceError) Error() string { return string(e) }

const (
	ErrAppointmentNotFound       AppointmentServiceError = "appointment not found"
	ErrAppointmentTitleRequired  AppointmentServiceError = "appointment title is required"
	ErrAppointmentInvalidTimes   AppointmentServiceError = "appointment must end after it starts"
	ErrAppointmentCreationFailed AppointmentServiceError = "could not create appointment"
	ErrAppointmentUpdateFailed   AppointmentServiceError = "could not update appointment"
	ErrAppointmentDeletionFailed AppointmentServiceError = "could not delete appointment"
)

// AppointmentInput carries the editable appointment fields.
type AppointmentInput struct {
	Title    string    `json:"title" form:"title"`
	StartsAt time.Time `json:"starts_at" form:"starts_at"`
	EndsAt   time.Time `json:"ends_at" form:"ends_at"`
	Location string    `json:"location" form:"location"`
	Notes    string    `json:"notes" form:"notes"`
}

// IAppointmentService is the scheduling API.
type IAppointmentService interface {
	CreateAppointment(ctx context.Context, patient *models.Patient, input AppointmentInput) (*models.Appointment, error)
	GetAppointment(ctx context.Context, publicID string) (*models.Appointment, error)
	GetAppointmentsPaginated(ctx context.Context, patient *models.Patient, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAppointmentsInRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, publicID string, input AppointmentInput) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, publicID string) error
	MarkReminderSent(ctx context.Context, appointment *models.Appointment) error
}

// AppointmentService implements IAppointmentService.
type AppointmentService struct {
	repo repositories.IAppointmentRepository
}

// NewAppointmentService builds the service on the shared repositories.
func NewAppointmentService() IAppointmentService {
	return &AppointmentService{repo: repositories.NewAppointmentRepository()}
}

func (s *AppointmentService) validate(input *AppointmentInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return ErrAppointmentTitleRequired
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.EndsAt.After(input.StartsAt) {
		return ErrAppointmentInvalidTimes
	}
	return nil
}

func (s *AppointmentService) CreateAppointment(ctx context.Context, patient *models.Patient, input AppointmentInput) (*models.Appointment, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	appointment := models.Appointment{
		PatientID: patient.ID,
		Title:     input.Title,
		StartsAt:  input.StartsAt,
		EndsAt:    input.EndsAt,
		Location:  input.Location,
		Notes:     input.Notes,
	}
	if err := s.repo.Create(ctx, &appointment); err != nil {
		configslog.Log.Error("AppointmentService.CreateAppointment: repo error", zap.Uint("patientID", patient.ID), zap.Error(err))
		return nil, ErrAppointmentCreationFailed
	}
	configslog.SLog.Infof("Appointment %q scheduled for patient %s at %s", appointment.Title, patient.PublicID, appointment.StartsAt.Format(time.RFC3339))
	return &appointment, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, publicID string) (*models.Appointment, error) {
	appointment, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) GetAppointmentsPaginated(ctx context.Context, patient *models.Patient, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	appointments, totalCount, err := s.repo.FindByPatientPaginated(ctx, patient.ID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: appointments,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetAppointmentsInRange returns every appointment overlapping [from, to]
// across all patients, patient preloaded.
func (s *AppointmentService) GetAppointmentsInRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	return s.repo.FindInRange(ctx, from, to)
}

func (s *AppointmentService) UpdateAppointment(ctx context.Context, publicID string, input AppointmentInput) (*models.Appointment, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}
	appointment, err := s.GetAppointment(ctx, publicID)
	if err != nil {
		return nil, err
	}
	appointment.Title = input.Title
	appointment.StartsAt = input.StartsAt
	appointment.EndsAt = input.EndsAt
	appointment.Location = input.Location
	appointment.Notes = input.Notes
	if err := s.repo.Update(ctx, appointment); err != nil {
		configslog.Log.Error("AppointmentService.UpdateAppointment: repo error", zap.String("publicID", publicID), zap.Error(err))
		return nil, ErrAppointmentUpdateFailed
	}
	return appointment, nil
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, publicID string) error {
	appointment, err := s.GetAppointment(ctx, publicID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, appointment); err != nil {
		configslog.Log.Error("AppointmentService.DeleteAppointment: repo error", zap.String("publicID", publicID), zap.Error(err))
		return ErrAppointmentDeletionFailed
	}
	return nil
}

// MarkReminderSent flags an appointment so the morning reminder job does not
// repeat it.
func (s *AppointmentService) MarkReminderSent(ctx context.Context, appointment *models.Appointment) error {
	appointment.ReminderSent = true
	return s.repo.Update(ctx, appointment)
}

var _ IAppointmentService = (*AppointmentService)(nil)
