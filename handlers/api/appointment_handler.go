package handlers

import (
	"net/http"
	"time"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AppointmentHandler serves the scheduling API.
type AppointmentHandler struct {
	patients services.IPatientService
	service  services.IAppointmentService
}

// NewAppointmentHandler builds the handler on the default services.
func NewAppointmentHandler() *AppointmentHandler {
	return &AppointmentHandler{
		patients: services.NewPatientService(),
		service:  services.NewAppointmentService(),
	}
}

// parseTimeParam accepts RFC3339 or a bare date. Dates are taken as local
// midnight; endOfDay shifts a bare date to 23:59:59 for closed upper bounds.
func parseTimeParam(raw string, endOfDay bool) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t
}

// calendarItem decorates an appointment with the patient reference its
// JSON view hides.
type calendarItem struct {
	models.Appointment
	PatientRef  string `json:"patient_id"`
	PatientName string `json:"patient_name"`
}

// ListCalendar returns every appointment overlapping ?from= / ?to= across
// all patients, for the calendar view.
func (h *AppointmentHandler) ListCalendar(c *fiber.Ctx) error {
	from := parseTimeParam(c.Query("from"), false)
	to := parseTimeParam(c.Query("to"), true)
	appointments, err := h.service.GetAppointmentsInRange(c.UserContext(), from, to)
	if err != nil {
		configslog.Log.Error("API - ListCalendar Error", zap.Error(err))
		return respondError(c, err)
	}
	items := make([]calendarItem, 0, len(appointments))
	for i := range appointments {
		items = append(items, calendarItem{
			Appointment: appointments[i],
			PatientRef:  appointments[i].Patient.PublicID,
			PatientName: appointments[i].Patient.FullName,
		})
	}
	return respondData(c, http.StatusOK, items)
}

// ListAppointments pages through one patient's appointments.
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("starts_at")
	}
	result, err := h.service.GetAppointmentsPaginated(c.UserContext(), patient, params)
	if err != nil {
		configslog.Log.Error("API - ListAppointments Error", zap.String("patient", patient.PublicID), zap.Error(err))
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, result)
}

func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	var input services.AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrAppointmentInvalidTimes)
	}
	appointment, err := h.service.CreateAppointment(c.UserContext(), patient, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, appointment)
}

func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	appointment, err := h.service.GetAppointment(c.UserContext(), c.Params("appointmentID"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, appointment)
}

func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	var input services.AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrAppointmentInvalidTimes)
	}
	appointment, err := h.service.UpdateAppointment(c.UserContext(), c.Params("appointmentID"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	if err := h.service.DeleteAppointment(c.UserContext(), c.Params("appointmentID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
