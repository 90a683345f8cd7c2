package handlers

import (
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/pkg/renderer"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
)

// AppHandler serves the single-page shell and the print views.
type AppHandler struct {
	patients services.IPatientService
	exams    services.IExamService
	lock     services.ILockService
}

// NewAppHandler builds the handler on the default services.
func NewAppHandler() *AppHandler {
	return &AppHandler{
		patients: services.NewPatientService(),
		exams:    services.NewExamService(),
		lock:     services.NewLockService(),
	}
}

// ShowApp renders the shell; all record interaction happens against /api.
func (h *AppHandler) ShowApp(c *fiber.Ctx) error {
	return renderer.Render(c, "app", "layouts/main", fiber.Map{
		"Title":       configsapp.PracticeName(),
		"Practice":    configsapp.PracticeName(),
		"LockEnabled": h.lock.IsLockEnabled(c.UserContext()),
	})
}

// ShowPrintRecord renders an exam or note as a printable page.
func (h *AppHandler) ShowPrintRecord(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return fiber.ErrNotFound
	}
	record, err := h.exams.GetRecord(c.UserContext(), c.Params("recordID"))
	if err != nil {
		return fiber.ErrNotFound
	}
	fields, err := h.exams.GetTemplate(c.UserContext())
	if err != nil {
		return fiber.ErrInternalServerError
	}

	type printRow struct {
		Section string
		Label   string
		Value   string
	}
	rows := make([]printRow, 0, len(record.Answers))
	for _, f := range fields {
		if v, ok := record.Answers[f.FieldKey]; ok {
			rows = append(rows, printRow{Section: f.Section, Label: f.Label, Value: v})
		}
	}

	return renderer.Render(c, "print_record", "layouts/print", fiber.Map{
		"Title":      "Record - " + patient.FullName,
		"Practice":   configsapp.PracticeName(),
		"Patient":    patient,
		"Record":     record,
		"Rows":       rows,
		"PrintedAt":  time.Now().Format("2006-01-02 15:04"),
		"RecordedAt": record.RecordedAt.Format("2006-01-02 15:04"),
	})
}
