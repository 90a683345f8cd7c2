package handlers

import (
	"net/http"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExamHandler serves the exam form catalog and the exam/note records.
type ExamHandler struct {
	patients services.IPatientService
	exams    services.IExamService
}

// NewExamHandler builds the handler on the default services.
func NewExamHandler() *ExamHandler {
	return &ExamHandler{
		patients: services.NewPatientService(),
		exams:    services.NewExamService(),
	}
}

// templateField is the form view of one catalog row, with the pipe-separated
// option column split into the list the UI renders.
type templateField struct {
	Section  string   `json:"section"`
	FieldKey string   `json:"field_key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Position int      `json:"position"`
}

// GetTemplate returns the seeded exam form in display order, for the UI to
// render the blank form from.
func (h *ExamHandler) GetTemplate(c *fiber.Ctx) error {
	fields, err := h.exams.GetTemplate(c.UserContext())
	if err != nil {
		configslog.Log.Error("API - GetTemplate Error", zap.Error(err))
		return respondError(c, err)
	}
	view := make([]templateField, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		view = append(view, templateField{
			Section:  f.Section,
			FieldKey: f.FieldKey,
			Label:    f.Label,
			Type:     f.Type,
			Options:  f.OptionList(),
			Position: f.Position,
		})
	}
	return respondData(c, http.StatusOK, view)
}

func (h *ExamHandler) CreateExam(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	var input services.ExamInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrExamEmptyAnswers)
	}
	file, err := h.exams.CreateExam(c.UserContext(), patient, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, file)
}

func (h *ExamHandler) CreateNote(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	var input services.NoteInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrNoteEmptyBody)
	}
	file, err := h.exams.CreateNote(c.UserContext(), patient, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, file)
}

// ListRecords pages through exams (default) or notes (?kind=note).
func (h *ExamHandler) ListRecords(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("recorded_at")
	}
	result, _, err := h.exams.ListRecords(c.UserContext(), patient, c.Query("kind"), params)
	if err != nil {
		configslog.Log.Error("API - ListRecords Error", zap.String("patient", patient.PublicID), zap.Error(err))
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, result)
}

func (h *ExamHandler) GetRecord(c *fiber.Ctx) error {
	record, err := h.exams.GetRecord(c.UserContext(), c.Params("recordID"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, record)
}
