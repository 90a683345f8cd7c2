package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/models"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PatientHandler serves the patient roster API.
type PatientHandler struct {
	service services.IPatientService
	files   services.IFileService
}

// NewPatientHandler builds the handler on the default services.
func NewPatientHandler() *PatientHandler {
	return &PatientHandler{
		service: services.NewPatientService(),
		files:   services.NewFileService(),
	}
}

// patientView decorates a patient with its derived age.
func patientView(p *models.Patient) fiber.Map {
	view := fiber.Map{"patient": p}
	if age := p.Age(time.Now()); age >= 0 {
		view["age"] = age
	}
	return view
}

// ListPatients returns the paginated roster; ?q= searches name, document
// number, city and occupation.
func (h *PatientHandler) ListPatients(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("updated_at")
	}
	result, err := h.service.GetPatientsPaginated(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("API - ListPatients Error", zap.Error(err))
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, result)
}

func (h *PatientHandler) CreatePatient(c *fiber.Ctx) error {
	var input services.PatientInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrPatientNameRequired)
	}
	patient, err := h.service.CreatePatient(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, patientView(patient))
}

func (h *PatientHandler) GetPatient(c *fiber.Ctx) error {
	patient, err := h.service.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, patientView(patient))
}

func (h *PatientHandler) UpdatePatient(c *fiber.Ctx) error {
	var input services.PatientInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrPatientNameRequired)
	}
	patient, err := h.service.UpdatePatient(c.UserContext(), c.Params("patientID"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, patientView(patient))
}

func (h *PatientHandler) DeletePatient(c *fiber.Ctx) error {
	if err := h.service.DeletePatient(c.UserContext(), c.Params("patientID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// UploadPhoto replaces the profile photo from a multipart form field named
// "photo".
func (h *PatientHandler) UploadPhoto(c *fiber.Ctx) error {
	patient, err := h.service.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	header, err := c.FormFile("photo")
	if err != nil {
		return respondError(c, services.ErrFileInvalidInput)
	}
	src, err := header.Open()
	if err != nil {
		return respondError(c, services.ErrFileInvalidInput)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return respondError(c, services.ErrFileInvalidInput)
	}
	name, err := h.files.SetPhoto(c.UserContext(), patient, header.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, fiber.Map{"photo": name})
}

// GetPhoto streams the profile photo off disk.
func (h *PatientHandler) GetPhoto(c *fiber.Ctx) error {
	patient, err := h.service.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	if patient.PhotoFilename == "" {
		return respondError(c, services.ErrFileNotFound)
	}
	return c.SendFile(filepath.Join(configsapp.PatientDir(patient.PublicID), patient.PhotoFilename))
}
