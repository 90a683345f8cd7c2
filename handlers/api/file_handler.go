package handlers

import (
	"io"
	"net/http"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/pkg/queryparams"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FileHandler serves attachment upload, listing and download.
type FileHandler struct {
	patients services.IPatientService
	files    services.IFileService
}

// NewFileHandler builds the handler on the default services.
func NewFileHandler() *FileHandler {
	return &FileHandler{
		patients: services.NewPatientService(),
		files:    services.NewFileService(),
	}
}

// ListFiles pages through a patient's files; ?kind= narrows to one kind.
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("recorded_at")
	}
	params.Kind = c.Query("kind", params.Kind)
	result, err := h.files.ListFiles(c.UserContext(), patient, params)
	if err != nil {
		configslog.Log.Error("API - ListFiles Error", zap.String("patient", patient.PublicID), zap.Error(err))
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, result)
}

// UploadFiles attaches every part of the multipart field "files".
func (h *FileHandler) UploadFiles(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return respondError(c, services.ErrFileInvalidInput)
	}

	stored := make([]interface{}, 0, len(form.File["files"]))
	for _, header := range form.File["files"] {
		src, err := header.Open()
		if err != nil {
			return respondError(c, services.ErrFileInvalidInput)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return respondError(c, services.ErrFileInvalidInput)
		}
		file, err := h.files.SaveDocument(c.UserContext(), patient, services.DocumentInput{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
		if err != nil {
			return respondError(c, err)
		}
		stored = append(stored, file)
	}
	return respondData(c, http.StatusCreated, stored)
}

// DownloadFile streams a file body with its original name.
func (h *FileHandler) DownloadFile(c *fiber.Ctx) error {
	file, path, err := h.files.GetFile(c.UserContext(), c.Params("fileID"))
	if err != nil {
		return respondError(c, err)
	}
	if path == "" {
		return respondError(c, services.ErrFileNotFound)
	}
	return c.Download(path, file.Filename)
}

func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	if err := h.files.DeleteFile(c.UserContext(), c.Params("fileID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
