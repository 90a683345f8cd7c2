package handlers

import (
	"net/http"
	"time"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExportHandler serves the calendar, roster and snapshot exports.
type ExportHandler struct {
	service services.IExportService
}

// NewExportHandler builds the handler on the default services.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{service: services.NewExportService()}
}

// DownloadCalendar streams the appointment book as an .ics file, optionally
// limited by ?from= / ?to=.
func (h *ExportHandler) DownloadCalendar(c *fiber.Ctx) error {
	from := parseTimeParam(c.Query("from"), false)
	to := parseTimeParam(c.Query("to"), true)
	data, err := h.service.CalendarICS(c.UserContext(), from, to)
	if err != nil {
		configslog.Log.Error("API - DownloadCalendar Error", zap.Error(err))
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="appointments.ics"`)
	return c.Status(http.StatusOK).Send(data)
}

// DownloadRoster streams the patient roster as CSV.
func (h *ExportHandler) DownloadRoster(c *fiber.Ctx) error {
	data, err := h.service.RosterCSV(c.UserContext())
	if err != nil {
		configslog.Log.Error("API - DownloadRoster Error", zap.Error(err))
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="patients.csv"`)
	return c.Status(http.StatusOK).Send(data)
}

// DownloadSnapshot streams the whole record set as one JSON document.
func (h *ExportHandler) DownloadSnapshot(c *fiber.Ctx) error {
	data, err := h.service.Snapshot(c.UserContext())
	if err != nil {
		configslog.Log.Error("API - DownloadSnapshot Error", zap.Error(err))
		return respondError(c, err)
	}
	name := "snapshot_" + time.Now().Format("2006-01-02") + ".json"
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Status(http.StatusOK).Send(data)
}

// WriteSnapshot stores a snapshot on disk, same as the nightly job.
func (h *ExportHandler) WriteSnapshot(c *fiber.Ctx) error {
	path, err := h.service.WriteSnapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, fiber.Map{"path": path})
}
