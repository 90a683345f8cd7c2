package handlers

import (
	"net/http"
	"strconv"

	"praxisnote.app/configs/configslog"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrendHandler serves the trend radar.
type TrendHandler struct {
	patients services.IPatientService
	trends   services.ITrendService
}

// NewTrendHandler builds the handler on the default services.
func NewTrendHandler() *TrendHandler {
	return &TrendHandler{
		patients: services.NewPatientService(),
		trends:   services.NewTrendService(),
	}
}

// GetRadar computes the radar for ?from= ?to= ?mode= ?scale=.
func (h *TrendHandler) GetRadar(c *fiber.Ctx) error {
	patient, err := h.patients.GetPatient(c.UserContext(), c.Params("patientID"))
	if err != nil {
		return respondError(c, err)
	}

	req := services.TrendRequest{
		From: parseTimeParam(c.Query("from"), false),
		To:   parseTimeParam(c.Query("to"), true),
		Mode: c.Query("mode"),
	}
	if raw := c.Query("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondError(c, services.ErrTrendInvalidScale)
		}
		req.Scale = scale
	}

	result, err := h.trends.Radar(c.UserContext(), patient, req)
	if err != nil {
		configslog.Log.Error("API - GetRadar Error", zap.String("patient", patient.PublicID), zap.Error(err))
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, result)
}
