package handlers

import (
	"errors"
	"net/http"

	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP status codes. Anything unmapped is
// a 500 with a generic body so internals never leak to the UI.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrExamNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrPatientNameRequired),
		errors.Is(err, services.ErrPatientInvalidDOB),
		errors.Is(err, services.ErrAppointmentTitleRequired),
		errors.Is(err, services.ErrAppointmentInvalidTimes),
		errors.Is(err, services.ErrExamEmptyAnswers),
		errors.Is(err, services.ErrNoteEmptyBody),
		errors.Is(err, services.ErrFileInvalidInput),
		errors.Is(err, services.ErrPhotoInvalidType),
		errors.Is(err, services.ErrTrendInvalidScale),
		errors.Is(err, services.ErrLockPassphraseTooShort):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrLockInvalidPassphrase):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a service error as the JSON toast payload the shell
// displays.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "an internal error occurred"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}
