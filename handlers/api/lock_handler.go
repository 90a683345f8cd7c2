package handlers

import (
	"net/http"

	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
)

// LockAPIHandler manages the passphrase lock from the settings screen.
type LockAPIHandler struct {
	lock services.ILockService
}

// NewLockAPIHandler builds the handler on the default services.
func NewLockAPIHandler() *LockAPIHandler {
	return &LockAPIHandler{lock: services.NewLockService()}
}

func (h *LockAPIHandler) GetStatus(c *fiber.Ctx) error {
	return respondData(c, http.StatusOK, fiber.Map{
		"enabled": h.lock.IsLockEnabled(c.UserContext()),
	})
}

type lockInput struct {
	Passphrase string `json:"passphrase" form:"passphrase"`
}

func (h *LockAPIHandler) Enable(c *fiber.Ctx) error {
	var input lockInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrLockPassphraseTooShort)
	}
	if err := h.lock.SetPassphrase(c.UserContext(), input.Passphrase); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, fiber.Map{"enabled": true})
}

func (h *LockAPIHandler) Disable(c *fiber.Ctx) error {
	var input lockInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, services.ErrLockInvalidPassphrase)
	}
	if err := h.lock.DisableLock(c.UserContext(), input.Passphrase); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, fiber.Map{"enabled": false})
}
