package handlers

import (
	"praxisnote.app/configs"
	"praxisnote.app/configs/configsapp"
	"praxisnote.app/configs/configslog"
	"praxisnote.app/pkg/flashmessages"
	"praxisnote.app/pkg/renderer"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionUnlockedKey marks a session that passed the lock screen.
const SessionUnlockedKey = "unlocked"

// LockHandler serves the passphrase lock screen.
type LockHandler struct {
	lock services.ILockService
}

// NewLockHandler builds the handler on the default services.
func NewLockHandler() *LockHandler {
	return &LockHandler{lock: services.NewLockService()}
}

// ShowLock renders the lock screen.
func (h *LockHandler) ShowLock(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":    "Locked",
		"Practice": configsapp.PracticeName(),
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "lock", "layouts/main", data)
}

// Unlock verifies the passphrase and opens the session.
func (h *LockHandler) Unlock(c *fiber.Ctx) error {
	passphrase := c.FormValue("passphrase")
	if err := h.lock.VerifyPassphrase(c.UserContext(), passphrase); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Wrong passphrase.")
		return c.Redirect("/lock", fiber.StatusSeeOther)
	}

	sess, err := configs.GetSessionStore().Get(c)
	if err != nil {
		configslog.Log.Error("Unlock: session unavailable", zap.Error(err))
		return c.Redirect("/lock", fiber.StatusSeeOther)
	}
	sess.Set(SessionUnlockedKey, true)
	if err := sess.Save(); err != nil {
		configslog.Log.Error("Unlock: session save failed", zap.Error(err))
		return c.Redirect("/lock", fiber.StatusSeeOther)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Lock closes the session and returns to the lock screen.
func (h *LockHandler) Lock(c *fiber.Ctx) error {
	sess, err := configs.GetSessionStore().Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			configslog.Log.Error("Lock: session destroy failed", zap.Error(err))
		}
	}
	return c.Redirect("/lock", fiber.StatusFound)
}
