package middlewares

import (
	"strings"

	"praxisnote.app/configs"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
)

const sessionUnlockedKey = "unlocked"

func isUnlocked(c *fiber.Ctx) bool {
	sess, err := configs.GetSessionStore().Get(c)
	if err != nil {
		return false
	}
	unlocked, _ := sess.Get(sessionUnlockedKey).(bool)
	return unlocked
}

// LockMiddleware blocks everything behind the lock screen while a passphrase
// is set. API requests get a 401 JSON body; page requests are redirected.
func LockMiddleware(lock services.ILockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !lock.IsLockEnabled(c.UserContext()) || isUnlocked(c) {
			return c.Next()
		}
		if strings.HasPrefix(c.Path(), "/api") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "app is locked"})
		}
		return c.Redirect("/lock", fiber.StatusSeeOther)
	}
}

// GuestMiddleware keeps unlocked sessions away from the lock screen.
func GuestMiddleware(lock services.ILockService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !lock.IsLockEnabled(c.UserContext()) || isUnlocked(c) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
