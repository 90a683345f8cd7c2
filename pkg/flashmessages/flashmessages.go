package flashmessages

import (
	"praxisnote.app/configs"
	"praxisnote.app/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

// SetFlashMessage stores a one-shot message in the session.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := configs.GetSessionStore().Get(c)
	if err != nil {
		configslog.Log.Error("flashmessages: session unavailable", zap.Error(err))
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages pops and returns all pending flash messages.
func GetFlashMessages(c *fiber.Ctx) map[string]string {
	out := map[string]string{}
	sess, err := configs.GetSessionStore().Get(c)
	if err != nil {
		return out
	}
	changed := false
	for _, key := range []string{FlashSuccessKey, FlashErrorKey} {
		if v, ok := sess.Get(key).(string); ok && v != "" {
			out[key] = v
			sess.Delete(key)
			changed = true
		}
	}
	if changed {
		_ = sess.Save()
	}
	return out
}
