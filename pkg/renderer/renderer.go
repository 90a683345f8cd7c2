package renderer

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Keys the views read flash messages under.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// Render renders a view inside a layout with an optional status code.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(code).Render(view, data, layout)
}

// SetFlashMessages copies session flash messages into render data.
func SetFlashMessages(data fiber.Map, flashes map[string]string) {
	if v, ok := flashes["flash_success"]; ok {
		data[FlashSuccessKeyView] = v
	}
	if v, ok := flashes["flash_error"]; ok {
		data[FlashErrorKeyView] = v
	}
}
