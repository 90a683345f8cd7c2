package routes

import (
	"praxisnote.app/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes wires the global middlewares and all route groups.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	configs.SetupSession()

	registerLockRoutes(app)
	registerAPIRoutes(app)
	registerPageRoutes(app)

	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	if c.Accepts("html", "json") == "json" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.Status(fiber.StatusNotFound).SendString("Not Found")
}
