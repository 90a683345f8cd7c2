package routes

import (
	page_handlers "praxisnote.app/handlers/pages"
	"praxisnote.app/middlewares"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
)

func registerPageRoutes(app *fiber.App) {
	appHandler := page_handlers.NewAppHandler()
	lock := services.NewLockService()

	pages := app.Group("", middlewares.LockMiddleware(lock))
	pages.Get("/", appHandler.ShowApp)
	pages.Get("/patients/:patientID/records/:recordID/print", appHandler.ShowPrintRecord)
}

func registerLockRoutes(app *fiber.App) {
	lockHandler := page_handlers.NewLockHandler()
	lock := services.NewLockService()

	app.Get("/lock", middlewares.GuestMiddleware(lock), lockHandler.ShowLock)
	app.Post("/lock", middlewares.GuestMiddleware(lock), lockHandler.Unlock)
	app.Post("/lock/close", lockHandler.Lock)
}
