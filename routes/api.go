package routes

import (
	api_handlers "praxisnote.app/handlers/api"
	"praxisnote.app/middlewares"
	"praxisnote.app/services"

	"github.com/gofiber/fiber/v2"
)

func registerAPIRoutes(app *fiber.App) {
	patientHandler := api_handlers.NewPatientHandler()
	fileHandler := api_handlers.NewFileHandler()
	examHandler := api_handlers.NewExamHandler()
	appointmentHandler := api_handlers.NewAppointmentHandler()
	trendHandler := api_handlers.NewTrendHandler()
	exportHandler := api_handlers.NewExportHandler()
	lockHandler := api_handlers.NewLockAPIHandler()

	// lock status stays reachable while locked; the UI polls it to decide
	// whether to show the unlock screen
	app.Get("/api/lock", lockHandler.GetStatus)

	api := app.Group("/api", middlewares.LockMiddleware(services.NewLockService()))

	patients := api.Group("/patients")
	patients.Get("/", patientHandler.ListPatients)
	patients.Post("/", patientHandler.CreatePatient)
	patients.Get("/:patientID", patientHandler.GetPatient)
	patients.Put("/:patientID", patientHandler.UpdatePatient)
	patients.Delete("/:patientID", patientHandler.DeletePatient)
	patients.Post("/:patientID/photo", patientHandler.UploadPhoto)
	patients.Get("/:patientID/photo", patientHandler.GetPhoto)

	patients.Get("/:patientID/files", fileHandler.ListFiles)
	patients.Post("/:patientID/files", fileHandler.UploadFiles)
	api.Get("/files/:fileID/download", fileHandler.DownloadFile)
	api.Delete("/files/:fileID", fileHandler.DeleteFile)

	api.Get("/exam-template", examHandler.GetTemplate)
	patients.Post("/:patientID/exams", examHandler.CreateExam)
	patients.Post("/:patientID/notes", examHandler.CreateNote)
	patients.Get("/:patientID/records", examHandler.ListRecords)
	api.Get("/records/:recordID", examHandler.GetRecord)

	patients.Get("/:patientID/trend", trendHandler.GetRadar)

	api.Get("/calendar", appointmentHandler.ListCalendar)
	patients.Get("/:patientID/appointments", appointmentHandler.ListAppointments)
	patients.Post("/:patientID/appointments", appointmentHandler.CreateAppointment)
	api.Get("/appointments/:appointmentID", appointmentHandler.GetAppointment)
	api.Put("/appointments/:appointmentID", appointmentHandler.UpdateAppointment)
	api.Delete("/appointments/:appointmentID", appointmentHandler.DeleteAppointment)

	api.Get("/export/calendar.ics", exportHandler.DownloadCalendar)
	api.Get("/export/patients.csv", exportHandler.DownloadRoster)
	api.Get("/export/snapshot.json", exportHandler.DownloadSnapshot)
	api.Post("/export/snapshot", exportHandler.WriteSnapshot)

	api.Post("/lock/enable", lockHandler.Enable)
	api.Post("/lock/disable", lockHandler.Disable)
}
