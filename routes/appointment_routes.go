package routes

import (
	"github.com/gofiber/fiber/v2"

	"tutormarket/handlers"
	"tutormarket/middleware"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	appointments := api.Group("/appointments", middleware.Protected())
	appointments.Get("/me", handlers.GetMyAppointments)
	appointments.Post("", handlers.CreateAppointment)
	appointments.Delete("/:appointmentId", handlers.CancelAppointment)
	appointments.Post("/:appointmentId/feedback", handlers.SubmitFeedback)
}
