package routes

import (
	"github.com/gofiber/fiber/v2"

	"tutormarket/handlers"
	"tutormarket/middleware"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/tutors", handlers.ListTutors)
	api.Get("/tutors/search", handlers.SearchTutors)
	api.Get("/tutors/:tutorId", handlers.GetTutor)
	api.Get("/tutors/:tutorId/reviews", handlers.GetTutorReviews)

	api.Get("/tutors/:tutorId/schedules", middleware.Protected(), handlers.GetTutorSchedules)

	tutor := api.Group("/tutor", middleware.Protected(), middleware.TutorRequired())
	tutor.Put("/profile", handlers.UpdateMyTutorProfile)
	tutor.Post("/schedules", handlers.AddSchedules)
	tutor.Post("/schedules/remove", handlers.RemoveSchedules)

	admin := api.Group("/admin/tutors", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/:tutorId/accept", handlers.AcceptTutor)
	admin.Delete("/:tutorId", handlers.RemoveTutor)
}
