package routes

import (
	"github.com/gofiber/fiber/v2"

	"tutormarket/handlers"
	"tutormarket/middleware"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/courses", handlers.ListCourses)
	api.Get("/courses/:courseId", handlers.GetCourse)

	admin := api.Group("/admin/courses", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateCourse)
	admin.Post("/:courseId/materials", handlers.AddMaterial)
	admin.Delete("/:courseId", handlers.RemoveCourse)
}
