package routes

import (
	"github.com/gofiber/fiber/v2"

	"tutormarket/handlers"
	"tutormarket/middleware"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/reviews/featured", handlers.GetFeaturedReviews)

	api.Post("/tutors/:tutorId/reviews", middleware.Protected(), handlers.CreateReview)

	admin := api.Group("/admin/reviews", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/:reviewId/featured", handlers.SetReviewFeatured)
	admin.Delete("/:reviewId", handlers.RemoveReview)
}
