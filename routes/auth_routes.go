package routes

import (
	"github.com/gofiber/fiber/v2"

	"tutormarket/handlers"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/tutor/register", handlers.RegisterTutor)
	auth.Post("/tutor/login", handlers.LoginTutor)
}
