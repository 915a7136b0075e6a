package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	config "tutormarket/configs"
	"tutormarket/database"
	"tutormarket/handlers"
	"tutormarket/jobs"
	"tutormarket/logger"
	"tutormarket/routes"
	"tutormarket/services"
)

func main() {
	logger.Init(config.Config("APP_ENV"))
	defer logger.Sync()

	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	policy := services.NewTimePolicy(config.Scheduling())
	scheduleService := services.NewScheduleService(database.DB, policy)
	bookingService := services.NewBookingService(database.DB, policy, scheduleService)
	feedbackService := services.NewFeedbackService(database.DB, policy)
	reviewService := services.NewReviewService(database.DB, bookingService)
	tutorService := services.NewTutorService(database.DB)
	handlers.Init(scheduleService, bookingService, feedbackService, reviewService, tutorService)

	c := cron.New()
	c.AddFunc("@hourly", jobs.PruneStaleSchedules)
	c.Start()
	logger.Log.Info("cron jobs scheduled")

	app := fiber.New(fiber.Config{
		AppName:       "Tutor Market",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			logger.Log.Error("unhandled request error",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.Error(err))
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.AuthRoutes(app)
	routes.TutorRoutes(app)
	routes.AppointmentRoutes(app)
	routes.ReviewRoutes(app)
	routes.CourseRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Log.Info("server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}
