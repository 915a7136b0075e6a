package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tutormarket/logger"
	"tutormarket/services"
)

var validate = validator.New()

var (
	schedules *services.ScheduleService
	bookings  *services.BookingService
	feedbacks *services.FeedbackService
	reviews   *services.ReviewService
	tutors    *services.TutorService
)

// Init wires the handler package to the service layer. Called once from main
// after the database connection is up.
func Init(
	scheduleService *services.ScheduleService,
	bookingService *services.BookingService,
	feedbackService *services.FeedbackService,
	reviewService *services.ReviewService,
	tutorService *services.TutorService,
) {
	schedules = scheduleService
	bookings = bookingService
	feedbacks = feedbackService
	reviews = reviewService
	tutors = tutorService
}

// renderError maps business rejections to precise 4xx responses and
// everything else to an opaque 500. Only the latter is logged.
func renderError(c *fiber.Ctx, err error) error {
	var rejection *services.Error
	if errors.As(err, &rejection) {
		status := fiber.StatusBadRequest
		switch rejection.Kind {
		case services.KindNotFound:
			status = fiber.StatusNotFound
		case services.KindAlreadyExists, services.KindConflict:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"error":  rejection.Message,
			"kind":   rejection.Kind.String(),
			"errors": fiber.Map{rejection.Field: rejection.Reason},
		})
	}

	logger.Log.Error("request failed",
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
