package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tutormarket/middleware"
)

type FeedbackRequest struct {
	Text string `json:"text" validate:"required,min=10"`
}

// SubmitFeedback records the serving tutor's note on a finished
// appointment. Only that tutor or an admin may leave one.
func SubmitFeedback(c *fiber.Ctx) error {
	callerID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	appointment, err := bookings.FindAppointment(appointmentID)
	if err != nil {
		return renderError(c, err)
	}
	if middleware.Role(c) != "admin" && appointment.TutorID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the tutor for this appointment"})
	}

	feedback, err := feedbacks.LeaveFeedback(appointmentID, req.Text)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}
