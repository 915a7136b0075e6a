package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tutormarket/middleware"
	"tutormarket/services"
)

type CreateAppointmentRequest struct {
	UserID    string  `json:"user_id,omitempty" validate:"omitempty,uuid"`
	TutorID   string  `json:"tutor_id" validate:"required,uuid"`
	StartTime string  `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Material  string  `json:"material" validate:"required"`
	Request   string  `json:"request,omitempty"`
	CourseID  *string `json:"course_id,omitempty" validate:"omitempty,uuid"`
}

// CreateAppointment books a slot. An admin may book on behalf of any user;
// everyone else books for themselves.
func CreateAppointment(c *fiber.Ctx) error {
	callerID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := callerID
	if req.UserID != "" {
		requested, _ := uuid.Parse(req.UserID)
		if requested != callerID && middleware.Role(c) != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You may only book for yourself"})
		}
		userID = requested
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)

	var courseID *uuid.UUID
	if req.CourseID != nil {
		id, _ := uuid.Parse(*req.CourseID)
		courseID = &id
	}

	appointment, err := bookings.MakeAppointment(services.MakeAppointmentInput{
		UserID:    userID,
		TutorID:   tutorID,
		StartTime: startTime,
		Material:  req.Material,
		Request:   req.Request,
		CourseID:  courseID,
	})
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CancelAppointment removes a booking and frees its slot. Ownership is
// checked here; the engine only needs the acting role for the cancellation
// window bypass.
func CancelAppointment(c *fiber.Ctx) error {
	callerID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	role := middleware.Role(c)

	appointment, err := bookings.FindAppointment(appointmentID)
	if err != nil {
		return renderError(c, err)
	}
	if role != "admin" && appointment.UserID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your appointment"})
	}

	removed, err := bookings.RemoveAppointment(appointmentID, role)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(removed)
}

func GetMyAppointments(c *fiber.Ctx) error {
	callerID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	views, err := bookings.ListUserAppointments(callerID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(views)
}
