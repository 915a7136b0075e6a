package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tutormarket/middleware"
)

type SlotBatchRequest struct {
	Schedules []string `json:"schedules" validate:"required,min=1,dive,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r SlotBatchRequest) instants() ([]time.Time, error) {
	instants := make([]time.Time, 0, len(r.Schedules))
	for _, raw := range r.Schedules {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		instants = append(instants, t)
	}
	return instants, nil
}

// GetTutorSchedules lists a tutor's slots from today on, with reserved and
// closed flags. When the viewer occupies a slot, their own appointment rides
// along; other bookings stay opaque.
func GetTutorSchedules(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	var viewerID *uuid.UUID
	if id, err := uuid.Parse(middleware.SubjectID(c)); err == nil {
		viewerID = &id
	}

	views, err := schedules.ListFromToday(tutorID, viewerID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(views)
}

func AddSchedules(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req SlotBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instants, err := req.instants()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule time"})
	}

	slots, err := schedules.AddSlots(tutorID, instants)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(slots)
}

func RemoveSchedules(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req SlotBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	instants, err := req.instants()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule time"})
	}

	slots, err := schedules.RemoveSlots(tutorID, instants)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(slots)
}
