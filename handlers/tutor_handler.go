package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tutormarket/middleware"
	"tutormarket/services"
)

type RegisterTutorRequest struct {
	Username     string  `json:"username" validate:"required,min=3"`
	FullName     string  `json:"full_name" validate:"required,min=2"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	Headline     *string `json:"headline,omitempty"`
	Presentation *string `json:"presentation,omitempty"`
	Language     string  `json:"language,omitempty"`
	Country      string  `json:"country,omitempty"`
}

func RegisterTutor(c *fiber.Ctx) error {
	var req RegisterTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutor, err := tutors.Create(services.CreateTutorInput{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     req.Password,
		Headline:     req.Headline,
		Presentation: req.Presentation,
		Language:     req.Language,
		Country:      req.Country,
	})
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tutor)
}

func ListTutors(c *fiber.Ctx) error {
	result, err := tutors.ListAccepted()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(result)
}

func SearchTutors(c *fiber.Ctx) error {
	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time"})
	}
	end, err := time.Parse(time.RFC3339, c.Query("end_time"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_time"})
	}

	result, err := tutors.SearchByWindow(start, end)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(result)
}

func GetTutor(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	tutor, err := tutors.FindByID(tutorID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(tutor)
}

type UpdateTutorRequest struct {
	Headline     *string `json:"headline,omitempty"`
	Presentation *string `json:"presentation,omitempty"`
	Language     *string `json:"language,omitempty"`
	Country      *string `json:"country,omitempty"`
}

func UpdateMyTutorProfile(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	var req UpdateTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	tutor, err := tutors.Update(tutorID, services.UpdateTutorInput{
		Headline:     req.Headline,
		Presentation: req.Presentation,
		Language:     req.Language,
		Country:      req.Country,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(tutor)
}

func AcceptTutor(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	tutor, err := tutors.Accept(tutorID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(tutor)
}

func RemoveTutor(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	if err := tutors.Remove(tutorID); err != nil {
		return renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
