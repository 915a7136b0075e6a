package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tutormarket/middleware"
	"tutormarket/services"
)

type CreateReviewRequest struct {
	Rating float64 `json:"rating" validate:"required,min=0,max=5"`
	Text   string  `json:"text" validate:"required"`
}

func CreateReview(c *fiber.Ctx) error {
	callerID, err := uuid.Parse(middleware.SubjectID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid token subject"})
	}

	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, err := reviews.Create(services.CreateReviewInput{
		UserID:  callerID,
		TutorID: tutorID,
		Rating:  req.Rating,
		Text:    req.Text,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func GetTutorReviews(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	result, err := reviews.ListByTutor(tutorID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(result)
}

func GetFeaturedReviews(c *fiber.Ctx) error {
	result, err := reviews.ListFeatured()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(result)
}

type SetFeaturedRequest struct {
	Featured bool `json:"featured"`
}

func SetReviewFeatured(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	var req SetFeaturedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	review, err := reviews.SetFeatured(reviewID, req.Featured)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(review)
}

func RemoveReview(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	if err := reviews.Remove(reviewID); err != nil {
		return renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
