package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutormarket/models"
)

// ReviewService records a user's one review per tutor and feeds the rating
// aggregator inside the same transaction.
type ReviewService struct {
	db       *gorm.DB
	bookings *BookingService
}

func NewReviewService(db *gorm.DB, bookings *BookingService) *ReviewService {
	return &ReviewService{db: db, bookings: bookings}
}

type CreateReviewInput struct {
	UserID  uuid.UUID
	TutorID uuid.UUID
	Rating  float64
	Text    string
}

func (s *ReviewService) Create(in CreateReviewInput) (*models.Review, error) {
	rating := clampRating(in.Rating)

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("User not found", "userId")
			}
			return err
		}

		var tutor models.Tutor
		if err := tx.First(&tutor, "id = ?", in.TutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Tutor not found", "tutorId")
			}
			return err
		}

		eligible, err := s.bookings.HasFinishedAppointmentWithTutor(tx, in.UserID, in.TutorID)
		if err != nil {
			return err
		}
		if !eligible {
			return NotAvailable("You can't review this tutor", "appointment")
		}

		var existing models.Review
		err = tx.Where("user_id = ? AND tutor_id = ?", in.UserID, in.TutorID).First(&existing).Error
		if err == nil {
			return AlreadyExists("Review already exists", "review")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review = models.Review{
			UserID:  in.UserID,
			TutorID: in.TutorID,
			Rating:  rating,
			Text:    in.Text,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		return ApplyReview(tx, &tutor, review.Rating)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (s *ReviewService) ListByTutor(tutorID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.
		Preload("User").
		Where("tutor_id = ?", tutorID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

func (s *ReviewService) ListFeatured() ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.
		Preload("User").
		Preload("Tutor").
		Where("featured = ?", true).
		Find(&reviews).Error
	return reviews, err
}

func (s *ReviewService) SetFeatured(reviewID uuid.UUID, featured bool) (*models.Review, error) {
	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Review not found", "reviewId")
			}
			return err
		}
		review.Featured = featured
		return tx.Save(&review).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Remove(reviewID uuid.UUID) error {
	result := s.db.Delete(&models.Review{}, "id = ?", reviewID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NotFound("Review not found", "reviewId")
	}
	return nil
}

func clampRating(rating float64) float64 {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}
