package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutormarket/logger"
	"tutormarket/models"
)

// TutorService is the tutor directory: lookups, acceptance, profile updates
// and the explicit cascade delete. Rating mutations live in the rating
// aggregator, not here.
type TutorService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTutorService(db *gorm.DB) *TutorService {
	return &TutorService{db: db, now: time.Now}
}

type CreateTutorInput struct {
	Username     string
	FullName     string
	Email        string
	Password     string
	Headline     *string
	Presentation *string
	Language     string
	Country      string
}

func (s *TutorService) Create(in CreateTutorInput) (*models.Tutor, error) {
	var existing models.Tutor
	err := s.db.Where("username = ? OR email = ?", in.Username, in.Email).First(&existing).Error
	if err == nil {
		return nil, AlreadyExists("Tutor already exists", "username")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tutor := models.Tutor{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		Password:     string(hashed),
		Headline:     in.Headline,
		Presentation: in.Presentation,
		Language:     in.Language,
		Country:      in.Country,
		Rating:       models.DefaultTutorRating,
	}
	if err := s.db.Create(&tutor).Error; err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (s *TutorService) FindByID(tutorID uuid.UUID) (*models.Tutor, error) {
	var tutor models.Tutor
	err := s.db.First(&tutor, "id = ?", tutorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Tutor not found", "tutorId")
	}
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (s *TutorService) FindByUsername(username string) (*models.Tutor, error) {
	var tutor models.Tutor
	err := s.db.First(&tutor, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Tutor not found", "username")
	}
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

// ListAccepted returns the public tutor directory.
func (s *TutorService) ListAccepted() ([]models.Tutor, error) {
	var tutors []models.Tutor
	err := s.db.
		Where("accepted = ?", true).
		Order("rating desc").
		Find(&tutors).Error
	return tutors, err
}

// SearchByWindow returns accepted tutors having at least one slot inside the
// requested window. Windows starting in the past are clipped to "now".
func (s *TutorService) SearchByWindow(start, end time.Time) ([]models.Tutor, error) {
	now := s.now()
	if start.Before(now) {
		start = now
	}

	var tutors []models.Tutor
	err := s.db.
		Preload("Schedules", "start_time BETWEEN ? AND ?", start, end).
		Where("accepted = ?", true).
		Find(&tutors).Error
	if err != nil {
		return nil, err
	}

	matched := tutors[:0]
	for _, tutor := range tutors {
		if len(tutor.Schedules) > 0 {
			matched = append(matched, tutor)
		}
	}
	return matched, nil
}

func (s *TutorService) Accept(tutorID uuid.UUID) (*models.Tutor, error) {
	var tutor models.Tutor
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tutor, "id = ?", tutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Tutor not found", "tutorId")
			}
			return err
		}
		tutor.Accepted = true
		return tx.Save(&tutor).Error
	})
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

type UpdateTutorInput struct {
	Headline     *string
	Presentation *string
	Language     *string
	Country      *string
}

func (s *TutorService) Update(tutorID uuid.UUID, in UpdateTutorInput) (*models.Tutor, error) {
	var tutor models.Tutor
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tutor, "id = ?", tutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Tutor not found", "tutorId")
			}
			return err
		}
		if in.Headline != nil {
			tutor.Headline = in.Headline
		}
		if in.Presentation != nil {
			tutor.Presentation = in.Presentation
		}
		if in.Language != nil {
			tutor.Language = *in.Language
		}
		if in.Country != nil {
			tutor.Country = *in.Country
		}
		return tx.Save(&tutor).Error
	})
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

// Remove deletes a tutor and everything hanging off it as one explicit
// multi-step transaction: feedbacks on the tutor's appointments first, then
// appointments, schedules, reviews, and finally the tutor row. No reliance
// on database-level cascade semantics.
func (s *TutorService) Remove(tutorID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tutor models.Tutor
		if err := tx.First(&tutor, "id = ?", tutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Tutor not found", "tutorId")
			}
			return err
		}

		if err := tx.Where("appointment_id IN (?)",
			tx.Model(&models.Appointment{}).Select("id").Where("tutor_id = ?", tutorID),
		).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Appointment{}, "tutor_id = ?", tutorID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Schedule{}, "tutor_id = ?", tutorID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Review{}, "tutor_id = ?", tutorID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tutor{}, "id = ?", tutorID).Error
	})
	if err != nil {
		var rejection *Error
		if !errors.As(err, &rejection) {
			logger.Log.Error("tutor cascade delete failed",
				zap.String("tutorID", tutorID.String()),
				zap.Error(err))
		}
		return err
	}
	return nil
}
