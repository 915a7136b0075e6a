package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutormarket/models"
)

// FeedbackService lets the serving tutor attach one note to a finished
// appointment.
type FeedbackService struct {
	db     *gorm.DB
	policy TimePolicy
	now    func() time.Time
}

func NewFeedbackService(db *gorm.DB, policy TimePolicy) *FeedbackService {
	return &FeedbackService{db: db, policy: policy, now: time.Now}
}

func (s *FeedbackService) LeaveFeedback(appointmentID uuid.UUID, text string) (*models.Feedback, error) {
	now := s.now()

	var feedback models.Feedback
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Preload("Feedback").First(&appointment, "id = ?", appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Appointment not found", "appointmentId")
			}
			return err
		}

		if !s.policy.IsFinished(appointment.EndTime, now) {
			return TooEarly("It's too early to leave a feedback", "currentTime")
		}
		if appointment.Feedback != nil {
			return AlreadyExists("Feedback already exists", "feedback")
		}

		feedback = models.Feedback{
			AppointmentID: appointment.ID,
			Text:          text,
		}
		return tx.Create(&feedback).Error
	})
	if err != nil {
		return nil, err
	}

	return &feedback, nil
}
