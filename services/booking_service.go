package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutormarket/logger"
	"tutormarket/models"
)

// BookingService turns slots into appointments and back. Every multi-step
// operation runs inside a single transaction; the slot row lock in
// MakeAppointment is what keeps two concurrent bookings for the same instant
// from both succeeding.
type BookingService struct {
	db        *gorm.DB
	policy    TimePolicy
	schedules *ScheduleService
	now       func() time.Time
}

func NewBookingService(db *gorm.DB, policy TimePolicy, schedules *ScheduleService) *BookingService {
	return &BookingService{db: db, policy: policy, schedules: schedules, now: time.Now}
}

type MakeAppointmentInput struct {
	UserID    uuid.UUID
	TutorID   uuid.UUID
	StartTime time.Time
	Material  string
	Request   string
	CourseID  *uuid.UUID
}

func (s *BookingService) MakeAppointment(in MakeAppointmentInput) (*models.Appointment, error) {
	now := s.now()
	if !s.policy.CanBook(in.StartTime, now) {
		return nil, TooEarly("Not enough notice to make an appointment for this slot", "startTime")
	}

	var appointment models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// The user row lock serializes concurrent bookings by the same
		// user, so the outstanding count below stays consistent even
		// when the requested slots differ.
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var user models.User
		if err := q.First(&user, "id = ?", in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("User not found", "userId")
			}
			return err
		}

		outstanding, err := s.CountOutstanding(tx, in.UserID, now)
		if err != nil {
			return err
		}
		if outstanding >= int64(s.policy.MaxOutstanding) {
			return LimitExceeded("Your appointment count limit is exceeded", "appointmentCount")
		}

		var tutor models.Tutor
		if err := tx.First(&tutor, "id = ?", in.TutorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Tutor not found", "tutorId")
			}
			return err
		}

		slot, err := s.schedules.FindUnoccupiedForUpdate(tx, in.TutorID, in.StartTime)
		if err != nil {
			return err
		}
		if slot == nil {
			return NotAvailable("Tutor is not available at this time", "startTime")
		}

		appointment = models.Appointment{
			UserID:    in.UserID,
			TutorID:   in.TutorID,
			StartTime: TruncateMinute(in.StartTime),
			EndTime:   s.policy.SlotEnd(in.StartTime),
			Material:  in.Material,
			Request:   in.Request,
			CourseID:  in.CourseID,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		return s.schedules.Occupy(tx, slot, appointment.ID)
	})
	if err != nil {
		var rejection *Error
		if !errors.As(err, &rejection) {
			logger.Log.Error("booking transaction failed",
				zap.String("userID", in.UserID.String()),
				zap.String("tutorID", in.TutorID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	return &appointment, nil
}

// RemoveAppointment cancels an appointment and releases its slot.
// Administrators bypass the cancellation window.
func (s *BookingService) RemoveAppointment(appointmentID uuid.UUID, actingRole string) (*models.Appointment, error) {
	now := s.now()

	var removed models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Appointment not found", "appointmentId")
			}
			return err
		}

		if actingRole != "admin" && !s.policy.CanCancel(appointment.StartTime, now) {
			return TooLate("It's too late to cancel the appointment", "cancelTime")
		}

		var slot models.Schedule
		err := tx.First(&slot, "appointment_id = ?", appointment.ID).Error
		if err == nil {
			if err := s.schedules.Release(tx, &slot); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		removed = appointment
		return tx.Delete(&models.Appointment{}, "id = ?", appointment.ID).Error
	})
	if err != nil {
		var rejection *Error
		if !errors.As(err, &rejection) {
			logger.Log.Error("cancellation transaction failed",
				zap.String("appointmentID", appointmentID.String()),
				zap.Error(err))
		}
		return nil, err
	}

	return &removed, nil
}

// CountOutstanding counts a user's appointments whose end time has not yet
// passed. Runs on the caller's handle so the booking transaction observes a
// consistent count.
func (s *BookingService) CountOutstanding(tx *gorm.DB, userID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where("user_id = ? AND end_time > ?", userID, now).
		Count(&count).Error
	return count, err
}

// HasFinishedAppointmentWithTutor reports whether the user has a past, ended
// appointment with the tutor. The review subsystem calls it as its
// eligibility check; like CountOutstanding it runs on the caller's handle so
// a surrounding transaction keeps a single connection.
func (s *BookingService) HasFinishedAppointmentWithTutor(tx *gorm.DB, userID, tutorID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where("user_id = ? AND tutor_id = ? AND end_time < ?", userID, tutorID, s.now()).
		Count(&count).Error
	return count > 0, err
}

// AppointmentView is an appointment plus its derived state flags.
type AppointmentView struct {
	models.Appointment
	Cancelable bool `json:"cancelable"`
	Finished   bool `json:"finished"`
}

// ListUserAppointments returns a user's appointments with feedback loaded
// and the cancelable/finished flags computed against "now".
func (s *BookingService) ListUserAppointments(userID uuid.UUID) ([]AppointmentView, error) {
	var appointments []models.Appointment
	if err := s.db.
		Preload("Tutor").
		Preload("Feedback").
		Where("user_id = ?", userID).
		Order("start_time asc").
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, AppointmentView{
			Appointment: a,
			Cancelable:  s.policy.Cancelable(&a, now),
			Finished:    s.policy.Finished(&a, now),
		})
	}
	return views, nil
}

// FindAppointment loads one appointment with its relations.
func (s *BookingService) FindAppointment(appointmentID uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.
		Preload("User").
		Preload("Tutor").
		Preload("Feedback").
		First(&appointment, "id = ?", appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Appointment not found", "appointmentId")
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}
